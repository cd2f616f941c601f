// Package catalog holds the motor data served by the document endpoints.
//
// A Catalog is loaded once from a YAML file and is read-only afterwards, so it
// can be shared between request handlers without locking. Motors are kept in
// natural name order: by manufacturer, then by designation.
package catalog
