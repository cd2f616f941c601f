// Package utils provides the small pure helpers shared by the writers and the
// catalog.
//
// It contains:
//   - Element naming transforms (CamelCase, Singular)
//   - Natural-order name comparison (NameCompare)
//   - Length conversion for presentation (PresentableLength)
//   - ISO-8601 time formatting
package utils
