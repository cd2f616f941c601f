// Package dataformat serves the motor catalog over HTTP. Every endpoint is
// available as XML and as JSON; both are produced by the same calls on a
// formatter.Writer, so the two formats always carry the same content.
//
// XML clients written against the legacy numeric-ID API can ask for
// compatibility mode, in which motor identifiers are replaced by integers
// that the server maps back when they are sent in later requests.
package dataformat
