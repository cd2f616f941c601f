// Package idmap maps opaque string identifiers to small sequential integers
// for clients of the legacy numeric-ID API.
//
// A Registry is a bijection: a string is assigned the next integer the first
// time it is seen and keeps it for the lifetime of the registry, and the
// integer resolves back to that string. Nothing is persisted; integers handed
// out before a restart are meaningless afterwards.
//
// Default returns the process-wide registry shared by every compatibility
// writer. Tests and embedders that need isolation create their own with New.
package idmap
