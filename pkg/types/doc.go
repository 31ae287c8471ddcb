// Package types defines the core types and interfaces used throughout pkgdb.
// This includes the FS abstraction, the in-memory Package record built from
// a manifest or an archive, and the Visitor used to walk installed packages.
package types
