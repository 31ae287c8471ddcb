// Package filesystem provides filesystem implementations for pkgdb.
//
// This package contains the OS implementation of the types.FS interface.
// Tests use it against t.TempDir() roots.
package filesystem
