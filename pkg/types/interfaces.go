package types

import (
	"io/fs"
)

// FS is the filesystem interface used by the database.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// WriteFile creates or truncates name and syncs its contents to disk
	// before returning.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)

	// Rmdir removes name only if it is an empty directory.
	Rmdir(name string) error

	// Other operations
	Remove(name string) error

	// Sync flushes filesystem buffers.
	Sync() error

	// Lstat does not follow symlinks
	Lstat(name string) (fs.FileInfo, error)
}
