package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/pkgdb/pkg/types"
	"golang.org/x/sys/unix"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := unix.Fsync(int(f.Fd())); err != nil {
		_ = f.Close()
		return &fs.PathError{Op: "fsync", Path: name, Err: err}
	}
	return f.Close()
}

// Rmdir never removes a non-empty directory, unlike os.Remove which
// would also unlink files.
func (o *osFS) Rmdir(name string) error {
	if err := unix.Rmdir(name); err != nil {
		return &fs.PathError{Op: "rmdir", Path: name, Err: err}
	}
	return nil
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) Sync() error {
	unix.Sync()
	return nil
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}
