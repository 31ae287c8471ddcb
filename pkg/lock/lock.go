// Package lock holds the exclusive advisory lock on the store directory.
//
// The lock is a flock(2) on an open descriptor of the directory itself. It
// never waits: a second session on the same store fails immediately.
package lock

import (
	"os"
	"sync"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"golang.org/x/sys/unix"
)

// Lock is an acquired store lock.
type Lock struct {
	path string
	dir  *os.File
	once sync.Once
	err  error
}

// Acquire opens dir and takes an exclusive non-blocking lock on it.
func Acquire(dir string) (*Lock, error) {
	logger := logging.GetLogger("lock")

	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "opendir %s", dir).WithDetail("path", dir)
	}
	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		_ = f.Close()
		if err == nil {
			err = unix.ENOTDIR
		}
		return nil, errors.Wrapf(err, errors.ErrNotFound, "opendir %s", dir).WithDetail("path", dir)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, errors.New(errors.ErrAlreadyLocked, "package db already locked").WithDetail("path", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrLock, "flock %s", dir).WithDetail("path", dir)
	}

	logger.Debug().Str("path", dir).Msg("Store locked")
	return &Lock{path: dir, dir: f}, nil
}

// Path returns the locked directory.
func (l *Lock) Path() string { return l.path }

// Release unlocks and closes the directory. Later calls return the result
// of the first.
func (l *Lock) Release() error {
	l.once.Do(func() {
		if err := unix.Flock(int(l.dir.Fd()), unix.LOCK_UN); err != nil {
			l.err = errors.Wrapf(err, errors.ErrLock, "flock %s", l.path)
		}
		if err := l.dir.Close(); err != nil && l.err == nil {
			l.err = errors.Wrapf(err, errors.ErrLock, "close %s", l.path)
		}
		logger := logging.GetLogger("lock")
		logger.Debug().Str("path", l.path).Msg("Store unlocked")
	})
	return l.err
}
