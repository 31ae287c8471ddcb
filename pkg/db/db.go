package db

import (
	"github.com/arthur-debert/pkgdb/pkg/archive"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/filesystem"
	"github.com/arthur-debert/pkgdb/pkg/lock"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/arthur-debert/pkgdb/pkg/rules"
	"github.com/arthur-debert/pkgdb/pkg/signals"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/rs/zerolog"
)

// Database is an open session on a package database.
type Database struct {
	layout *paths.Layout
	fs     types.FS
	reader archive.Reader
	lock   *lock.Lock
	guard  *signals.Guard
	rules  *rules.RuleSet
	logger zerolog.Logger

	// active packages in load order, then install order
	packages []*types.Package
	// removed from disk, manifest still present
	pending []*types.Package

	loaded bool
	closed bool
}

type options struct {
	fs         types.FS
	reader     archive.Reader
	dbDir      string
	rejectFile string
	signals    bool
}

// Option configures Open.
type Option func(*options)

// WithFS replaces the OS filesystem used for file operations.
func WithFS(fs types.FS) Option {
	return func(o *options) { o.fs = fs }
}

// WithArchiveReader replaces the tar archive reader.
func WithArchiveReader(r archive.Reader) Option {
	return func(o *options) { o.reader = r }
}

// WithDBDir sets the store directory relative to the root.
func WithDBDir(dir string) Option {
	return func(o *options) { o.dbDir = dir }
}

// WithRejectFile sets the reject rule file relative to the root.
func WithRejectFile(path string) Option {
	return func(o *options) { o.rejectFile = path }
}

// WithoutSignalGuard leaves signal dispositions untouched.
func WithoutSignalGuard() Option {
	return func(o *options) { o.signals = false }
}

// Open starts a session on the database below root.
func Open(root string, opts ...Option) (*Database, error) {
	o := options{signals: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	if o.reader == nil {
		o.reader = archive.NewReader()
	}

	logger := logging.GetLogger("db")

	resolved, err := paths.ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	layout := paths.NewLayout(resolved, o.dbDir, o.rejectFile)

	l, err := lock.Acquire(layout.StoreDir())
	if err != nil {
		return nil, err
	}

	rs, err := rules.Load(layout.RejectFilePath())
	if err != nil {
		_ = l.Release()
		return nil, err
	}

	d := &Database{
		layout: layout,
		fs:     o.fs,
		reader: o.reader,
		lock:   l,
		rules:  rs,
		logger: logger,
	}
	if o.signals {
		d.guard = signals.Ignore()
	}

	logger.Debug().
		Str("root", resolved).
		Str("store", layout.StoreDir()).
		Int("rules", rs.Len()).
		Msg("Database opened")
	return d, nil
}

// Close releases the lock and drops all in-memory state. Closing twice is
// a no-op.
func (d *Database) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.closed = true
	d.packages = nil
	d.pending = nil

	if d.guard != nil {
		d.guard.Restore()
	}
	err := d.lock.Release()
	d.logger.Debug().Str("root", d.layout.Root()).Msg("Database closed")
	return err
}

func (d *Database) check() error {
	if d == nil || d.closed {
		return errors.New(errors.ErrInternal, "database is closed")
	}
	return nil
}

// Root returns the resolved install root.
func (d *Database) Root() string { return d.layout.Root() }

// StoreDir returns the directory holding the manifests.
func (d *Database) StoreDir() string { return d.layout.StoreDir() }

// Rules returns the reject rules loaded at open.
func (d *Database) Rules() *rules.RuleSet { return d.rules }

// Packages returns the active packages.
func (d *Database) Packages() []*types.Package {
	out := make([]*types.Package, len(d.packages))
	copy(out, d.packages)
	return out
}

// Pending returns the packages waiting for CommitRemoval.
func (d *Database) Pending() []*types.Package {
	out := make([]*types.Package, len(d.pending))
	copy(out, d.pending)
	return out
}
