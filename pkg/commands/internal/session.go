// Package internal holds helpers shared by the command implementations.
package internal

import (
	"github.com/arthur-debert/pkgdb/pkg/db"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// OpenDatabase opens the database described by opts and loads every
// manifest. The caller closes it.
func OpenDatabase(opts types.SessionOptions) (*db.Database, error) {
	logger := logging.GetLogger("core.commands")
	logger.Debug().
		Str("root", opts.Root).
		Str("dbDir", opts.DBDir).
		Str("rejectFile", opts.RejectFile).
		Msg("Opening package database")

	var dbOpts []db.Option
	if opts.DBDir != "" {
		dbOpts = append(dbOpts, db.WithDBDir(opts.DBDir))
	}
	if opts.RejectFile != "" {
		dbOpts = append(dbOpts, db.WithRejectFile(opts.RejectFile))
	}
	if opts.NoSignalGuard {
		dbOpts = append(dbOpts, db.WithoutSignalGuard())
	}

	d, err := db.Open(opts.Root, dbOpts...)
	if err != nil {
		return nil, err
	}
	if err := d.Load(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// CloseDatabase closes d and keeps the first error seen.
func CloseDatabase(d *db.Database, err *error) {
	if cerr := d.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
