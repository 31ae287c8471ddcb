package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/db"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/signals"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("missing_root", func(t *testing.T) {
		_, err := db.Open(filepath.Join(t.TempDir(), "nope"), db.WithoutSignalGuard())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPath))
	})

	t.Run("missing_store", func(t *testing.T) {
		_, err := db.Open(t.TempDir(), db.WithoutSignalGuard())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("store_is_a_file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "var"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "var", "pkg"), nil, 0644))
		_, err := db.Open(root, db.WithoutSignalGuard())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("already_locked", func(t *testing.T) {
		root := newRoot(t)
		first, err := db.Open(root, db.WithoutSignalGuard())
		require.NoError(t, err)

		_, err = db.Open(root, db.WithoutSignalGuard())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyLocked))

		require.NoError(t, first.Close())
		second, err := db.Open(root, db.WithoutSignalGuard())
		require.NoError(t, err)
		require.NoError(t, second.Close())
	})

	t.Run("invalid_rule_releases_lock", func(t *testing.T) {
		root := newRoot(t)
		writeRules(t, root, "^ok$\n(broken\n")

		_, err := db.Open(root, db.WithoutSignalGuard())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRule))

		writeRules(t, root, "^ok$\n")
		d, err := db.Open(root, db.WithoutSignalGuard())
		require.NoError(t, err)
		assert.Equal(t, 1, d.Rules().Len())
		require.NoError(t, d.Close())
	})

	t.Run("resolves_symlinked_root", func(t *testing.T) {
		root := newRoot(t)
		link := filepath.Join(t.TempDir(), "link")
		require.NoError(t, os.Symlink(root, link))

		d, err := db.Open(link, db.WithoutSignalGuard())
		require.NoError(t, err)
		defer func() { _ = d.Close() }()
		assert.Equal(t, root, d.Root())
		assert.Equal(t, filepath.Join(root, "var", "pkg"), d.StoreDir())
	})

	t.Run("custom_layout", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "db"), 0755))
		d, err := db.Open(root, db.WithoutSignalGuard(), db.WithDBDir("db"), db.WithRejectFile("rules.conf"))
		require.NoError(t, err)
		defer func() { _ = d.Close() }()
		assert.Equal(t, "db", filepath.Base(d.StoreDir()))
	})
}

func TestClose(t *testing.T) {
	root := newRoot(t)
	d, err := db.Open(root)
	require.NoError(t, err)
	assert.True(t, signals.Active())

	require.NoError(t, d.Close())
	assert.False(t, signals.Active())
	require.NoError(t, d.Close())

	err = d.Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))

	_, err = d.Install("foo.pkg.tar.gz", types.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestLoad(t *testing.T) {
	t.Run("parses_every_manifest", func(t *testing.T) {
		root := newRoot(t)
		writeManifest(t, root, "zlib#1.3", "usr/lib/libz.so\n")
		writeManifest(t, root, "busybox", "bin/\nbin/busybox\n")

		d := openDB(t, root)
		pkgs := d.Packages()
		require.Len(t, pkgs, 2)

		assert.Equal(t, "busybox", pkgs[0].Name)
		assert.Empty(t, pkgs[0].Version)
		assert.Equal(t, []string{"bin/", "bin/busybox"}, pkgs[0].Paths())
		assert.Equal(t, filepath.Join(root, "bin/busybox"), pkgs[0].Entries[1].AbsolutePath)

		assert.Equal(t, "zlib", pkgs[1].Name)
		assert.Equal(t, "1.3", pkgs[1].Version)
		assert.Equal(t, filepath.Join(root, "var/pkg/zlib#1.3"), pkgs[1].ManifestPath)
	})

	t.Run("malformed_manifest_fails_closed", func(t *testing.T) {
		root := newRoot(t)
		writeManifest(t, root, "good", "a\n")
		writeManifest(t, root, "bad", "a\n\nb\n")

		d, err := db.Open(root, db.WithoutSignalGuard())
		require.NoError(t, err)
		defer func() { _ = d.Close() }()

		err = d.Load()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedManifest))
		assert.Empty(t, d.Packages())
	})

	t.Run("paths_leaving_the_root_are_malformed", func(t *testing.T) {
		for _, line := range []string{"../victim.txt", "bin/../../victim.txt", "/etc/passwd"} {
			root := newRoot(t)
			writeManifest(t, root, "evil", "bin/ok\n"+line+"\n")

			d, err := db.Open(root, db.WithoutSignalGuard())
			require.NoError(t, err)

			err = d.Load()
			require.Error(t, err, line)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedManifest), line)
			assert.Equal(t, 2, errors.GetErrorDetails(err)["line"])
			assert.Empty(t, d.Packages())
			require.NoError(t, d.Close())
		}
	})

	t.Run("unreadable_entry_fails", func(t *testing.T) {
		root := newRoot(t)
		require.NoError(t, os.Mkdir(filepath.Join(root, "var", "pkg", "subdir"), 0755))

		d, err := db.Open(root, db.WithoutSignalGuard())
		require.NoError(t, err)
		defer func() { _ = d.Close() }()

		err = d.Load()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestRead))
	})

	t.Run("reload_is_idempotent", func(t *testing.T) {
		root := newRoot(t)
		writeManifest(t, root, "foo", "a\n")
		d := openDB(t, root)
		require.NoError(t, d.Load())
		assert.Len(t, d.Packages(), 1)
	})
}
