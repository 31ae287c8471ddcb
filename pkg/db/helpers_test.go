package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/db"
	"github.com/stretchr/testify/require"
)

// newRoot creates an install root with an empty store.
func newRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "var", "pkg"), 0755))
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	return resolved
}

func writeRules(t *testing.T, root, content string) {
	t.Helper()
	path := filepath.Join(root, "etc", "pkgtools", "reject.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeManifest(t *testing.T, root, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "var", "pkg", filename), []byte(content), 0644))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// openDB opens and loads the database, closing it at test end.
func openDB(t *testing.T, root string) *db.Database {
	t.Helper()
	d, err := db.Open(root, db.WithoutSignalGuard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, d.Load())
	return d
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
