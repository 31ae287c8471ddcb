package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantName    string
		wantVersion string
		wantErr     bool
	}{
		{name: "name and version", path: "/tmp/foo#1.0.pkg.tar.gz", wantName: "foo", wantVersion: "1.0"},
		{name: "name only", path: "bar.pkg.tar.gz", wantName: "bar"},
		{name: "version with dots", path: "lib#2.3.4-1.pkg.tar.xz", wantName: "lib", wantVersion: "2.3.4-1"},
		{name: "split on first hash", path: "a#b#c.pkg.tar.gz", wantName: "a", wantVersion: "b#c"},
		{name: "two plain suffixes", path: "foo#1.0.pkg.tgz", wantName: "foo", wantVersion: "1.0"},
		{name: "plain tar suffixes", path: "foo.tar.gz", wantName: "foo"},
		{name: "only one suffix", path: "foo.tgz", wantErr: true},
		{name: "no suffix", path: "foo", wantErr: true},
		{name: "empty name", path: "#1.0.pkg.tar.gz", wantErr: true},
		{name: "empty version", path: "foo#.pkg.tar.gz", wantErr: true},
		{name: "dot name", path: "/tmp/..pkg.tar.gz", wantErr: true},
		{name: "dot-dot name", path: "/tmp/...pkg.tgz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, version, err := paths.ParseFilename(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidFilename))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}

func TestManifestNameRoundTrip(t *testing.T) {
	assert.Equal(t, "foo#1.0", paths.ManifestName("foo", "1.0"))
	assert.Equal(t, "bar", paths.ManifestName("bar", ""))

	name, version := paths.ParseManifestName("foo#1.0")
	assert.Equal(t, "foo", name)
	assert.Equal(t, "1.0", version)

	name, version = paths.ParseManifestName("bar")
	assert.Equal(t, "bar", name)
	assert.Empty(t, version)
}

func TestLayout(t *testing.T) {
	l := paths.NewLayout("/mnt/root", "", "")
	assert.Equal(t, "/mnt/root/var/pkg", l.StoreDir())
	assert.Equal(t, "/mnt/root/etc/pkgtools/reject.conf", l.RejectFilePath())
	assert.Equal(t, "/mnt/root/var/pkg/foo#1.0", l.ManifestPath("foo", "1.0"))
	assert.Equal(t, "/mnt/root/usr/bin/foo", l.EntryPath("usr/bin/foo"))
	assert.Equal(t, "/mnt/root/usr/share", l.EntryPath("usr/share/"))

	custom := paths.NewLayout("/r", "db", "rules")
	assert.Equal(t, "/r/db", custom.StoreDir())
	assert.Equal(t, "/r/rules", custom.RejectFilePath())
}

func TestJoinAtSystemRoot(t *testing.T) {
	assert.Equal(t, "/usr/bin/foo", paths.Join("/", "usr/bin/foo"))
	assert.Equal(t, "/", paths.Join("/", ""))
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "etc/shared", paths.EntryKey("etc/shared/"))
	assert.Equal(t, "etc/shared", paths.EntryKey("./etc/shared"))
	assert.Equal(t, "usr/bin/x", paths.EntryKey("usr/bin/x"))
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	got, err := paths.ResolveRoot(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = paths.ResolveRoot(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPath))
}

func TestSecureJoin(t *testing.T) {
	target, ok := paths.SecureJoin("/root", "./usr/bin/x")
	assert.True(t, ok)
	assert.Equal(t, "/root/usr/bin/x", target)

	_, ok = paths.SecureJoin("/root", "../etc/passwd")
	assert.False(t, ok)

	_, ok = paths.SecureJoin("/root", "usr/../../etc")
	assert.False(t, ok)

	_, ok = paths.SecureJoin("/root", "/etc/passwd")
	assert.False(t, ok)
}

func TestValidatePackageName(t *testing.T) {
	assert.NoError(t, paths.ValidatePackageName("foo"))
	assert.Error(t, paths.ValidatePackageName(""))
	assert.Error(t, paths.ValidatePackageName("a/b"))
	assert.Error(t, paths.ValidatePackageName(".."))
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, paths.ValidatePath("/usr/bin"))
	assert.Error(t, paths.ValidatePath(""))
	assert.Error(t, paths.ValidatePath("a\x00b"))
}
