package terminal_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/arthur-debert/pkgdb/pkg/ui/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestRenderList(t *testing.T) {
	plain(t)
	buf := &bytes.Buffer{}
	r := terminal.New(buf)
	require.NoError(t, r.RenderList(&types.ListResult{Root: "/mnt", Packages: []types.PackageInfo{
		{Name: "foo", Version: "1.0", Entries: 3},
		{Name: "bar", Entries: 1},
	}}))

	out := buf.String()
	assert.Contains(t, out, "Installed packages (/mnt)")
	assert.Contains(t, out, "PACKAGE")
	assert.Contains(t, out, "foo")
	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "bar")
}

func TestRenderList_Empty(t *testing.T) {
	plain(t)
	buf := &bytes.Buffer{}
	require.NoError(t, terminal.New(buf).RenderList(&types.ListResult{Root: "/"}))
	assert.Contains(t, buf.String(), "No packages installed")
}

func TestRenderRemove(t *testing.T) {
	plain(t)
	buf := &bytes.Buffer{}
	r := terminal.New(buf)
	require.NoError(t, r.RenderRemove(&types.RemoveResult{Reports: []*types.RemoveReport{{
		Package: "foo#1.0",
		Removed: []string{"/bin/foo"},
		Shared:  []string{"/bin/common"},
		Failed:  []types.PathError{{Path: "/bin/locked", Error: "permission denied"}},
	}}}))

	out := buf.String()
	assert.Contains(t, out, "removed foo#1.0")
	assert.Contains(t, out, "removed 1")
	assert.Contains(t, out, "shared 1")
	assert.Contains(t, out, "/bin/locked: permission denied")
	assert.NotContains(t, out, "pruned")
}

func TestRenderError_Collision(t *testing.T) {
	plain(t)
	buf := &bytes.Buffer{}
	r := terminal.New(buf)
	require.NoError(t, r.RenderError(errors.NewCollision("bar", []string{"/bin/a", "/bin/b"})))

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "/bin/a exists")
	assert.Contains(t, out, "/bin/b exists")
}

func TestRenderCheck(t *testing.T) {
	plain(t)
	buf := &bytes.Buffer{}
	r := terminal.New(buf)
	require.NoError(t, r.RenderCheck(&types.CheckResult{Packages: []types.CheckedPackage{
		{Name: "foo"},
		{Name: "bar", Missing: []string{"/bin/bar"}},
	}}))

	out := buf.String()
	assert.Contains(t, out, "incomplete")
	assert.Contains(t, out, "bar missing /bin/bar")
}
