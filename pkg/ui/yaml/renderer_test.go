package yaml_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
	pkgyaml "github.com/arthur-debert/pkgdb/pkg/ui/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRemove(t *testing.T) {
	buf := &bytes.Buffer{}
	r := pkgyaml.New(buf)
	require.NoError(t, r.RenderRemove(&types.RemoveResult{Reports: []*types.RemoveReport{
		{Package: "foo#1.0", Removed: []string{"/bin/foo"}},
	}}))

	out := buf.String()
	assert.Contains(t, out, "foo#1.0")
	assert.Contains(t, out, "- /bin/foo")
	assert.NotContains(t, out, "pruned", "empty groups are omitted")
}

func TestRenderInstall_Inline(t *testing.T) {
	buf := &bytes.Buffer{}
	r := pkgyaml.New(buf)
	require.NoError(t, r.RenderInstall(&types.InstallResult{Packages: []types.InstalledPackage{
		{PackageInfo: types.PackageInfo{Name: "foo", Entries: 1}, Archive: "foo.pkg.tar.gz"},
	}}))

	out := buf.String()
	assert.Contains(t, out, "name: foo")
	assert.Contains(t, out, "archive: foo.pkg.tar.gz")
	assert.NotContains(t, out, "packageinfo")
}

func TestRenderError(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, pkgyaml.New(buf).RenderError(errors.New(errors.ErrInternal, "boom")))
	assert.Contains(t, buf.String(), "code: INTERNAL")
}
