package types_test

import (
	"testing"

	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestPackage_ID(t *testing.T) {
	assert.Equal(t, "foo#1.0", (&types.Package{Name: "foo", Version: "1.0"}).ID())
	assert.Equal(t, "bar", (&types.Package{Name: "bar"}).ID())
}

func TestPackage_Paths(t *testing.T) {
	pkg := &types.Package{
		Name: "foo",
		Entries: []types.PackageEntry{
			{RelativePath: "usr/"},
			{RelativePath: "usr/bin/foo"},
		},
	}

	assert.Equal(t, []string{"usr/", "usr/bin/foo"}, pkg.Paths())
	assert.True(t, pkg.HasPath("usr"))
	assert.True(t, pkg.HasPath("./usr/bin/foo"))
	assert.False(t, pkg.HasPath("usr/bin"))
}

func TestPackageEntry_IsDir(t *testing.T) {
	assert.True(t, types.PackageEntry{RelativePath: "etc/"}.IsDir())
	assert.False(t, types.PackageEntry{RelativePath: "etc/foo"}.IsDir())
}

func TestWalkResult_String(t *testing.T) {
	assert.Equal(t, "continue", types.WalkContinue.String())
	assert.Equal(t, "stop", types.WalkStop.String())
	assert.Equal(t, "error", types.WalkError.String())
}
