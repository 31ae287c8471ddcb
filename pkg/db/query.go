package db

import (
	"os"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Walk calls v for every active package in order until v stops it.
// The outcome of the last visit is returned.
func (d *Database) Walk(v types.Visitor) (types.WalkResult, error) {
	if err := d.check(); err != nil {
		return types.WalkError, err
	}

	for _, pkg := range d.Packages() {
		r, err := v(pkg)
		switch {
		case r == types.WalkError || (r == types.WalkContinue && err != nil):
			if err == nil {
				err = errors.Newf(errors.ErrInternal, "walk stopped at %s", pkg.ID())
			}
			return types.WalkError, err
		case r == types.WalkStop:
			return types.WalkStop, nil
		}
	}
	return types.WalkContinue, nil
}

// Links returns how many active packages list rel. Trailing slashes and a
// leading "./" are ignored.
func (d *Database) Links(rel string) int {
	return d.linksExcept(rel, nil)
}

func (d *Database) linksExcept(rel string, skip *types.Package) int {
	key := paths.EntryKey(rel)
	links := 0
	_, _ = d.Walk(func(pkg *types.Package) (types.WalkResult, error) {
		if pkg == skip {
			return types.WalkContinue, nil
		}
		for _, e := range pkg.Entries {
			if paths.EntryKey(e.RelativePath) == key {
				links++
				break
			}
		}
		return types.WalkContinue, nil
	})
	return links
}

// Find returns the active package called name (or name#version).
func (d *Database) Find(name string) (*types.Package, bool) {
	var found *types.Package
	_, _ = d.Walk(func(pkg *types.Package) (types.WalkResult, error) {
		if pkg.Name == name || pkg.ID() == name {
			found = pkg
			return types.WalkStop, nil
		}
		return types.WalkContinue, nil
	})
	return found, found != nil
}

// Owners returns the active packages that own path. path is taken relative
// to the install root whether or not it starts with "/". Existing files are
// matched by device and inode so hard links and symlinked parent
// directories resolve to the same owner. Missing files fall back to
// comparing recorded paths.
func (d *Database) Owners(path string) ([]*types.Package, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	if err := paths.ValidatePath(path); err != nil {
		return nil, err
	}

	rel := paths.StripDotSlash(strings.TrimLeft(path, "/"))
	target := d.layout.EntryPath(rel)
	targetInfo, statErr := d.fs.Lstat(target)
	key := paths.EntryKey(rel)

	var owners []*types.Package
	_, err := d.Walk(func(pkg *types.Package) (types.WalkResult, error) {
		for _, e := range pkg.Entries {
			if statErr != nil {
				if paths.EntryKey(e.RelativePath) == key {
					owners = append(owners, pkg)
					break
				}
				continue
			}
			info, err := d.fs.Lstat(e.AbsolutePath)
			if err != nil {
				continue
			}
			if os.SameFile(targetInfo, info) {
				owners = append(owners, pkg)
				break
			}
		}
		return types.WalkContinue, nil
	})
	return owners, err
}
