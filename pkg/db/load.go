package db

import (
	"path/filepath"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/manifest"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Load reads every manifest in the store into the active set, in store
// entry name order. On any failure the active set is left empty.
func (d *Database) Load() error {
	if err := d.check(); err != nil {
		return err
	}
	done := logging.LogOperationStart(d.logger, "load")
	defer done()

	d.packages = nil
	d.loaded = false

	storeDir := d.layout.StoreDir()
	entries, err := d.fs.ReadDir(storeDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestRead, "readdir %s", storeDir).WithDetail("path", storeDir)
	}

	var loaded []*types.Package
	for _, entry := range entries {
		filename := entry.Name()
		manifestPath := filepath.Join(storeDir, filename)
		if d.isPending(manifestPath) {
			continue
		}

		pkg, err := d.loadManifest(filename)
		if err != nil {
			return err
		}
		loaded = append(loaded, pkg)
	}

	d.packages = loaded
	d.loaded = true
	d.logger.Debug().Int("packages", len(loaded)).Msg("Database loaded")
	return nil
}

func (d *Database) loadManifest(filename string) (*types.Package, error) {
	name, version := paths.ParseManifestName(filename)
	manifestPath := d.layout.ManifestPath(name, version)

	lines, err := manifest.ReadFile(d.fs, manifestPath)
	if err != nil {
		return nil, err
	}

	pkg := &types.Package{
		Name:         name,
		Version:      version,
		ManifestPath: manifestPath,
		Entries:      make([]types.PackageEntry, 0, len(lines)),
	}
	for i, rel := range lines {
		if _, ok := paths.SecureJoin(d.layout.Root(), rel); !ok {
			return nil, errors.Newf(errors.ErrMalformedManifest, "%s: path %s leaves the root", manifestPath, rel).
				WithDetail("path", manifestPath).
				WithDetail("line", i+1)
		}
		pkg.Entries = append(pkg.Entries, types.PackageEntry{
			RelativePath: rel,
			AbsolutePath: d.layout.EntryPath(rel),
		})
	}
	return pkg, nil
}

func (d *Database) ensureLoaded() error {
	if err := d.check(); err != nil {
		return err
	}
	if d.loaded {
		return nil
	}
	return d.Load()
}

func (d *Database) isPending(manifestPath string) bool {
	for _, p := range d.pending {
		if p.ManifestPath == manifestPath {
			return true
		}
	}
	return false
}
