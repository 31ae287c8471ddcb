package db

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pkgdb/pkg/archive"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/manifest"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// BuildPackage reads the archive at archivePath and returns the package it
// would install. Rejected entries, entries resolving outside the root and
// the archive root entry are left out.
func (d *Database) BuildPackage(archivePath string) (*types.Package, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	abs, err := resolveArchive(archivePath)
	if err != nil {
		return nil, err
	}
	name, version, err := paths.ParseFilename(abs)
	if err != nil {
		return nil, err
	}

	it, err := d.reader.Entries(abs)
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()

	pkg := &types.Package{
		Name:         name,
		Version:      version,
		ManifestPath: d.layout.ManifestPath(name, version),
	}
	for {
		entry, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rel := paths.StripDotSlash(entry.Path)
		if rel == "" {
			continue
		}
		if _, ok := paths.SecureJoin(d.layout.Root(), rel); !ok {
			d.logger.Warn().Str("path", entry.Path).Msg("unsafe path, skipping")
			continue
		}
		if d.rules.Match(entry.Path) {
			d.logger.Warn().Str("path", rel).Msg("rejecting")
			continue
		}
		pkg.Entries = append(pkg.Entries, types.PackageEntry{
			RelativePath: rel,
			AbsolutePath: d.layout.EntryPath(rel),
		})
	}
	return pkg, nil
}

func resolveArchive(archivePath string) (string, error) {
	abs, err := filepath.Abs(archivePath)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveOpen, "realpath %s", archivePath).
			WithDetail("path", archivePath)
	}
	return abs, nil
}

// Collisions returns the absolute paths of pkg's entries that already exist
// as something other than a directory. Every entry is checked.
func (d *Database) Collisions(pkg *types.Package) []string {
	var collisions []string
	for _, e := range pkg.Entries {
		info, err := d.fs.Stat(e.AbsolutePath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			// cannot prove the path is free
			d.logger.Warn().Err(err).Str("path", e.AbsolutePath).Msg("stat failed")
			collisions = append(collisions, e.AbsolutePath)
			continue
		}
		if !info.IsDir() {
			d.logger.Warn().Str("path", e.AbsolutePath).Msg("exists")
			collisions = append(collisions, e.AbsolutePath)
		}
	}
	return collisions
}

// Install records and extracts the package archive at archivePath.
//
// A package whose name is already active is refused unless opts.Force is
// set, in which case the new manifest replaces the old record.
func (d *Database) Install(archivePath string, opts types.Options) (*types.Package, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	done := logging.LogOperationStart(d.logger, "install")
	defer done()

	pkg, err := d.BuildPackage(archivePath)
	if err != nil {
		return nil, err
	}
	abs, err := resolveArchive(archivePath)
	if err != nil {
		return nil, err
	}

	previous, exists := d.Find(pkg.Name)
	if exists && !opts.Force {
		return nil, errors.Newf(errors.ErrPackageExists, "package %s is already installed as %s", pkg.Name, previous.ID()).
			WithDetail("package", pkg.Name).
			WithDetail("installed", previous.ID())
	}
	pendingIdx := d.pendingIndex(pkg.Name)
	if pendingIdx >= 0 && !opts.Force {
		stale := d.pending[pendingIdx]
		return nil, errors.Newf(errors.ErrPackageExists, "package %s is pending removal as %s", pkg.Name, stale.ID()).
			WithDetail("package", pkg.Name).
			WithDetail("pending", stale.ID())
	}

	if !opts.Force {
		if collisions := d.Collisions(pkg); len(collisions) > 0 {
			return nil, errors.NewCollision(pkg.ID(), collisions)
		}
	}

	var stale *types.Package
	if pendingIdx >= 0 {
		// a later CommitRemoval must not delete the new manifest
		stale = d.pending[pendingIdx]
		d.pending = append(d.pending[:pendingIdx], d.pending[pendingIdx+1:]...)
	}

	if err := manifest.WriteFile(d.fs, pkg.ManifestPath, pkg.Paths()); err != nil {
		return nil, err
	}
	if stale != nil && stale.ManifestPath != pkg.ManifestPath {
		if err := manifest.Remove(d.fs, stale.ManifestPath); err != nil {
			d.logger.Warn().Err(err).Str("manifest", stale.ManifestPath).Msg("failed to remove pending manifest")
		}
	}
	for _, e := range pkg.Entries {
		d.logger.Info().Str("path", e.RelativePath).Msg("installed")
	}
	d.logger.Info().Str("manifest", pkg.ManifestPath).Msg("adding")

	// The manifest is durable from here on, so the package is active even
	// if extraction fails and can be removed later.
	if exists {
		d.replace(previous, pkg)
	} else {
		d.packages = append(d.packages, pkg)
	}

	err = d.reader.Extract(abs, d.layout.Root(), archive.ExtractOptions{
		Force: opts.Force,
		Skip:  d.rules.Match,
		Warn: func(path string, err error) {
			d.logger.Warn().Err(err).Str("path", path).Msg("extract failed")
		},
	})
	if err != nil {
		return pkg, err
	}

	d.logger.Debug().Str("package", pkg.ID()).Int("entries", len(pkg.Entries)).Msg("Package installed")
	return pkg, nil
}

// replace swaps previous for pkg in the active set and drops previous's
// manifest when it has a different name.
func (d *Database) replace(previous, pkg *types.Package) {
	for i, p := range d.packages {
		if p == previous {
			d.packages[i] = pkg
			break
		}
	}
	if previous.ManifestPath == pkg.ManifestPath {
		return
	}
	if err := manifest.Remove(d.fs, previous.ManifestPath); err != nil {
		d.logger.Warn().Err(err).Str("manifest", previous.ManifestPath).Msg("failed to remove replaced manifest")
	}
}
