package db

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/manifest"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Remove deletes pkg's files and moves it to the pending set. The manifest
// stays on disk until CommitRemoval.
//
// Removing a package that is already pending is a no-op.
func (d *Database) Remove(pkg *types.Package, opts types.Options) (*types.RemoveReport, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no package given")
	}

	report := &types.RemoveReport{Package: pkg.ID()}
	idx := d.activeIndex(pkg)
	if idx < 0 {
		if d.isPending(pkg.ManifestPath) {
			return report, nil
		}
		return nil, errors.Newf(errors.ErrPackageNotFound, "%s is not installed", pkg.ID()).
			WithDetail("package", pkg.ID())
	}
	active := d.packages[idx]

	done := logging.LogOperationStart(d.logger, "remove")
	defer done()

	for i := len(active.Entries) - 1; i >= 0; i-- {
		d.removeEntry(active, active.Entries[i], opts, report)
	}

	if opts.Force {
		for i := len(active.Entries) - 1; i >= 0; i-- {
			e := active.Entries[i]
			if d.rules.Match(e.RelativePath) {
				continue
			}
			if d.Links(e.RelativePath) > 1 {
				continue
			}
			d.prune(active, e.AbsolutePath, report)
		}
	}

	d.packages = append(d.packages[:idx], d.packages[idx+1:]...)
	d.pending = append(d.pending, active)

	d.logger.Debug().
		Str("package", active.ID()).
		Int("removed", len(report.Removed)).
		Int("failed", len(report.Failed)).
		Msg("Package files removed")
	return report, nil
}

func (d *Database) removeEntry(pkg *types.Package, e types.PackageEntry, opts types.Options, report *types.RemoveReport) {
	if d.rules.Match(e.RelativePath) {
		d.logger.Warn().Str("path", e.RelativePath).Msg("rejecting")
		report.Rejected = append(report.Rejected, e.AbsolutePath)
		return
	}

	info, err := d.fs.Lstat(e.AbsolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			d.logger.Info().Str("path", e.AbsolutePath).Msg("already removed")
			report.Missing = append(report.Missing, e.AbsolutePath)
			return
		}
		d.logger.Warn().Err(err).Str("path", e.AbsolutePath).Msg("lstat failed")
		report.Failed = append(report.Failed, types.PathError{Path: e.AbsolutePath, Error: err.Error()})
		return
	}

	if info.IsDir() {
		if !opts.Force {
			d.logger.Info().Str("path", e.AbsolutePath).Msg("ignoring directory")
		}
		report.Ignored = append(report.Ignored, e.AbsolutePath)
		return
	}

	if d.linksExcept(e.RelativePath, pkg) > 0 {
		d.logger.Info().Str("path", e.AbsolutePath).Msg("still owned by another package")
		report.Shared = append(report.Shared, e.AbsolutePath)
		return
	}

	if info.Mode()&os.ModeSymlink != 0 && !opts.Force {
		d.logger.Info().Str("path", e.AbsolutePath).Msg("ignoring link")
		report.Ignored = append(report.Ignored, e.AbsolutePath)
		return
	}

	if err := d.fs.Remove(e.AbsolutePath); err != nil {
		d.logger.Warn().Err(err).Str("path", e.AbsolutePath).Msg("remove failed")
		report.Failed = append(report.Failed, types.PathError{Path: e.AbsolutePath, Error: err.Error()})
		return
	}
	d.logger.Info().Str("path", e.AbsolutePath).Msg("removing")
	report.Removed = append(report.Removed, e.AbsolutePath)
}

// prune removes empty directories at and below path, children first.
// Symlinks are never followed and directories listed by another active
// package are left with everything below them.
func (d *Database) prune(pkg *types.Package, path string, report *types.RemoveReport) {
	info, err := d.fs.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}

	children, err := d.fs.ReadDir(path)
	if err != nil {
		d.logger.Debug().Err(err).Str("path", path).Msg("readdir failed")
		return
	}
	for _, child := range children {
		if child.Type()&fs.ModeType != fs.ModeDir {
			continue
		}
		childPath := filepath.Join(path, child.Name())
		if rel, ok := paths.RelativeTo(d.layout.Root(), childPath); ok && d.linksExcept(rel, pkg) > 0 {
			continue
		}
		d.prune(pkg, childPath, report)
	}

	if err := d.fs.Rmdir(path); err != nil {
		// not empty, or busy
		return
	}
	d.logger.Info().Str("path", path).Msg("removing")
	report.Pruned = append(report.Pruned, path)
}

// CommitRemoval deletes the manifest of a package previously passed to
// Remove. name may be the package name or its name#version id.
func (d *Database) CommitRemoval(name string) error {
	if err := d.check(); err != nil {
		return err
	}

	idx := -1
	for i, p := range d.pending {
		if p.Name == name || p.ID() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Newf(errors.ErrInternal, "package %s is not pending removal", name).
			WithDetail("package", name)
	}

	pkg := d.pending[idx]
	d.logger.Info().Str("manifest", pkg.ManifestPath).Msg("removing")
	if err := manifest.Remove(d.fs, pkg.ManifestPath); err != nil {
		return err
	}
	d.pending = append(d.pending[:idx], d.pending[idx+1:]...)
	return nil
}

func (d *Database) pendingIndex(name string) int {
	for i, p := range d.pending {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (d *Database) activeIndex(pkg *types.Package) int {
	for i, p := range d.packages {
		if p == pkg || p.ManifestPath == pkg.ManifestPath {
			return i
		}
	}
	return -1
}
