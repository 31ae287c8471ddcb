package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
)

// ParseFilename extracts the package name and optional version from an
// archive path such as /tmp/foo#1.0.pkg.tar.gz.
//
// Exactly two trailing "."-delimited suffixes are stripped, then the rest
// is split on the first "#". A compressed tar suffix following ".pkg"
// (".pkg.tar.gz") counts as one, so foo#1.0.pkg.tar.gz and foo#1.0.pkg.tgz
// name the same package. Fewer than two suffixes, an empty name, a name of
// "." or ".." or a "#" with nothing after it make the filename invalid.
func ParseFilename(path string) (name, version string, err error) {
	base := filepath.Base(path)

	stem, ok := trimPackageExt(base)
	if !ok {
		return "", "", invalidFilename(path)
	}

	name, version, hasVersion := strings.Cut(stem, VersionSep)
	if hasVersion && version == "" {
		return "", "", invalidFilename(path)
	}
	// the name becomes a file in the store
	if err := ValidatePackageName(name); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrInvalidFilename, "%s: invalid package filename", path).
			WithDetail("path", path)
	}
	return name, version, nil
}

// trimPackageExt drops the two trailing suffixes of base.
func trimPackageExt(base string) (string, bool) {
	for _, ext := range compressedTarExts {
		if strings.HasSuffix(base, ".pkg"+ext) {
			return strings.TrimSuffix(base, ".pkg"+ext), true
		}
	}
	stem := base
	for i := 0; i < 2; i++ {
		dot := strings.LastIndex(stem, ".")
		if dot < 0 {
			return "", false
		}
		stem = stem[:dot]
	}
	return stem, true
}

var compressedTarExts = []string{".tar.gz", ".tar.zst", ".tar.lz4", ".tar.bz2", ".tar.xz"}

func invalidFilename(path string) error {
	return errors.Newf(errors.ErrInvalidFilename, "%s: invalid package filename", path).
		WithDetail("path", path)
}

// ParseManifestName splits a store entry name into name and version.
func ParseManifestName(filename string) (name, version string) {
	name, version, _ = strings.Cut(filename, VersionSep)
	return name, version
}

// ManifestName is the inverse of ParseManifestName.
func ManifestName(name, version string) string {
	if version == "" {
		return name
	}
	return name + VersionSep + version
}
