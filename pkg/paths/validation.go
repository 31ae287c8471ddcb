package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidatePackageName ensures a package name is usable as a manifest file name.
func ValidatePackageName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "package name cannot be empty")
	}
	if strings.ContainsAny(name, "/\x00") {
		return errors.Newf(errors.ErrInvalidInput, "package name %q contains invalid characters", name)
	}
	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "package name cannot be '.' or '..'")
	}
	return nil
}

// SecureJoin joins an archive-internal path onto root and refuses any
// result that would land outside root. The second return value is false
// for paths that escape (absolute names or ".." components).
func SecureJoin(root, name string) (string, bool) {
	rel := StripDotSlash(name)
	if filepath.IsAbs(rel) {
		return "", false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", false
		}
	}
	target := Join(root, rel)
	if !ContainsPath(root, target) {
		return "", false
	}
	return target, true
}

// ContainsPath checks if child is contained within parent.
// Both paths are cleaned before comparison.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// RelativeTo returns target relative to root without a leading slash.
func RelativeTo(root, target string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
