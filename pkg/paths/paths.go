package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pkgdb/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot overrides the install root
	EnvRoot = "PKGDB_ROOT"

	// EnvConfig overrides the configuration file location
	EnvConfig = "PKGDB_CONFIG"
)

// Default layout below the install root.
// These define the on-disk format shared with every other tool that reads
// the database and are not meant to change between installations.
const (
	// DefaultRoot is the install root used when none is given
	DefaultRoot = "/"

	// DBDir is the store directory relative to the root
	DBDir = "var/pkg"

	// RejectFile is the reject rule file relative to the root
	RejectFile = "etc/pkgtools/reject.conf"

	// VersionSep separates name and version in manifest and archive names
	VersionSep = "#"

	// AppDirName is the directory name for pkgdb's own XDG files
	AppDirName = "pkgdb"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "pkgdb.log"
)

// Layout resolves database locations below one install root.
type Layout struct {
	root       string
	dbDir      string
	rejectFile string
}

// NewLayout builds a Layout for an already resolved root. Empty dbDir or
// rejectFile fall back to the defaults.
func NewLayout(root, dbDir, rejectFile string) *Layout {
	if dbDir == "" {
		dbDir = DBDir
	}
	if rejectFile == "" {
		rejectFile = RejectFile
	}
	return &Layout{
		root:       root,
		dbDir:      dbDir,
		rejectFile: rejectFile,
	}
}

// Root returns the install root.
func (l *Layout) Root() string { return l.root }

// StoreDir returns the directory holding one manifest per package.
func (l *Layout) StoreDir() string { return Join(l.root, l.dbDir) }

// RejectFilePath returns the reject rule file location.
func (l *Layout) RejectFilePath() string { return Join(l.root, l.rejectFile) }

// ManifestPath returns store_dir/name[#version].
func (l *Layout) ManifestPath(name, version string) string {
	return filepath.Join(l.StoreDir(), ManifestName(name, version))
}

// EntryPath returns the absolute path of a recorded relative path.
func (l *Layout) EntryPath(rel string) string { return Join(l.root, rel) }

// ResolveRoot returns the absolute, symlink-resolved form of root.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		root = DefaultRoot
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPath, "realpath %s", root)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPath, "realpath %s", root)
	}
	return resolved, nil
}

// Join builds root + "/" + rel with a single separator between them.
// A trailing slash on rel (directory entries) is dropped.
func Join(root, rel string) string {
	rel = strings.TrimLeft(rel, "/")
	if rel == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, rel)
}

// StripDotSlash removes one leading "./" from an archive-internal path.
func StripDotSlash(p string) string {
	return strings.TrimPrefix(p, "./")
}

// EntryKey normalizes a relative path for cross-package comparison so that
// "etc/shared/" and "etc/shared" refer to the same entry.
func EntryKey(rel string) string {
	key := strings.TrimRight(StripDotSlash(rel), "/")
	if key == "" {
		return rel
	}
	return key
}

// ConfigFilePath returns the user configuration file location.
func ConfigFilePath() string {
	if override := os.Getenv(EnvConfig); override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// LogFilePath returns the log file location.
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
