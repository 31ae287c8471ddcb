package types

import (
	"strings"
)

// PackageEntry is one recorded path of a package.
type PackageEntry struct {
	// AbsolutePath is root joined with RelativePath
	AbsolutePath string `json:"absolutePath" yaml:"absolutePath"`

	// RelativePath is the path as recorded in the manifest, with any
	// leading "./" removed. Directories keep their trailing "/".
	RelativePath string `json:"path" yaml:"path"`
}

// IsDir reports whether the entry was recorded as a directory.
func (e PackageEntry) IsDir() bool {
	return strings.HasSuffix(e.RelativePath, "/")
}

// Package is an installed (or about to be installed) package.
type Package struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// ManifestPath is store_dir/name[#version]
	ManifestPath string `json:"manifest" yaml:"manifest"`

	// Entries in archive (or manifest) order
	Entries []PackageEntry `json:"entries" yaml:"entries"`
}

// ID returns name or name#version, matching the manifest file name.
func (p *Package) ID() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "#" + p.Version
}

// Paths returns the relative paths in order.
func (p *Package) Paths() []string {
	out := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.RelativePath
	}
	return out
}

// HasPath reports whether rel is recorded by the package. Trailing slashes
// and a leading "./" are ignored on both sides.
func (p *Package) HasPath(rel string) bool {
	key := entryKey(rel)
	for _, e := range p.Entries {
		if entryKey(e.RelativePath) == key {
			return true
		}
	}
	return false
}

func entryKey(rel string) string {
	return strings.TrimRight(strings.TrimPrefix(rel, "./"), "/")
}

// Options carries per-operation behavior into install and remove.
type Options struct {
	// Force skips the collision check on install and enables symlink
	// removal and directory pruning on remove.
	Force bool
}
