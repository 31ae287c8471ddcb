package types

// SessionOptions selects the database a command works on.
type SessionOptions struct {
	// Root is the install root
	Root string
	// DBDir and RejectFile are relative to Root; empty means the default
	DBDir      string
	RejectFile string
	// NoSignalGuard leaves signal handling alone (tests, embedding)
	NoSignalGuard bool
}

// PathError is a path that could not be processed.
type PathError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// RemoveReport describes what a remove did to each entry. Paths are absolute.
type RemoveReport struct {
	Package string `json:"package" yaml:"package"`

	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	// matched a reject rule
	Rejected []string `json:"rejected,omitempty" yaml:"rejected,omitempty"`
	// still listed by another active package
	Shared []string `json:"shared,omitempty" yaml:"shared,omitempty"`
	// already gone
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	// directories, and symlinks outside force mode
	Ignored []string `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	// empty directories removed in force mode
	Pruned []string    `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	Failed []PathError `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// PackageInfo summarizes one installed package.
type PackageInfo struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	Manifest string `json:"manifest" yaml:"manifest"`
	Entries  int    `json:"entries" yaml:"entries"`
}

// NewPackageInfo builds the summary of pkg.
func NewPackageInfo(pkg *Package) PackageInfo {
	return PackageInfo{
		Name:     pkg.Name,
		Version:  pkg.Version,
		Manifest: pkg.ManifestPath,
		Entries:  len(pkg.Entries),
	}
}

// ID returns name#version, or just the name when unversioned.
func (p PackageInfo) ID() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "#" + p.Version
}

// InstalledPackage is one archive handled by install.
type InstalledPackage struct {
	PackageInfo `yaml:",inline"`
	Archive     string `json:"archive" yaml:"archive"`
}

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	Packages []InstalledPackage `json:"packages" yaml:"packages"`
}

// RemoveResult holds the result of the 'remove' command.
type RemoveResult struct {
	Reports []*RemoveReport `json:"reports" yaml:"reports"`
}

// OwnerQuery is the answer for one queried path.
type OwnerQuery struct {
	Path   string   `json:"path" yaml:"path"`
	Owners []string `json:"owners" yaml:"owners"`
}

// OwnerResult holds the result of the 'owner' command.
type OwnerResult struct {
	Queries []OwnerQuery `json:"queries" yaml:"queries"`
}

// ListResult holds the result of the 'list' command.
type ListResult struct {
	Root     string        `json:"root" yaml:"root"`
	Packages []PackageInfo `json:"packages" yaml:"packages"`
}

// FilesResult holds the result of the 'files' command.
type FilesResult struct {
	Package PackageInfo `json:"package" yaml:"package"`
	Files   []string    `json:"files" yaml:"files"`
}

// CheckedPackage lists the recorded paths missing on disk.
type CheckedPackage struct {
	Name    string   `json:"name" yaml:"name"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// CheckResult holds the result of the 'check' command.
type CheckResult struct {
	Packages []CheckedPackage `json:"packages" yaml:"packages"`
}

// OK reports whether every checked package is complete.
func (r *CheckResult) OK() bool {
	for _, p := range r.Packages {
		if len(p.Missing) > 0 {
			return false
		}
	}
	return true
}
