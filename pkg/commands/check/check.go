package check

import (
	"os"

	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/filesystem"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// CheckPackagesOptions defines the options for the CheckPackages command.
type CheckPackagesOptions struct {
	types.SessionOptions

	// Names limits the check to these packages; empty checks all.
	Names []string
	// FS overrides the filesystem used to look at entries.
	FS types.FS
}

// CheckPackages reports, per package, the recorded paths that no longer
// exist below the root. Paths matching a reject rule are not checked.
func CheckPackages(opts CheckPackagesOptions) (result *types.CheckResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "CheckPackages").Strs("names", opts.Names).Msg("Executing command")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	var pkgs []*types.Package
	if len(opts.Names) == 0 {
		pkgs = d.Packages()
	} else {
		for _, name := range opts.Names {
			pkg, ok := d.Find(name)
			if !ok {
				return nil, errors.Newf(errors.ErrPackageNotFound, "package %s not installed", name).
					WithDetail("package", name)
			}
			pkgs = append(pkgs, pkg)
		}
	}

	result = &types.CheckResult{Packages: []types.CheckedPackage{}}
	missingTotal := 0
	for _, pkg := range pkgs {
		checked := types.CheckedPackage{Name: pkg.ID()}
		for _, e := range pkg.Entries {
			if d.Rules().Match(e.RelativePath) {
				continue
			}
			if _, serr := fs.Lstat(e.AbsolutePath); serr != nil {
				if !os.IsNotExist(serr) {
					log.Warn().Err(serr).Str("path", e.AbsolutePath).Msg("cannot stat entry")
				}
				checked.Missing = append(checked.Missing, e.AbsolutePath)
			}
		}
		missingTotal += len(checked.Missing)
		result.Packages = append(result.Packages, checked)
	}

	log.Info().
		Str("command", "CheckPackages").
		Int("packageCount", len(result.Packages)).
		Int("missingCount", missingTotal).
		Msg("Command finished")
	return result, nil
}
