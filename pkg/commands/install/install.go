package install

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// InstallPackagesOptions defines the options for the InstallPackages command.
type InstallPackagesOptions struct {
	types.SessionOptions

	// Archives are installed in the given order.
	Archives []string
	// Force skips the collision and already-installed checks and lets
	// extraction overwrite existing files.
	Force bool
}

// InstallPackages installs each archive in turn. The first failure stops
// the run; packages installed before it are kept and reported.
func InstallPackages(opts InstallPackagesOptions) (result *types.InstallResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "InstallPackages").Strs("archives", opts.Archives).Msg("Executing command")

	if len(opts.Archives) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no package archives given")
	}

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	result = &types.InstallResult{}
	for _, archive := range opts.Archives {
		pkg, ierr := d.Install(archive, types.Options{Force: opts.Force})
		if pkg != nil {
			result.Packages = append(result.Packages, types.InstalledPackage{
				PackageInfo: types.NewPackageInfo(pkg),
				Archive:     archive,
			})
		}
		if ierr != nil {
			return result, ierr
		}
		log.Info().Str("archive", archive).Str("package", pkg.ID()).Msg("installed")
	}

	log.Info().Str("command", "InstallPackages").Int("packageCount", len(result.Packages)).Msg("Command finished")
	return result, nil
}
