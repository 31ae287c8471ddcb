package remove

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// RemovePackagesOptions defines the options for the RemovePackages command.
type RemovePackagesOptions struct {
	types.SessionOptions

	// Names are package names or name#version identifiers.
	Names []string
	// Force also removes symlinks and prunes emptied directories.
	Force bool
}

// RemovePackages removes each named package: its files first, then its
// manifest. The first unknown name or failed commit stops the run.
func RemovePackages(opts RemovePackagesOptions) (result *types.RemoveResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "RemovePackages").Strs("names", opts.Names).Msg("Executing command")

	if len(opts.Names) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no package names given")
	}

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	result = &types.RemoveResult{}
	for _, name := range opts.Names {
		pkg, ok := d.Find(name)
		if !ok {
			return result, errors.Newf(errors.ErrPackageNotFound, "package %s not installed", name).
				WithDetail("package", name)
		}

		report, rerr := d.Remove(pkg, types.Options{Force: opts.Force})
		if rerr != nil {
			return result, rerr
		}
		if cerr := d.CommitRemoval(pkg.ID()); cerr != nil {
			return result, cerr
		}
		result.Reports = append(result.Reports, report)

		log.Info().
			Str("package", pkg.ID()).
			Int("removed", len(report.Removed)).
			Int("failed", len(report.Failed)).
			Msg("removed")
	}

	log.Info().Str("command", "RemovePackages").Int("packageCount", len(result.Reports)).Msg("Command finished")
	return result, nil
}
