package list

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// ListPackagesOptions defines the options for the ListPackages command.
type ListPackagesOptions struct {
	types.SessionOptions
}

// ListPackages lists the installed packages in manifest order.
func ListPackages(opts ListPackagesOptions) (result *types.ListResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "ListPackages").Msg("Executing command")

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	result = &types.ListResult{Root: d.Root(), Packages: []types.PackageInfo{}}
	if _, err = d.Walk(func(pkg *types.Package) (types.WalkResult, error) {
		result.Packages = append(result.Packages, types.NewPackageInfo(pkg))
		return types.WalkContinue, nil
	}); err != nil {
		return nil, err
	}

	log.Info().Str("command", "ListPackages").Int("packageCount", len(result.Packages)).Msg("Command finished")
	return result, nil
}
