package files

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// PackageFilesOptions defines the options for the PackageFiles command.
type PackageFilesOptions struct {
	types.SessionOptions

	// Name is a package name or name#version identifier.
	Name string
}

// PackageFiles returns the recorded entries of one package, in manifest
// order.
func PackageFiles(opts PackageFilesOptions) (result *types.FilesResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "PackageFiles").Str("package", opts.Name).Msg("Executing command")

	if opts.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no package name given")
	}

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	pkg, ok := d.Find(opts.Name)
	if !ok {
		return nil, errors.Newf(errors.ErrPackageNotFound, "package %s not installed", opts.Name).
			WithDetail("package", opts.Name)
	}

	result = &types.FilesResult{
		Package: types.NewPackageInfo(pkg),
		Files:   pkg.Paths(),
	}

	log.Info().Str("command", "PackageFiles").Int("fileCount", len(result.Files)).Msg("Command finished")
	return result, nil
}
