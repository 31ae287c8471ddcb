package owner

import (
	"github.com/arthur-debert/pkgdb/pkg/commands/internal"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// QueryOwnersOptions defines the options for the QueryOwners command.
type QueryOwnersOptions struct {
	types.SessionOptions

	// Paths are relative to the root; a leading "/" or "./" is ignored.
	Paths []string
}

// QueryOwners reports which packages own each path. A path nobody owns
// gets an empty owner list.
func QueryOwners(opts QueryOwnersOptions) (result *types.OwnerResult, err error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "QueryOwners").Strs("paths", opts.Paths).Msg("Executing command")

	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no paths given")
	}

	d, err := internal.OpenDatabase(opts.SessionOptions)
	if err != nil {
		return nil, err
	}
	defer internal.CloseDatabase(d, &err)

	result = &types.OwnerResult{}
	for _, path := range opts.Paths {
		owners, oerr := d.Owners(path)
		if oerr != nil {
			return nil, oerr
		}
		q := types.OwnerQuery{Path: path, Owners: []string{}}
		for _, pkg := range owners {
			q.Owners = append(q.Owners, pkg.ID())
		}
		result.Queries = append(result.Queries, q)
	}

	log.Info().Str("command", "QueryOwners").Int("pathCount", len(result.Queries)).Msg("Command finished")
	return result, nil
}
