package pkgdb

import (
	"fmt"

	"github.com/arthur-debert/pkgdb/internal/version"
	"github.com/arthur-debert/pkgdb/pkg/commands"
	"github.com/arthur-debert/pkgdb/pkg/config"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// packageNamesCompletion completes installed package ids.
func (a *app) packageNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := a.loadConfig(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	result, err := commands.ListPackages(commands.ListPackagesOptions{SessionOptions: a.session()})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		seen[arg] = true
	}
	var ids []string
	for _, p := range result.Packages {
		if !seen[p.Name] && !seen[p.ID()] {
			ids = append(ids, p.ID())
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "install <archive>...",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("root", a.cfg.Root).
				Bool("force", a.cfg.Force).
				Strs("archives", args).
				Msg("Installing packages")

			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.InstallPackages(commands.InstallPackagesOptions{
				SessionOptions: a.session(),
				Archives:       args,
				Force:          a.cfg.Force,
			})
			if result != nil {
				if rerr := renderer.RenderInstall(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <package>...",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("root", a.cfg.Root).
				Bool("force", a.cfg.Force).
				Strs("packages", args).
				Msg("Removing packages")

			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.RemovePackages(commands.RemovePackagesOptions{
				SessionOptions: a.session(),
				Names:          args,
				Force:          a.cfg.Force,
			})
			if result != nil {
				if rerr := renderer.RenderRemove(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}
}

func newOwnerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "owner <path>...",
		Aliases: []string{"which"},
		Short:   MsgOwnerShort,
		Long:    MsgOwnerLong,
		GroupID: "query",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.QueryOwners(commands.QueryOwnersOptions{
				SessionOptions: a.session(),
				Paths:          args,
			})
			if err != nil {
				return err
			}
			return renderer.RenderOwners(result)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "query",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.ListPackages(commands.ListPackagesOptions{SessionOptions: a.session()})
			if err != nil {
				return err
			}
			return renderer.RenderList(result)
		},
	}
}

func newFilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "files <package>",
		Short:             MsgFilesShort,
		Long:              MsgFilesLong,
		GroupID:           "query",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.PackageFiles(commands.PackageFilesOptions{
				SessionOptions: a.session(),
				Name:           args[0],
			})
			if err != nil {
				return err
			}
			return renderer.RenderFiles(result)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "check [package...]",
		Short:             MsgCheckShort,
		Long:              MsgCheckLong,
		GroupID:           "query",
		ValidArgsFunction: a.packageNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			result, err := commands.CheckPackages(commands.CheckPackagesOptions{
				SessionOptions: a.session(),
				Names:          args,
			})
			if err != nil {
				return err
			}
			if err := renderer.RenderCheck(result); err != nil {
				return err
			}
			if result.OK() {
				return nil
			}
			return errors.Newf(errors.ErrNotFound, MsgErrIncomplete, incomplete(result))
		},
	}
}

func incomplete(result *types.CheckResult) int {
	n := 0
	for _, p := range result.Packages {
		if len(p.Missing) > 0 {
			n++
		}
	}
	return n
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}
			data, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
