package pkgdb

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/pkgdb/internal/version"
	"github.com/arthur-debert/pkgdb/pkg/cobrax/topics"
	"github.com/arthur-debert/pkgdb/pkg/config"
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
	"github.com/arthur-debert/pkgdb/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// app carries the flag values and the loaded configuration of one run.
type app struct {
	verbosity  int
	root       string
	force      bool
	format     string
	configFile string
	dbDir      string
	rejectFile string

	// noSignalGuard is set by tests that run many sessions in-process
	noSignalGuard bool

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pkgdb",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&a.root, "root", "r", "", MsgFlagRoot)
	flags.BoolVarP(&a.force, "force", "f", false, MsgFlagForce)
	flags.StringVar(&a.format, "format", "", MsgFlagFormat)
	flags.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.dbDir, "db-dir", "", MsgFlagDBDir)
	flags.StringVar(&a.rejectFile, "reject-file", "", MsgFlagRejectFile)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "QUERIES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newOwnerCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newFilesCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, source, topics.Options{Renderer: topics.NewGlamourRenderer()})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// loadConfig layers the changed flags over defaults, file and environment.
func (a *app) loadConfig(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("root") {
		overrides["root"] = a.root
	}
	if flags.Changed("force") {
		overrides["force"] = a.force
	}
	if flags.Changed("format") {
		overrides["output.format"] = a.format
	}
	if flags.Changed("db-dir") {
		overrides["db_dir"] = a.dbDir
	}
	if flags.Changed("reject-file") {
		overrides["reject_file"] = a.rejectFile
	}
	if flags.Changed("verbose") {
		overrides["verbosity"] = a.verbosity
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	if cfg.Verbosity != a.verbosity {
		logging.SetupLogger(cfg.Verbosity)
	}
	a.cfg = cfg
	return nil
}

// session describes the database the loaded configuration points at.
func (a *app) session() types.SessionOptions {
	return types.SessionOptions{
		Root:          a.cfg.Root,
		DBDir:         a.cfg.DBDir,
		RejectFile:    a.cfg.RejectFile,
		NoSignalGuard: a.noSignalGuard,
	}
}

// renderer picks the output format from the configuration, or from the
// flag alone when the configuration never loaded.
func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	name := a.format
	if a.cfg != nil {
		name = a.cfg.Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// Execute runs pkgdb with args, reports a failure on stderr and returns
// the process exit status.
func Execute(args []string) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	return run(a, rootCmd, os.Stderr)
}

func run(a *app, rootCmd *cobra.Command, stderr io.Writer) int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	renderer, rerr := a.renderer(stderr)
	if rerr != nil {
		renderer, _ = ui.NewRenderer(ui.FormatText, stderr)
	}
	if perr := renderer.RenderError(err); perr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return errors.ExitCode(err)
}
