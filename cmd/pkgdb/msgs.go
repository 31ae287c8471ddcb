package pkgdb

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A transactional package database"
	MsgInstallShort    = "Install package archives"
	MsgRemoveShort     = "Remove installed packages"
	MsgOwnerShort      = "Show which packages own a path"
	MsgListShort       = "List installed packages"
	MsgListLong        = "List shows every package recorded below the install root, in manifest order."
	MsgFilesShort      = "List the files of an installed package"
	MsgFilesLong       = "Files prints the paths recorded for a package, in install order."
	MsgCheckShort      = "Report recorded files missing on disk"
	MsgConfigShort     = "Print the effective configuration"
	MsgConfigLong      = "Config prints the configuration after defaults, the config file, PKGDB_* variables and flags are applied."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat  = "pkgdb version %s\n  commit: %s\n  built:  %s\n"
	MsgNothingMissing = "All recorded files are present."

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrIncomplete = "%d package(s) have missing files"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot       = "Install root (default /)"
	MsgFlagForce      = "Skip collision checks on install; remove symlinks and empty directories on remove"
	MsgFlagFormat     = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/pkgdb/config.toml)"
	MsgFlagDBDir      = "Package store directory, relative to the root"
	MsgFlagRejectFile = "Reject rule file, relative to the root"
	MsgFlagDefaults   = "Print the built-in defaults instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimRight(msgRemoveExampleRaw, "\n")

	//go:embed msgs/owner-long.txt
	msgOwnerLongRaw string
	MsgOwnerLong    = strings.TrimSpace(msgOwnerLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
