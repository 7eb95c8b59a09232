package tuna

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Switch package managers to a mirror and back"
	MsgUpShort         = "Configure every detected tool to use the mirror"
	MsgDownShort       = "Restore every detected tool to its default upstream"
	MsgStatusShort     = "Show which detected tools use the mirror"
	MsgListShort       = "List all modules and their state"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// List states
	MsgStateDisabled      = "disabled"
	MsgStateNotApplicable = "not applicable"
	MsgStateOnline        = "online"
	MsgStateOffline       = "offline"

	// Status messages
	MsgGlobalNeedsRoot   = "global changes usually need root; rerun with sudo if writes fail"
	MsgConfigFileMissing = "config file %s not found, using defaults"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v info, -vv debug, -vvv trace)"
	MsgFlagYes     = "Apply every change without asking"
	MsgFlagGlobal  = "Change system-wide configuration instead of the user's"
	MsgFlagOnly    = "Restrict the run to the named modules (comma separated)"
	MsgFlagMirror  = "Mirror root used in module URLs"
	MsgFlagConfig  = "Path to the config file"
	MsgFlagLong    = "Render each module's documentation"
)

// Long messages loaded from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
