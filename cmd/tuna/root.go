package tuna

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tuna/internal/version"
	"github.com/arthur-debert/tuna/pkg/config"
	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/logging"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/paths"
	"github.com/arthur-debert/tuna/pkg/registry"
	"github.com/arthur-debert/tuna/pkg/shell"
	"github.com/arthur-debert/tuna/pkg/style"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Dependencies are the host-facing services a run uses. Zero fields are
// filled with the real implementations.
type Dependencies struct {
	FS     types.FS
	Runner shell.Runner
	Paths  paths.Paths

	// Printer overrides the terminal printer, e.g. to force plain output
	Printer *style.Printer
}

// rootOptions holds the persistent flags
type rootOptions struct {
	verbosity  int
	yes        bool
	global     bool
	only       []string
	mirror     string
	configFile string
}

// session is everything a command needs once flags are parsed
type session struct {
	ctx     *modules.Context
	printer *style.Printer
	modules []modules.Module
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(Dependencies{})
}

// NewRootCmdWith creates the root command around the given dependencies
func NewRootCmdWith(deps Dependencies) *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tuna [up|down|status]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, deps, opts, commandUp)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.yes, "yes", "y", false, MsgFlagYes)
	flags.BoolVarP(&opts.global, "global", "g", false, MsgFlagGlobal)
	flags.StringSliceVar(&opts.only, "only", nil, MsgFlagOnly)
	flags.StringVar(&opts.mirror, "mirror", "", MsgFlagMirror)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	_ = rootCmd.RegisterFlagCompletionFunc("only", moduleNamesCompletion)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newUpCmd(deps, opts))
	rootCmd.AddCommand(newDownCmd(deps, opts))
	rootCmd.AddCommand(newStatusCmd(deps, opts))
	rootCmd.AddCommand(newListCmd(deps, opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newSession resolves paths and configuration and builds the run context
func newSession(cmd *cobra.Command, deps Dependencies, opts *rootOptions) (*session, error) {
	logger := logging.GetLogger("cli")

	p := deps.Paths
	if p == nil {
		var err error
		if p, err = paths.New(); err != nil {
			return nil, fmt.Errorf(MsgErrInitPaths, err)
		}
	}

	printer := deps.Printer
	if printer == nil {
		printer = style.NewPrinter(cmd.OutOrStdout())
	}

	configFile := opts.configFile
	if configFile == "" {
		configFile = p.ConfigFile()
	} else if _, err := os.Stat(configFile); err != nil {
		printer.Printf(style.Warning, MsgConfigFileMissing, configFile)
	}

	overrides := map[string]interface{}{}
	if opts.mirror != "" {
		overrides["mirror"] = opts.mirror
	}
	cfg, err := config.Load(configFile, overrides)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	selected, err := registry.Select(cfg, opts.only)
	if err != nil {
		return nil, err
	}

	fsys := deps.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	runner := deps.Runner
	if runner == nil {
		runner = shell.NewExecRunner(logging.GetLogger("shell"))
	}

	scope := types.ScopeFromFlag(opts.global)
	if scope.IsGlobal() && deps.FS == nil && os.Geteuid() != 0 {
		printer.Printf(style.Warning, MsgGlobalNeedsRoot)
	}

	logger.Debug().
		Str("mirror", cfg.Mirror).
		Str("scope", string(scope)).
		Str("config", configFile).
		Int("modules", len(selected)).
		Msg("Session ready")

	return &session{
		ctx: &modules.Context{
			Scope:   scope,
			Verbose: opts.verbosity > 0,
			Gate:    confirmations.NewGate(opts.yes, cmd.InOrStdin(), printer),
			Runner:  runner,
			FS:      fsys,
			Paths:   p,
			Config:  cfg,
			Logger:  logging.GetLogger("modules"),
		},
		printer: printer,
		modules: selected,
	}, nil
}

// moduleNamesCompletion completes --only with module names not yet given
func moduleNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	given, _ := cmd.Flags().GetStringSlice("only")
	seen := make(map[string]bool, len(given))
	for _, name := range given {
		seen[name] = true
	}

	var names []string
	for _, m := range registry.Modules() {
		if !seen[m.Name()] {
			names = append(names, m.Name())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
