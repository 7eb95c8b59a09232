package tuna

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tuna/internal/version"
	"github.com/arthur-debert/tuna/pkg/dispatcher"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/registry"
	"github.com/arthur-debert/tuna/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	commandUp     = dispatcher.CommandUp
	commandDown   = dispatcher.CommandDown
	commandStatus = dispatcher.CommandStatus
)

// docWidth is the wrap width for rendered module documentation
const docWidth = 80

// runDispatch applies one command to the selected modules. Module outcomes
// never turn into an error; only setup problems do.
func runDispatch(cmd *cobra.Command, deps Dependencies, opts *rootOptions, cmdType dispatcher.CommandType) error {
	s, err := newSession(cmd, deps, opts)
	if err != nil {
		return err
	}

	result, err := dispatcher.Dispatch(cmdType, dispatcher.Options{
		Context: s.ctx,
		Modules: s.modules,
		Printer: s.printer,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("command", string(cmdType)).
		Int("applicable", result.Applicable()).
		Int("transitioned", result.Count(dispatcher.ResultTransitioned)).
		Int("failed", result.Count(dispatcher.ResultFailed)).
		Msg("Run finished")
	return nil
}

func newDispatchCmd(deps Dependencies, opts *rootOptions, cmdType dispatcher.CommandType, short string) *cobra.Command {
	return &cobra.Command{
		Use:     string(cmdType),
		Short:   short,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, deps, opts, cmdType)
		},
	}
}

func newUpCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return newDispatchCmd(deps, opts, commandUp, MsgUpShort)
}

func newDownCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return newDispatchCmd(deps, opts, commandDown, MsgDownShort)
}

func newStatusCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return newDispatchCmd(deps, opts, commandStatus, MsgStatusShort)
}

func newListCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, deps, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range registry.Modules() {
				state, category := moduleState(s.ctx, m)
				fmt.Fprintln(out, style.ModuleRow(m.Name(), state, category, description(m)))
				if long {
					if d, ok := m.(modules.Describer); ok {
						rendered := style.RenderMarkdown(d.Doc(), s.printer.Color(), docWidth)
						fmt.Fprintln(out, strings.TrimRight(rendered, "\n"))
						fmt.Fprintln(out)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, MsgFlagLong)
	return cmd
}

// moduleState describes a module for the list view. It only queries.
func moduleState(ctx *modules.Context, m modules.Module) (string, style.Category) {
	switch {
	case !ctx.Config.Enabled(m.Name()):
		return MsgStateDisabled, style.Warning
	case !m.IsApplicable(ctx):
		return MsgStateNotApplicable, style.Info
	case m.IsOnline(ctx):
		return MsgStateOnline, style.Success
	default:
		return MsgStateOffline, style.Info
	}
}

func description(m modules.Module) string {
	if d, ok := m.(modules.Describer); ok {
		return d.Description()
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
