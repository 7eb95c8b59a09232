// Package dispatcher applies one command to every selected module in order.
// It is the entry point from the CLI layer. A module's failure is reported
// and the run moves on; nothing a module does ends the run.
package dispatcher

import (
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/logging"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/style"
)

// CommandType represents the command applied to the modules
type CommandType string

const (
	CommandUp     CommandType = "up"
	CommandDown   CommandType = "down"
	CommandStatus CommandType = "status"
)

// ParseCommand validates a command name
func ParseCommand(name string) (CommandType, error) {
	switch cmd := CommandType(name); cmd {
	case CommandUp, CommandDown, CommandStatus:
		return cmd, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown command %q", name)
	}
}

// ResultKind classifies what happened to one module
type ResultKind string

const (
	ResultSkipped      ResultKind = "skipped"
	ResultOnline       ResultKind = "online"
	ResultOffline      ResultKind = "offline"
	ResultAlready      ResultKind = "already"
	ResultTransitioned ResultKind = "transitioned"
	ResultDeclined     ResultKind = "declined"
	ResultUnsupported  ResultKind = "unsupported"
	ResultFailed       ResultKind = "failed"
)

// Outcome is the result of applying a command to one module
type Outcome struct {
	Module  string
	Command CommandType
	Result  ResultKind
	Err     error
}

// Result collects the outcomes of a run in module order
type Result struct {
	Command  CommandType
	Outcomes []Outcome
}

// Count returns how many modules ended with the given kind
func (r *Result) Count(kind ResultKind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result == kind {
			n++
		}
	}
	return n
}

// Applicable returns how many modules were not skipped
func (r *Result) Applicable() int {
	return len(r.Outcomes) - r.Count(ResultSkipped)
}

// Options contains everything a dispatch needs
type Options struct {
	Context *modules.Context
	Modules []modules.Module
	Printer *style.Printer
}

// Dispatch applies cmdType to each module in order, printing one line per
// applicable module as it goes. The returned error only reports an unknown
// command; module problems are carried in the outcomes.
func Dispatch(cmdType CommandType, opts Options) (*Result, error) {
	logger := logging.GetLogger("dispatcher")
	if _, err := ParseCommand(string(cmdType)); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("command", string(cmdType)).
		Str("scope", string(opts.Context.Scope)).
		Int("modules", len(opts.Modules)).
		Msg("Dispatching command")
	defer logging.LogOperationStart(logger, string(cmdType))()

	result := &Result{Command: cmdType}
	for _, m := range opts.Modules {
		outcome := run(cmdType, m, opts.Context)
		logger.Debug().
			Str("module", outcome.Module).
			Str("result", string(outcome.Result)).
			AnErr("error", outcome.Err).
			Msg("Module done")
		report(opts.Printer, outcome)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if cmdType == CommandStatus && result.Applicable() == 0 {
		logger.Info().Msg(MsgNoApplicable)
	}
	return result, nil
}

func run(cmdType CommandType, m modules.Module, ctx *modules.Context) Outcome {
	outcome := Outcome{Module: m.Name(), Command: cmdType}

	if !m.IsApplicable(ctx) {
		outcome.Result = ResultSkipped
		return outcome
	}
	online := m.IsOnline(ctx)

	var transition func(*modules.Context) (bool, error)
	switch cmdType {
	case CommandStatus:
		outcome.Result = ResultOffline
		if online {
			outcome.Result = ResultOnline
		}
		return outcome
	case CommandUp:
		if online {
			outcome.Result = ResultAlready
			return outcome
		}
		transition = m.Activate
	case CommandDown:
		if !online {
			outcome.Result = ResultAlready
			return outcome
		}
		transition = m.Deactivate
	}

	changed, err := transition(ctx)
	switch {
	case errors.IsErrorCode(err, errors.ErrNotImplemented):
		outcome.Result = ResultUnsupported
		outcome.Err = err
	case err != nil:
		outcome.Result = ResultFailed
		outcome.Err = err
	case changed:
		outcome.Result = ResultTransitioned
	default:
		outcome.Result = ResultDeclined
	}
	return outcome
}

func report(p *style.Printer, o Outcome) {
	switch o.Result {
	case ResultSkipped:
		// not applicable modules stay silent
	case ResultOnline:
		p.Printf(style.Success, MsgOnline, o.Module)
	case ResultOffline:
		p.Printf(style.Info, MsgOffline, o.Module)
	case ResultAlready:
		if o.Command == CommandDown {
			p.Printf(style.Info, MsgAlreadyDown, o.Module)
		} else {
			p.Printf(style.Info, MsgAlreadyUp, o.Module)
		}
	case ResultTransitioned:
		if o.Command == CommandDown {
			p.Printf(style.Success, MsgSwitchedDown, o.Module)
		} else {
			p.Printf(style.Success, MsgSwitchedUp, o.Module)
		}
	case ResultDeclined:
		p.Printf(style.Warning, MsgDeclined, o.Module)
	case ResultUnsupported:
		p.Printf(style.Info, MsgUnsupported, o.Module, o.Command)
	case ResultFailed:
		p.Printf(style.Error, MsgFailed, o.Module, o.Err)
	default:
		p.Printf(style.Error, MsgUnknownResult, o.Module, o.Result)
	}
}
