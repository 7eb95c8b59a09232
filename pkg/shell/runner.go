package shell

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner invokes external commands on behalf of modules
type Runner interface {
	// Output runs the command and returns its stdout with trailing whitespace
	// removed. A missing executable or a non-zero exit is ErrCommandFailed.
	Output(name string, args ...string) (string, error)

	// LookPath reports the resolved location of an executable
	LookPath(name string) (string, bool)

	// InDir runs fn with the working directory set to dir and restores the
	// previous directory afterwards, whatever fn returns.
	InDir(dir string, fn func() error) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner creates a runner logging through the given logger
func NewExecRunner(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Output(name string, args ...string) (string, error) {
	logging.LogCommand(r.logger, name, args)

	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		wrapped := errors.Wrapf(err, errors.ErrCommandFailed, "%s %s", name, strings.Join(args, " "))
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			wrapped.WithDetail("exit_code", exitErr.ExitCode())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped.WithDetail("stderr", msg)
		}
		r.logger.Debug().Err(err).Str("command", name).Msg("Command failed")
		return "", wrapped
	}

	return strings.TrimRight(string(out), " \t\r\n"), nil
}

func (r *ExecRunner) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

func (r *ExecRunner) InDir(dir string, fn func() error) (err error) {
	previous, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read working directory")
	}
	if err := os.Chdir(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to enter %s", dir)
	}
	defer func() {
		if restoreErr := os.Chdir(previous); restoreErr != nil && err == nil {
			err = errors.Wrapf(restoreErr, errors.ErrFileAccess, "failed to return to %s", previous)
		}
	}()

	r.logger.Trace().Str("dir", dir).Msg("Entered directory")
	return fn()
}

// Verify interface compliance
var _ Runner = (*ExecRunner)(nil)
