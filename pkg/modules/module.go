package modules

import (
	"github.com/arthur-debert/tuna/pkg/config"
	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/paths"
	"github.com/arthur-debert/tuna/pkg/shell"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/rs/zerolog"
)

// Module is a mirror adapter for one tool
type Module interface {
	Name() string
	IsApplicable(ctx *Context) bool
	IsOnline(ctx *Context) bool
	Activate(ctx *Context) (bool, error)
	Deactivate(ctx *Context) (bool, error)
}

// Describer is implemented by modules that document themselves for `tuna list`
type Describer interface {
	Description() string
	Doc() string
}

// Context is the run-wide state shared by every module. It is built once at
// startup; only the gate's always-yes flag changes during a run.
type Context struct {
	Scope   types.Scope
	Verbose bool
	Gate    *confirmations.Gate
	Runner  shell.Runner
	FS      types.FS
	Paths   paths.Paths
	Config  *config.Config
	Logger  zerolog.Logger
}

// Settings returns the configuration of the named module
func (c *Context) Settings(name string) config.ModuleConfig {
	return c.Config.Module(name)
}

// Confirm asks the gate whether change may be applied
func (c *Context) Confirm(change confirmations.Change) (bool, error) {
	return c.Gate.Confirm(change)
}

// LoggerFor returns the run logger tagged with a module name
func (c *Context) LoggerFor(name string) zerolog.Logger {
	return c.Logger.With().Str("module", name).Logger()
}

// Profile returns the shell profile files for the run's scope
func (c *Context) Profile() *shell.Profile {
	return shell.NewProfile(c.FS, c.Paths, c.Scope)
}

// HasCommand reports whether an executable is on PATH
func (c *Context) HasCommand(name string) bool {
	_, ok := c.Runner.LookPath(name)
	return ok
}

// Output runs a command and returns its output, or "" on any failure.
// It suits queries, where a failing command simply means "no data".
func (c *Context) Output(name string, args ...string) string {
	out, err := c.Runner.Output(name, args...)
	if err != nil {
		c.Logger.Debug().Err(err).Str("command", name).Msg("Query command failed")
		return ""
	}
	return out
}
