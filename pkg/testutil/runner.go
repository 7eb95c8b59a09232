package testutil

import (
	"strings"
	"sync"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/shell"
)

// Call is one recorded command invocation
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the call as a single space-separated command line
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Responder answers a call. It is consulted before the static responses.
type Responder func(c Call) (string, error)

// FakeRunner is a scripted shell.Runner. Commands answer from a Responder,
// then from static responses keyed by command line; anything else fails as a
// missing command would.
type FakeRunner struct {
	mu        sync.Mutex
	commands  map[string]bool
	responses map[string]string
	responder Responder
	dir       string

	Calls []Call
	Dirs  []string
}

// NewFakeRunner creates a runner with nothing on PATH
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		commands:  make(map[string]bool),
		responses: make(map[string]string),
	}
}

// WithCommands puts executables on the fake PATH
func (f *FakeRunner) WithCommands(names ...string) *FakeRunner {
	for _, name := range names {
		f.commands[name] = true
	}
	return f
}

// On scripts the output for an exact command line such as "brew --repo"
func (f *FakeRunner) On(line, output string) *FakeRunner {
	f.responses[line] = output
	return f
}

// Respond installs a dynamic responder
func (f *FakeRunner) Respond(r Responder) *FakeRunner {
	f.responder = r
	return f
}

func (f *FakeRunner) Output(name string, args ...string) (string, error) {
	f.mu.Lock()
	call := Call{Dir: f.dir, Name: name, Args: append([]string(nil), args...)}
	f.Calls = append(f.Calls, call)
	responder := f.responder
	out, scripted := f.responses[call.Line()]
	f.mu.Unlock()

	if responder != nil {
		return responder(call)
	}
	if scripted {
		return out, nil
	}
	return "", Fail(call)
}

func (f *FakeRunner) LookPath(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commands[name] {
		return "/usr/bin/" + name, true
	}
	return "", false
}

func (f *FakeRunner) InDir(dir string, fn func() error) error {
	f.mu.Lock()
	previous := f.dir
	f.dir = dir
	f.Dirs = append(f.Dirs, dir)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.dir = previous
		f.mu.Unlock()
	}()
	return fn()
}

// Dir returns the current fake working directory
func (f *FakeRunner) Dir() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dir
}

// Lines returns every recorded call as a command line
func (f *FakeRunner) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.Line())
	}
	return lines
}

// Called reports whether a command line was run
func (f *FakeRunner) Called(line string) bool {
	for _, l := range f.Lines() {
		if l == line {
			return true
		}
	}
	return false
}

// Fail builds the error a real runner returns for a failing command
func Fail(c Call) error {
	return errors.Newf(errors.ErrCommandFailed, "%s", c.Line()).WithDetail("exit_code", 1)
}

// Verify interface compliance
var _ shell.Runner = (*FakeRunner)(nil)
