package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/tuna/pkg/config"
	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/paths"
	"github.com/arthur-debert/tuna/pkg/style"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// TestHome is the home directory of the in-memory host
	TestHome = "/home/tester"

	// TestRoot is the system root of the in-memory host
	TestRoot = "/"
)

// Environment is an in-memory host for module and dispatcher tests
type Environment struct {
	FS     types.FS
	Paths  paths.Paths
	Runner *FakeRunner
	Config *config.Config
	Out    *bytes.Buffer

	t *testing.T
}

// NewEnvironment creates an empty host using the embedded default config
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()
	return &Environment{
		FS:     filesystem.NewMemory(),
		Paths:  paths.NewWith(TestHome, TestRoot),
		Runner: NewFakeRunner(),
		Config: config.Default(),
		Out:    &bytes.Buffer{},
		t:      t,
	}
}

// Context builds a module context. input is what the operator types at the
// prompts, one answer per line.
func (e *Environment) Context(scope types.Scope, alwaysYes bool, input string) *modules.Context {
	printer := style.NewPlainPrinter(e.Out)
	return &modules.Context{
		Scope:  scope,
		Gate:   confirmations.NewGate(alwaysYes, strings.NewReader(input), printer),
		Runner: e.Runner,
		FS:     e.FS,
		Paths:  e.Paths,
		Config: e.Config,
		Logger: zerolog.Nop(),
	}
}

// UserContext is a non-interactive user-scope context
func (e *Environment) UserContext() *modules.Context {
	return e.Context(types.ScopeUser, true, "")
}

// GlobalContext is a non-interactive global-scope context
func (e *Environment) GlobalContext() *modules.Context {
	return e.Context(types.ScopeGlobal, true, "")
}

// WriteFile creates a file with content, creating parents as needed
func (e *Environment) WriteFile(path, content string) {
	e.t.Helper()
	if err := filesystem.WriteFile(e.FS, path, []byte(content)); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Mkdir creates a directory tree
func (e *Environment) Mkdir(path string) {
	e.t.Helper()
	if err := e.FS.MkdirAll(path, 0755); err != nil {
		e.t.Fatalf("failed to create %s: %v", path, err)
	}
}

// ReadFile returns a file's content, or "" when it does not exist
func (e *Environment) ReadFile(path string) string {
	e.t.Helper()
	data, err := filesystem.ReadOptional(e.FS, path)
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Home returns a path under the test home directory
func (e *Environment) Home(rel string) string {
	return e.Paths.UserFile(rel)
}

// System returns a path under the test system root
func (e *Environment) System(path string) string {
	return e.Paths.System(path)
}
