package pypi

import (
	_ "embed"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules"
)

// ModuleName is the name of the pypi module
const ModuleName = "pypi"

// IndexURLKey is the pip configuration key holding the package index
const IndexURLKey = "global.index-url"

//go:embed doc.md
var doc string

// executables are tried in order
var executables = []string{"pip3", "pip"}

// PypiModule configures pip's index through `pip config`
type PypiModule struct{}

// NewPypiModule creates a new instance of the pypi module
func NewPypiModule() *PypiModule {
	return &PypiModule{}
}

func (m *PypiModule) Name() string { return ModuleName }

func (m *PypiModule) Description() string {
	return "Sets pip's global.index-url"
}

func (m *PypiModule) Doc() string { return doc }

func (m *PypiModule) IsApplicable(ctx *modules.Context) bool {
	return pip(ctx) != ""
}

func (m *PypiModule) IsOnline(ctx *modules.Context) bool {
	current := indexURL(ctx)
	return current != "" && current == ctx.Settings(ModuleName).URL
}

func (m *PypiModule) Activate(ctx *modules.Context) (bool, error) {
	target := ctx.Settings(ModuleName).URL
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "pypi " + IndexURLKey,
		Before:  indexURL(ctx),
		After:   target,
	})
	if err != nil || !ok {
		return false, err
	}

	if _, err := ctx.Runner.Output(pip(ctx), "config", scopeFlag(ctx), "set", IndexURLKey, target); err != nil {
		return false, errors.Wrapf(err, errors.ErrCommandFailed, "failed to set %s", IndexURLKey)
	}
	return true, nil
}

func (m *PypiModule) Deactivate(ctx *modules.Context) (bool, error) {
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "pypi " + IndexURLKey,
		Before:  indexURL(ctx),
		After:   "",
	})
	if err != nil || !ok {
		return false, err
	}

	if _, err := ctx.Runner.Output(pip(ctx), "config", scopeFlag(ctx), "unset", IndexURLKey); err != nil {
		return false, errors.Wrapf(err, errors.ErrCommandFailed, "failed to unset %s", IndexURLKey)
	}
	return true, nil
}

func pip(ctx *modules.Context) string {
	for _, name := range executables {
		if ctx.HasCommand(name) {
			return name
		}
	}
	return ""
}

// indexURL is "" when pip is missing or the key is unset
func indexURL(ctx *modules.Context) string {
	exe := pip(ctx)
	if exe == "" {
		return ""
	}
	return ctx.Output(exe, "config", scopeFlag(ctx), "get", IndexURLKey)
}

func scopeFlag(ctx *modules.Context) string {
	if ctx.Scope.IsGlobal() {
		return "--global"
	}
	return "--user"
}

// Verify interface compliance
var (
	_ modules.Module    = (*PypiModule)(nil)
	_ modules.Describer = (*PypiModule)(nil)
)
