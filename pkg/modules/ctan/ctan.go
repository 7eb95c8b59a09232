package ctan

import (
	_ "embed"
	"strings"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules"
)

// ModuleName is the name of the ctan module
const ModuleName = "ctan"

//go:embed doc.md
var doc string

// CtanModule points tlmgr at the mirror
type CtanModule struct{}

// NewCtanModule creates a new instance of the ctan module
func NewCtanModule() *CtanModule {
	return &CtanModule{}
}

func (m *CtanModule) Name() string { return ModuleName }

func (m *CtanModule) Description() string {
	return "Sets the TeX Live package repository"
}

func (m *CtanModule) Doc() string { return doc }

func (m *CtanModule) IsApplicable(ctx *modules.Context) bool {
	return ctx.HasCommand("tlmgr")
}

func (m *CtanModule) IsOnline(ctx *modules.Context) bool {
	return sameRepository(repository(ctx), ctx.Settings(ModuleName).URL)
}

func (m *CtanModule) Activate(ctx *modules.Context) (bool, error) {
	return m.set(ctx, ctx.Settings(ModuleName).URL)
}

func (m *CtanModule) Deactivate(ctx *modules.Context) (bool, error) {
	return m.set(ctx, ctx.Settings(ModuleName).Upstream)
}

func (m *CtanModule) set(ctx *modules.Context, target string) (bool, error) {
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "CTAN repository",
		Before:  repository(ctx),
		After:   target,
	})
	if err != nil || !ok {
		return false, err
	}

	if _, err := ctx.Runner.Output("tlmgr", "option", "repository", target); err != nil {
		return false, errors.Wrap(err, errors.ErrCommandFailed, "failed to set tlmgr repository")
	}
	return true, nil
}

// repository returns the configured repository. tlmgr prints it as
// "Default package repository (repository): <url>".
func repository(ctx *modules.Context) string {
	out := ctx.Output("tlmgr", "option", "repository")
	if i := strings.LastIndex(out, ": "); i >= 0 {
		out = out[i+2:]
	}
	return strings.TrimSpace(out)
}

func sameRepository(a, b string) bool {
	return a != "" && strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}

// Verify interface compliance
var (
	_ modules.Module    = (*CtanModule)(nil)
	_ modules.Describer = (*CtanModule)(nil)
)
