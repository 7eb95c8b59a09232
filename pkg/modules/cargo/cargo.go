package cargo

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/pelletier/go-toml/v2"
)

// ModuleName is the name of the cargo module
const ModuleName = "cargo"

// SourceName is the replacement source registered in the config
const SourceName = "tuna"

// EnvCargoHome relocates cargo's home directory
const EnvCargoHome = "CARGO_HOME"

//go:embed doc.md
var doc string

type table = map[string]interface{}

// CargoModule replaces the crates.io source with the mirror
type CargoModule struct{}

// NewCargoModule creates a new instance of the cargo module
func NewCargoModule() *CargoModule {
	return &CargoModule{}
}

func (m *CargoModule) Name() string { return ModuleName }

func (m *CargoModule) Description() string {
	return "Replaces the crates.io source in Cargo's config.toml"
}

func (m *CargoModule) Doc() string { return doc }

func (m *CargoModule) IsApplicable(ctx *modules.Context) bool {
	if ctx.Scope.IsGlobal() {
		return false
	}
	return ctx.HasCommand("cargo") || filesystem.IsDir(ctx.FS, cargoHome(ctx))
}

func (m *CargoModule) IsOnline(ctx *modules.Context) bool {
	cfg, err := load(ctx)
	if err != nil {
		return false
	}
	source := subtable(cfg, "source")
	crates := subtable(source, "crates-io")
	mirror := subtable(source, SourceName)
	return crates["replace-with"] == SourceName && mirror["registry"] == ctx.Settings(ModuleName).URL
}

func (m *CargoModule) Activate(ctx *modules.Context) (bool, error) {
	cfg, err := load(ctx)
	if err != nil {
		return false, err
	}
	before := sourceTables(cfg)

	source := ensureTable(cfg, "source")
	ensureTable(source, "crates-io")["replace-with"] = SourceName
	ensureTable(source, SourceName)["registry"] = ctx.Settings(ModuleName).URL

	return m.write(ctx, cfg, before)
}

func (m *CargoModule) Deactivate(ctx *modules.Context) (bool, error) {
	cfg, err := load(ctx)
	if err != nil {
		return false, err
	}
	before := sourceTables(cfg)

	source := subtable(cfg, "source")
	if crates := subtable(source, "crates-io"); crates != nil {
		delete(crates, "replace-with")
		if len(crates) == 0 {
			delete(source, "crates-io")
		}
	}
	delete(source, SourceName)
	if source != nil && len(source) == 0 {
		delete(cfg, "source")
	}

	return m.write(ctx, cfg, before)
}

func (m *CargoModule) write(ctx *modules.Context, cfg table, before string) (bool, error) {
	path := configPath(ctx)
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "cargo " + path,
		Before:  before,
		After:   sourceTables(cfg),
	})
	if err != nil || !ok {
		return false, err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to encode cargo config")
	}
	if err := filesystem.ReplaceFile(ctx.FS, path, data); err != nil {
		return false, err
	}
	return true, nil
}

func cargoHome(ctx *modules.Context) string {
	if home := os.Getenv(EnvCargoHome); home != "" {
		return home
	}
	return ctx.Paths.UserFile(".cargo")
}

// configPath prefers config.toml but keeps editing a legacy extensionless
// config when that is the only one present
func configPath(ctx *modules.Context) string {
	home := cargoHome(ctx)
	current := filepath.Join(home, "config.toml")
	legacy := filepath.Join(home, "config")
	if !filesystem.Exists(ctx.FS, current) && filesystem.Exists(ctx.FS, legacy) {
		return legacy
	}
	return current
}

func load(ctx *modules.Context) (table, error) {
	path := configPath(ctx)
	data, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return nil, err
	}
	cfg := table{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileParse, "failed to parse %s", path)
	}
	return cfg, nil
}

// sourceTables renders the [source] section for the confirmation preview
func sourceTables(cfg table) string {
	source := subtable(cfg, "source")
	if len(source) == 0 {
		return ""
	}
	data, err := toml.Marshal(table{"source": source})
	if err != nil {
		return ""
	}
	return string(data)
}

func subtable(t table, key string) table {
	if t == nil {
		return nil
	}
	sub, _ := t[key].(map[string]interface{})
	return sub
}

func ensureTable(t table, key string) table {
	sub := subtable(t, key)
	if sub == nil {
		sub = table{}
		t[key] = sub
	}
	return sub
}

// Verify interface compliance
var (
	_ modules.Module    = (*CargoModule)(nil)
	_ modules.Describer = (*CargoModule)(nil)
)
