package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "TUNA_"

// MirrorPlaceholder is replaced with the mirror root in module settings
const MirrorPlaceholder = "{mirror}"

// Config is the resolved configuration for a run
type Config struct {
	Mirror  string                  `koanf:"mirror"`
	Modules map[string]ModuleConfig `koanf:"modules"`
}

// ModuleConfig holds the settings of a single module
type ModuleConfig struct {
	Enabled  bool              `koanf:"enabled"`
	URL      string            `koanf:"url"`
	Upstream string            `koanf:"upstream"`
	Options  map[string]string `koanf:"options"`
}

// Load builds the configuration from defaults, the optional config file,
// the environment and the given overrides (flat koanf keys, e.g. "mirror").
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configFile)
			}
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if strings.TrimSpace(cfg.Mirror) == "" {
		return nil, errors.New(errors.ErrConfigLoad, "mirror root must not be empty")
	}

	return &cfg, nil
}

// Default returns the embedded defaults with no file, env or overrides applied
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		panic(err)
	}
	return &cfg
}

// Module returns the settings of the named module with {mirror} expanded.
// Unknown modules get a zero, disabled config.
func (c *Config) Module(name string) ModuleConfig {
	m, ok := c.Modules[name]
	if !ok {
		return ModuleConfig{}
	}

	expanded := ModuleConfig{
		Enabled:  m.Enabled,
		URL:      c.expand(m.URL),
		Upstream: c.expand(m.Upstream),
		Options:  make(map[string]string, len(m.Options)),
	}
	for k, v := range m.Options {
		expanded.Options[k] = c.expand(v)
	}
	return expanded
}

// Enabled reports whether the named module takes part in a run
func (c *Config) Enabled(name string) bool {
	return c.Module(name).Enabled
}

func (c *Config) expand(s string) string {
	return strings.ReplaceAll(s, MirrorPlaceholder, c.Mirror)
}

// Option returns a module option, or fallback when unset
func (m ModuleConfig) Option(key, fallback string) string {
	if v, ok := m.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}
