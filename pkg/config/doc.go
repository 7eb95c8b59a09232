// Package config handles configuration management for tuna.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user's config file ($XDG_CONFIG_HOME/tuna/config.toml)
//  3. TUNA_* environment variables, "__" separating key levels
//     (TUNA_MIRROR, TUNA_MODULES__PYPI__URL)
//  4. command-line overrides
//
// Module URLs may reference the mirror root as {mirror}.
package config
