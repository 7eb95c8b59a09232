package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/tuna/pkg/errors"
)

// Environment variable names
const (
	// EnvTunaConfigDir overrides the XDG config directory for tuna
	EnvTunaConfigDir = "TUNA_CONFIG_DIR"

	// EnvTunaStateDir overrides the XDG state directory for tuna
	EnvTunaStateDir = "TUNA_STATE_DIR"

	// EnvTunaRoot relocates system files, e.g. to operate on a chroot
	EnvTunaRoot = "TUNA_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for tuna-specific files
	AppDirName = "tuna"

	// ConfigFileName is the user configuration file inside the config dir
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "tuna.log"
)

// Paths provides centralized path management for tuna
type Paths interface {
	Home() string
	Root() string
	System(path string) string
	UserFile(rel string) string
	ConfigDir() string
	ConfigFile() string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	home      string
	root      string
	xdgConfig string
	xdgState  string
}

// New resolves paths from the environment
func New() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
		if home == "" {
			return nil, errors.Wrap(err, errors.ErrNotFound, "failed to determine home directory")
		}
	}

	root := os.Getenv(EnvTunaRoot)
	if root == "" {
		root = string(filepath.Separator)
	}

	p := &paths{home: home, root: expandHome(root, home)}

	if dir := os.Getenv(EnvTunaConfigDir); dir != "" {
		p.xdgConfig = expandHome(dir, home)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG_STATE_HOME is read directly so it tracks the same lookup as the logger
	if dir := os.Getenv(EnvTunaStateDir); dir != "" {
		p.xdgState = expandHome(dir, home)
	} else if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.xdgState = filepath.Join(stateHome, AppDirName)
	} else {
		p.xdgState = filepath.Join(home, ".local", "state", AppDirName)
	}

	return p, nil
}

// NewWith builds paths around an explicit home and system root.
// Config and state live under the given home.
func NewWith(home, root string) Paths {
	return &paths{
		home:      home,
		root:      root,
		xdgConfig: filepath.Join(home, ".config", AppDirName),
		xdgState:  filepath.Join(home, ".local", "state", AppDirName),
	}
}

func (p *paths) Home() string { return p.home }

func (p *paths) Root() string { return p.root }

// System maps an absolute system path such as /etc/pacman.d/mirrorlist under the root
func (p *paths) System(path string) string {
	return filepath.Join(p.root, strings.TrimPrefix(path, string(filepath.Separator)))
}

// UserFile returns a path relative to the home directory
func (p *paths) UserFile(rel string) string {
	return filepath.Join(p.home, rel)
}

func (p *paths) ConfigDir() string { return p.xdgConfig }

func (p *paths) ConfigFile() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) StateDir() string { return p.xdgState }

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
