package registry

import (
	"strings"

	"github.com/arthur-debert/tuna/pkg/config"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/modules/anaconda"
	"github.com/arthur-debert/tuna/pkg/modules/apt"
	"github.com/arthur-debert/tuna/pkg/modules/archlinux"
	"github.com/arthur-debert/tuna/pkg/modules/cargo"
	"github.com/arthur-debert/tuna/pkg/modules/ctan"
	"github.com/arthur-debert/tuna/pkg/modules/homebrew"
	"github.com/arthur-debert/tuna/pkg/modules/maven"
	"github.com/arthur-debert/tuna/pkg/modules/pypi"
)

var moduleRegistry Registry[modules.Module]

func init() {
	moduleRegistry = New[modules.Module]()
	for _, m := range []modules.Module{
		archlinux.NewArchlinuxModule(),
		homebrew.NewHomebrewModule(),
		ctan.NewCtanModule(),
		pypi.NewPypiModule(),
		anaconda.NewAnacondaModule(),
		cargo.NewCargoModule(),
		maven.NewMavenModule(),
		apt.NewDebianModule(),
		apt.NewUbuntuModule(),
	} {
		MustRegister(moduleRegistry, m.Name(), m)
	}
}

// Modules returns every known module in display order
func Modules() []modules.Module {
	return moduleRegistry.Items()
}

// Module returns a module by name
func Module(name string) (modules.Module, error) {
	m, err := moduleRegistry.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrModuleNotFound, "unknown module %q", name).
			WithDetail("known", strings.Join(moduleRegistry.List(), ", "))
	}
	return m, nil
}

// Select returns the modules taking part in a run, in display order.
// Disabled modules are dropped; a non-empty only list keeps just the named
// modules, and naming an unknown module is an error.
func Select(cfg *config.Config, only []string) ([]modules.Module, error) {
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := Module(name); err != nil {
			return nil, err
		}
		wanted[name] = true
	}

	var selected []modules.Module
	for _, m := range Modules() {
		if len(wanted) > 0 && !wanted[m.Name()] {
			continue
		}
		if !cfg.Enabled(m.Name()) {
			continue
		}
		selected = append(selected, m)
	}
	return selected, nil
}
