package archlinux

import (
	_ "embed"
	"strings"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
)

// ModuleName is the name of the archlinux module
const ModuleName = "archlinux"

// MirrorList is pacman's server list
const MirrorList = "/etc/pacman.d/mirrorlist"

//go:embed doc.md
var doc string

// ArchlinuxModule points pacman at the mirror through its mirrorlist
type ArchlinuxModule struct{}

// NewArchlinuxModule creates a new instance of the archlinux module
func NewArchlinuxModule() *ArchlinuxModule {
	return &ArchlinuxModule{}
}

func (m *ArchlinuxModule) Name() string { return ModuleName }

func (m *ArchlinuxModule) Description() string {
	return "Prepends the mirror to pacman's mirrorlist"
}

func (m *ArchlinuxModule) Doc() string { return doc }

// IsApplicable requires global scope and an existing mirrorlist
func (m *ArchlinuxModule) IsApplicable(ctx *modules.Context) bool {
	return ctx.Scope.IsGlobal() && filesystem.Exists(ctx.FS, ctx.Paths.System(MirrorList))
}

func (m *ArchlinuxModule) IsOnline(ctx *modules.Context) bool {
	data, err := filesystem.ReadOptional(ctx.FS, ctx.Paths.System(MirrorList))
	if err != nil || data == nil {
		return false
	}
	target := serverLine(ctx)
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == target {
			return true
		}
	}
	return false
}

func (m *ArchlinuxModule) Activate(ctx *modules.Context) (bool, error) {
	path := ctx.Paths.System(MirrorList)
	data, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return false, err
	}

	target := serverLine(ctx)
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "Arch Linux mirrorlist",
		Before:  firstServer(string(data)),
		After:   target,
	})
	if err != nil || !ok {
		return false, err
	}

	if err := filesystem.ReplaceFile(ctx.FS, path, []byte(target+"\n"+string(data))); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ArchlinuxModule) Deactivate(ctx *modules.Context) (bool, error) {
	path := ctx.Paths.System(MirrorList)
	data, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return false, err
	}

	target := serverLine(ctx)
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != target {
			kept = append(kept, line)
		}
	}
	remaining := strings.Join(kept, "\n")

	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "Arch Linux mirrorlist",
		Before:  target,
		After:   firstServer(remaining),
	})
	if err != nil || !ok {
		return false, err
	}

	if err := filesystem.WriteFile(ctx.FS, path, []byte(remaining)); err != nil {
		return false, err
	}
	return true, nil
}

func serverLine(ctx *modules.Context) string {
	return "Server = " + ctx.Settings(ModuleName).URL
}

// firstServer returns the first uncommented Server line, the one pacman uses
func firstServer(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Server") {
			return line
		}
	}
	return ""
}

// Verify interface compliance
var (
	_ modules.Module    = (*ArchlinuxModule)(nil)
	_ modules.Describer = (*ArchlinuxModule)(nil)
)
