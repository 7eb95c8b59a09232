package apt

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
)

// SourcesList is apt's main source list
const SourcesList = "/etc/apt/sources.list"

var (
	//go:embed debian.md
	debianDoc string

	//go:embed ubuntu.md
	ubuntuDoc string
)

var sourcesTemplate = template.Must(template.New("sources.list").Parse(`# Generated by tuna. The previous file is kept as sources.list.tuna.bak
deb {{.URL}} {{.Codename}} {{.Components}}
deb {{.URL}} {{.Codename}}-updates {{.Components}}
deb {{.URL}} {{.Codename}}-backports {{.Components}}
deb {{.Security}} {{.Codename}}-security {{.Components}}
`))

// distro describes one apt-based distribution
type distro struct {
	name        string
	id          string
	description string
	doc         string
	components  string
}

// sourcesData fills the sources.list template
type sourcesData struct {
	URL        string
	Security   string
	Codename   string
	Components string
}

// AptModule rewrites sources.list for one distribution
type AptModule struct {
	distro distro
}

// NewDebianModule creates the module for Debian hosts
func NewDebianModule() *AptModule {
	return &AptModule{distro: distro{
		name:        "debian",
		id:          "debian",
		description: "Rewrites apt sources.list for Debian",
		doc:         debianDoc,
		components:  "main contrib non-free non-free-firmware",
	}}
}

// NewUbuntuModule creates the module for Ubuntu hosts
func NewUbuntuModule() *AptModule {
	return &AptModule{distro: distro{
		name:        "ubuntu",
		id:          "ubuntu",
		description: "Rewrites apt sources.list for Ubuntu",
		doc:         ubuntuDoc,
		components:  "main restricted universe multiverse",
	}}
}

func (m *AptModule) Name() string { return m.distro.name }

func (m *AptModule) Description() string { return m.distro.description }

func (m *AptModule) Doc() string { return m.distro.doc }

// IsApplicable requires global scope, a matching os-release ID with a
// codename, and an existing sources.list
func (m *AptModule) IsApplicable(ctx *modules.Context) bool {
	if !ctx.Scope.IsGlobal() {
		return false
	}
	release := readOSRelease(ctx.FS, ctx.Paths.System(OSRelease))
	if release["ID"] != m.distro.id || release["VERSION_CODENAME"] == "" {
		return false
	}
	return filesystem.Exists(ctx.FS, ctx.Paths.System(SourcesList))
}

// IsOnline reports whether every source line tuna would write is present
func (m *AptModule) IsOnline(ctx *modules.Context) bool {
	wanted, err := m.render(ctx)
	if err != nil {
		return false
	}
	data, err := filesystem.ReadOptional(ctx.FS, ctx.Paths.System(SourcesList))
	if err != nil || data == nil {
		return false
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		present[normalize(line)] = true
	}
	for _, line := range sourceLines(wanted) {
		if !present[line] {
			return false
		}
	}
	return true
}

func (m *AptModule) Activate(ctx *modules.Context) (bool, error) {
	path := ctx.Paths.System(SourcesList)
	content, err := m.render(ctx)
	if err != nil {
		return false, err
	}
	current, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return false, err
	}

	ok, err := ctx.Confirm(confirmations.Change{
		Subject: m.distro.name + " " + SourcesList,
		Before:  strings.TrimSpace(string(current)),
		After:   strings.TrimSpace(content),
	})
	if err != nil || !ok {
		return false, err
	}

	if err := filesystem.ReplaceFile(ctx.FS, path, []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

// Deactivate restores the backup taken by Activate. Without a backup the
// original content is unknown, so the operator has to restore it.
func (m *AptModule) Deactivate(ctx *modules.Context) (bool, error) {
	path := ctx.Paths.System(SourcesList)
	backup := filesystem.BackupPath(path)
	original, err := filesystem.ReadOptional(ctx.FS, backup)
	if err != nil {
		return false, err
	}
	if original == nil {
		return false, errors.NotImplemented(m.distro.name, "down").
			WithDetail("path", path)
	}
	current, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return false, err
	}

	ok, err := ctx.Confirm(confirmations.Change{
		Subject: m.distro.name + " " + SourcesList,
		Before:  strings.TrimSpace(string(current)),
		After:   strings.TrimSpace(string(original)),
	})
	if err != nil || !ok {
		return false, err
	}

	if _, err := filesystem.Restore(ctx.FS, path); err != nil {
		return false, err
	}
	return true, nil
}

func (m *AptModule) render(ctx *modules.Context) (string, error) {
	release := readOSRelease(ctx.FS, ctx.Paths.System(OSRelease))
	codename := release["VERSION_CODENAME"]
	if codename == "" {
		return "", errors.New(errors.ErrDetection, "release codename not found in os-release").
			WithDetail("module", m.distro.name)
	}

	settings := ctx.Settings(m.distro.name)
	data := sourcesData{
		URL:        settings.URL,
		Security:   settings.Option("security", settings.URL),
		Codename:   codename,
		Components: settings.Option("components", m.distro.components),
	}

	var buf bytes.Buffer
	if err := sourcesTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sources.list")
	}
	return buf.String(), nil
}

// sourceLines returns the normalized deb lines of a sources.list
func sourceLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = normalize(line)
		if strings.HasPrefix(line, "deb ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// Verify interface compliance
var (
	_ modules.Module    = (*AptModule)(nil)
	_ modules.Describer = (*AptModule)(nil)
)
