package maven

import (
	_ "embed"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/beevik/etree"
)

// ModuleName is the name of the maven module
const ModuleName = "maven"

// SettingsFile is relative to the home directory
const SettingsFile = ".m2/settings.xml"

const settingsNamespace = "http://maven.apache.org/SETTINGS/1.0.0"

//go:embed doc.md
var usage string

// MavenModule manages a <mirror> entry in settings.xml
type MavenModule struct{}

// NewMavenModule creates a new instance of the maven module
func NewMavenModule() *MavenModule {
	return &MavenModule{}
}

func (m *MavenModule) Name() string { return ModuleName }

func (m *MavenModule) Description() string {
	return "Adds a Maven Central mirror to settings.xml"
}

func (m *MavenModule) Doc() string { return usage }

func (m *MavenModule) IsApplicable(ctx *modules.Context) bool {
	if ctx.Scope.IsGlobal() {
		return false
	}
	return ctx.HasCommand("mvn") || filesystem.IsDir(ctx.FS, ctx.Paths.UserFile(".m2"))
}

func (m *MavenModule) IsOnline(ctx *modules.Context) bool {
	doc, err := load(ctx)
	if err != nil {
		return false
	}
	mirror := findMirror(doc, mirrorID(ctx))
	return mirror != nil && childText(mirror, "url") == ctx.Settings(ModuleName).URL
}

func (m *MavenModule) Activate(ctx *modules.Context) (bool, error) {
	doc, err := load(ctx)
	if err != nil {
		return false, err
	}
	settings := ctx.Settings(ModuleName)
	id := mirrorID(ctx)
	before := describe(findMirror(doc, id))

	if stale := findMirror(doc, id); stale != nil {
		stale.Parent().RemoveChild(stale)
	}

	root := doc.SelectElement("settings")
	mirrors := root.SelectElement("mirrors")
	if mirrors == nil {
		mirrors = root.CreateElement("mirrors")
	}
	mirror := mirrors.CreateElement("mirror")
	mirror.CreateElement("id").SetText(id)
	mirror.CreateElement("mirrorOf").SetText(settings.Option("mirror_of", "central"))
	mirror.CreateElement("url").SetText(settings.URL)

	return m.write(ctx, doc, before, describe(mirror))
}

func (m *MavenModule) Deactivate(ctx *modules.Context) (bool, error) {
	doc, err := load(ctx)
	if err != nil {
		return false, err
	}
	mirror := findMirror(doc, mirrorID(ctx))
	before := describe(mirror)

	if mirror != nil {
		mirrors := mirror.Parent()
		mirrors.RemoveChild(mirror)
		if len(mirrors.ChildElements()) == 0 {
			mirrors.Parent().RemoveChild(mirrors)
		}
	}

	return m.write(ctx, doc, before, "")
}

func (m *MavenModule) write(ctx *modules.Context, doc *etree.Document, before, after string) (bool, error) {
	path := ctx.Paths.UserFile(SettingsFile)
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "maven " + path,
		Before:  before,
		After:   after,
	})
	if err != nil || !ok {
		return false, err
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to encode settings.xml")
	}
	if err := filesystem.ReplaceFile(ctx.FS, path, data); err != nil {
		return false, err
	}
	return true, nil
}

// load parses settings.xml, starting a fresh document when it is missing
func load(ctx *modules.Context) (*etree.Document, error) {
	path := ctx.Paths.UserFile(SettingsFile)
	data, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if data == nil {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		doc.CreateElement("settings").CreateAttr("xmlns", settingsNamespace)
		return doc, nil
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileParse, "failed to parse %s", path)
	}
	if doc.SelectElement("settings") == nil {
		return nil, errors.Newf(errors.ErrFileParse, "%s has no <settings> element", path)
	}
	return doc, nil
}

func findMirror(doc *etree.Document, id string) *etree.Element {
	root := doc.SelectElement("settings")
	if root == nil {
		return nil
	}
	mirrors := root.SelectElement("mirrors")
	if mirrors == nil {
		return nil
	}
	for _, mirror := range mirrors.SelectElements("mirror") {
		if childText(mirror, "id") == id {
			return mirror
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

// describe renders a mirror element for the confirmation preview
func describe(mirror *etree.Element) string {
	if mirror == nil {
		return ""
	}
	doc := etree.NewDocument()
	doc.SetRoot(mirror.Copy())
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return out
}

func mirrorID(ctx *modules.Context) string {
	return ctx.Settings(ModuleName).Option("id", "tuna")
}

// Verify interface compliance
var (
	_ modules.Module    = (*MavenModule)(nil)
	_ modules.Describer = (*MavenModule)(nil)
)
