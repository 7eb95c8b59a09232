package anaconda

import (
	_ "embed"
	"strings"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
	"gopkg.in/yaml.v3"
)

// ModuleName is the name of the anaconda module
const ModuleName = "anaconda"

const (
	// UserCondarc is relative to the home directory
	UserCondarc = ".condarc"

	// GlobalCondarc is the system-wide conda configuration
	GlobalCondarc = "/etc/conda/.condarc"
)

//go:embed doc.md
var doc string

var defaultChannels = []string{"pkgs/main", "pkgs/r", "pkgs/msys2"}

var customChannels = []string{"conda-forge", "msys2", "bioconda", "menpo", "pytorch", "simpleitk"}

// condarc is the parsed file. Keys tuna does not manage pass through untouched.
type condarc map[string]interface{}

// AnacondaModule points conda channels at the mirror
type AnacondaModule struct{}

// NewAnacondaModule creates a new instance of the anaconda module
func NewAnacondaModule() *AnacondaModule {
	return &AnacondaModule{}
}

func (m *AnacondaModule) Name() string { return ModuleName }

func (m *AnacondaModule) Description() string {
	return "Rewrites conda channels in .condarc"
}

func (m *AnacondaModule) Doc() string { return doc }

func (m *AnacondaModule) IsApplicable(ctx *modules.Context) bool {
	return ctx.HasCommand("conda") || filesystem.Exists(ctx.FS, condarcPath(ctx))
}

func (m *AnacondaModule) IsOnline(ctx *modules.Context) bool {
	rc, err := load(ctx)
	if err != nil {
		return false
	}
	target := channelURL(ctx, defaultChannels[0])
	for _, ch := range stringList(rc["default_channels"]) {
		if strings.TrimSuffix(ch, "/") == target {
			return true
		}
	}
	return false
}

func (m *AnacondaModule) Activate(ctx *modules.Context) (bool, error) {
	rc, err := load(ctx)
	if err != nil {
		return false, err
	}
	before := managed(rc)

	var channels []string
	for _, ch := range defaultChannels {
		channels = append(channels, channelURL(ctx, ch))
	}
	rc["default_channels"] = channels

	custom, _ := rc["custom_channels"].(map[string]interface{})
	if custom == nil {
		custom = make(map[string]interface{})
	}
	for _, name := range customChannels {
		custom[name] = cloudURL(ctx)
	}
	rc["custom_channels"] = custom

	if _, ok := rc["channels"]; !ok {
		rc["channels"] = []string{"defaults"}
	}
	if _, ok := rc["show_channel_urls"]; !ok {
		rc["show_channel_urls"] = true
	}

	return m.write(ctx, rc, before)
}

func (m *AnacondaModule) Deactivate(ctx *modules.Context) (bool, error) {
	rc, err := load(ctx)
	if err != nil {
		return false, err
	}
	before := managed(rc)

	delete(rc, "default_channels")
	if custom, ok := rc["custom_channels"].(map[string]interface{}); ok {
		for name, url := range custom {
			if url == cloudURL(ctx) {
				delete(custom, name)
			}
		}
		if len(custom) == 0 {
			delete(rc, "custom_channels")
		}
	}

	return m.write(ctx, rc, before)
}

func (m *AnacondaModule) write(ctx *modules.Context, rc condarc, before string) (bool, error) {
	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "anaconda " + condarcPath(ctx),
		Before:  before,
		After:   managed(rc),
	})
	if err != nil || !ok {
		return false, err
	}

	data, err := yaml.Marshal(map[string]interface{}(rc))
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to encode .condarc")
	}
	if err := filesystem.ReplaceFile(ctx.FS, condarcPath(ctx), data); err != nil {
		return false, err
	}
	return true, nil
}

func condarcPath(ctx *modules.Context) string {
	if ctx.Scope.IsGlobal() {
		return ctx.Paths.System(GlobalCondarc)
	}
	return ctx.Paths.UserFile(UserCondarc)
}

// load returns an empty condarc when the file does not exist
func load(ctx *modules.Context) (condarc, error) {
	path := condarcPath(ctx)
	data, err := filesystem.ReadOptional(ctx.FS, path)
	if err != nil {
		return nil, err
	}
	rc := condarc{}
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileParse, "failed to parse %s", path)
	}
	if rc == nil {
		rc = condarc{}
	}
	return rc, nil
}

// managed renders only the keys tuna edits, for the confirmation preview
func managed(rc condarc) string {
	subset := make(map[string]interface{})
	for _, key := range []string{"default_channels", "custom_channels"} {
		if v, ok := rc[key]; ok {
			subset[key] = v
		}
	}
	if len(subset) == 0 {
		return ""
	}
	data, err := yaml.Marshal(subset)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func channelURL(ctx *modules.Context, channel string) string {
	return strings.TrimSuffix(ctx.Settings(ModuleName).URL, "/") + "/" + channel
}

func cloudURL(ctx *modules.Context) string {
	return channelURL(ctx, "cloud")
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Verify interface compliance
var (
	_ modules.Module    = (*AnacondaModule)(nil)
	_ modules.Describer = (*AnacondaModule)(nil)
)
