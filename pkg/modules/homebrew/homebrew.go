package homebrew

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/modules"
)

// ModuleName is the name of the homebrew module
const ModuleName = "homebrew"

// BottleDomainVar is the environment variable brew reads bottle URLs from
const BottleDomainVar = "HOMEBREW_BOTTLE_DOMAIN"

//go:embed doc.md
var doc string

// repository is a git checkout brew manages
type repository struct {
	tap    string // empty for brew itself
	remote string // repository name under the remote root
}

var repositories = []repository{
	{tap: "", remote: "brew.git"},
	{tap: "homebrew/core", remote: "homebrew-core.git"},
	{tap: "homebrew/cask", remote: "homebrew-cask.git"},
}

func (r repository) label() string {
	if r.tap == "" {
		return "brew"
	}
	return r.tap
}

// HomebrewModule rewrites brew's git remotes and bottle domain
type HomebrewModule struct{}

// NewHomebrewModule creates a new instance of the homebrew module
func NewHomebrewModule() *HomebrewModule {
	return &HomebrewModule{}
}

func (m *HomebrewModule) Name() string { return ModuleName }

func (m *HomebrewModule) Description() string {
	return "Switches brew and its core taps to the mirror"
}

func (m *HomebrewModule) Doc() string { return doc }

func (m *HomebrewModule) IsApplicable(ctx *modules.Context) bool {
	return ctx.HasCommand("brew") && ctx.Output("brew", "--repo") != ""
}

func (m *HomebrewModule) IsOnline(ctx *modules.Context) bool {
	dir := ctx.Output("brew", "--repo")
	if dir == "" {
		return false
	}
	return remoteURL(ctx, dir) == remoteFor(ctx.Settings(ModuleName).URL, repositories[0])
}

func (m *HomebrewModule) Activate(ctx *modules.Context) (bool, error) {
	settings := ctx.Settings(ModuleName)
	bottles := settings.Option("bottle_domain", "")
	return m.apply(ctx, settings.URL, bottles)
}

func (m *HomebrewModule) Deactivate(ctx *modules.Context) (bool, error) {
	return m.apply(ctx, ctx.Settings(ModuleName).Upstream, "")
}

// apply points every present repository at root and sets the bottle domain,
// unsetting it when bottles is empty. All steps run; failures are joined.
func (m *HomebrewModule) apply(ctx *modules.Context, root, bottles string) (bool, error) {
	logger := ctx.LoggerFor(ModuleName)
	dirs := presentRepositories(ctx)
	profile := ctx.Profile()

	var before, after []string
	for _, repo := range repositories {
		dir, ok := dirs[repo.label()]
		if !ok {
			continue
		}
		before = append(before, fmt.Sprintf("%s: %s", repo.label(), remoteURL(ctx, dir)))
		after = append(after, fmt.Sprintf("%s: %s", repo.label(), remoteFor(root, repo)))
	}
	current, _ := profile.Get(BottleDomainVar)
	before = append(before, BottleDomainVar+"="+current)
	after = append(after, BottleDomainVar+"="+bottles)

	ok, err := ctx.Confirm(confirmations.Change{
		Subject: "Homebrew repo",
		Before:  strings.Join(before, "\n"),
		After:   strings.Join(after, "\n"),
	})
	if err != nil || !ok {
		return false, err
	}

	var errs []error
	for _, repo := range repositories {
		dir, ok := dirs[repo.label()]
		if !ok {
			continue
		}
		url := remoteFor(root, repo)
		err := ctx.Runner.InDir(dir, func() error {
			_, err := ctx.Runner.Output("git", "remote", "set-url", "origin", url)
			return err
		})
		if err != nil {
			logger.Debug().Err(err).Str("repo", repo.label()).Msg("Failed to set remote")
			errs = append(errs, errors.Wrapf(err, errors.ErrCommandFailed, "failed to set %s remote", repo.label()))
		}
	}

	if bottles == "" {
		err = profile.Unset(BottleDomainVar)
	} else {
		err = profile.Set(BottleDomainVar, bottles)
	}
	if err != nil {
		errs = append(errs, errors.Wrapf(err, errors.ErrFileWrite, "failed to update %s", BottleDomainVar))
	}

	if len(errs) > 0 {
		return false, stderrors.Join(errs...)
	}
	return true, nil
}

// presentRepositories maps repository labels to their checkout directories.
// Taps that brew knows about but that are not cloned are left out.
func presentRepositories(ctx *modules.Context) map[string]string {
	dirs := make(map[string]string)
	for _, repo := range repositories {
		args := []string{"--repo"}
		if repo.tap != "" {
			args = append(args, repo.tap)
		}
		dir := ctx.Output("brew", args...)
		if dir == "" {
			continue
		}
		if repo.tap != "" && !filesystem.IsDir(ctx.FS, dir) {
			continue
		}
		dirs[repo.label()] = dir
	}
	return dirs
}

func remoteURL(ctx *modules.Context, dir string) string {
	var url string
	err := ctx.Runner.InDir(dir, func() error {
		var err error
		url, err = ctx.Runner.Output("git", "remote", "get-url", "origin")
		return err
	})
	if err != nil {
		return ""
	}
	return url
}

func remoteFor(root string, repo repository) string {
	return strings.TrimSuffix(root, "/") + "/" + repo.remote
}

// Verify interface compliance
var (
	_ modules.Module    = (*HomebrewModule)(nil)
	_ modules.Describer = (*HomebrewModule)(nil)
)
