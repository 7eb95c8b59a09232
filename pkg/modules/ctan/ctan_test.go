package ctan_test

import (
	"testing"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules/ctan"
	"github.com/arthur-debert/tuna/pkg/testutil"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mirrorRepo = "https://mirrors.tuna.tsinghua.edu.cn/CTAN/systems/texlive/tlnet"

// fakeTlmgr stores the repository option
func fakeTlmgr(repo *string) testutil.Responder {
	return func(c testutil.Call) (string, error) {
		if c.Name != "tlmgr" || len(c.Args) < 2 || c.Args[1] != "repository" {
			return "", testutil.Fail(c)
		}
		if len(c.Args) == 3 {
			*repo = c.Args[2]
			return "tlmgr: setting default package repository to " + *repo, nil
		}
		return "Default package repository (repository): " + *repo, nil
	}
}

func TestIsApplicable(t *testing.T) {
	env := testutil.NewEnvironment(t)
	m := ctan.NewCtanModule()
	assert.False(t, m.IsApplicable(env.UserContext()))

	env.Runner.WithCommands("tlmgr")
	assert.True(t, m.IsApplicable(env.UserContext()))
}

func TestIsOnline(t *testing.T) {
	tests := []struct {
		name string
		repo string
		want bool
	}{
		{"mirror", mirrorRepo, true},
		{"mirror_trailing_slash", mirrorRepo + "/", true},
		{"upstream", "https://mirror.ctan.org/systems/texlive/tlnet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			repo := tt.repo
			env.Runner.WithCommands("tlmgr").Respond(fakeTlmgr(&repo))
			assert.Equal(t, tt.want, ctan.NewCtanModule().IsOnline(env.UserContext()))
		})
	}
}

func TestIsOnline_CommandFailure(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Runner.WithCommands("tlmgr")
	assert.False(t, ctan.NewCtanModule().IsOnline(env.UserContext()))
}

func TestActivateDeactivate_RoundTrip(t *testing.T) {
	env := testutil.NewEnvironment(t)
	repo := "https://mirror.ctan.org/systems/texlive/tlnet"
	env.Runner.WithCommands("tlmgr").Respond(fakeTlmgr(&repo))
	ctx := env.UserContext()
	m := ctan.NewCtanModule()

	changed, err := m.Activate(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, mirrorRepo, repo)
	assert.True(t, m.IsOnline(ctx))

	changed, err = m.Deactivate(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "ctan", repo)
	assert.False(t, m.IsOnline(ctx))
}

func TestActivate_Declined(t *testing.T) {
	env := testutil.NewEnvironment(t)
	repo := "ctan"
	env.Runner.WithCommands("tlmgr").Respond(fakeTlmgr(&repo))

	changed, err := ctan.NewCtanModule().Activate(env.Context(types.ScopeUser, false, "no\n"))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "ctan", repo)
}

func TestActivate_CommandFails(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Runner.WithCommands("tlmgr")

	changed, err := ctan.NewCtanModule().Activate(env.UserContext())
	assert.False(t, changed)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}
