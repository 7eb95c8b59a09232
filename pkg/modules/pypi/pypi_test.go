package pypi_test

import (
	"testing"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules/pypi"
	"github.com/arthur-debert/tuna/pkg/testutil"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mirrorIndex = "https://mirrors.tuna.tsinghua.edu.cn/pypi/web/simple"

// fakePip keeps one config store per scope flag
type fakePip map[string]string

func (p fakePip) respond(c testutil.Call) (string, error) {
	if len(c.Args) < 4 || c.Args[0] != "config" || c.Args[3] != pypi.IndexURLKey {
		return "", testutil.Fail(c)
	}
	scope := c.Args[1]
	switch c.Args[2] {
	case "get":
		if v, ok := p[scope]; ok {
			return v, nil
		}
	case "set":
		p[scope] = c.Args[4]
		return "Writing to config", nil
	case "unset":
		if _, ok := p[scope]; ok {
			delete(p, scope)
			return "Writing to config", nil
		}
	}
	return "", testutil.Fail(c)
}

func TestIsApplicable(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		want     bool
	}{
		{"no_pip", nil, false},
		{"pip3", []string{"pip3"}, true},
		{"pip", []string{"pip"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			env.Runner.WithCommands(tt.commands...)
			assert.Equal(t, tt.want, pypi.NewPypiModule().IsApplicable(env.UserContext()))
		})
	}
}

func TestActivateDeactivate_RoundTrip(t *testing.T) {
	env := testutil.NewEnvironment(t)
	store := fakePip{}
	env.Runner.WithCommands("pip3").Respond(store.respond)
	ctx := env.UserContext()
	m := pypi.NewPypiModule()

	require.False(t, m.IsOnline(ctx))

	changed, err := m.Activate(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, mirrorIndex, store["--user"])
	assert.True(t, m.IsOnline(ctx))
	assert.True(t, env.Runner.Called("pip3 config --user set global.index-url "+mirrorIndex))

	changed, err = m.Deactivate(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, m.IsOnline(ctx))
	assert.NotContains(t, store, "--user")
}

func TestGlobalScope(t *testing.T) {
	env := testutil.NewEnvironment(t)
	store := fakePip{}
	env.Runner.WithCommands("pip").Respond(store.respond)
	ctx := env.GlobalContext()

	_, err := pypi.NewPypiModule().Activate(ctx)
	require.NoError(t, err)
	assert.Equal(t, mirrorIndex, store["--global"])
	assert.NotContains(t, store, "--user")
}

func TestActivate_DeclinedLeavesConfig(t *testing.T) {
	env := testutil.NewEnvironment(t)
	store := fakePip{"--user": "https://pypi.org/simple"}
	env.Runner.WithCommands("pip3").Respond(store.respond)

	changed, err := pypi.NewPypiModule().Activate(env.Context(types.ScopeUser, false, "n\n"))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "https://pypi.org/simple", store["--user"])
	assert.Contains(t, env.Out.String(), "https://pypi.org/simple")
	assert.Contains(t, env.Out.String(), "Do you wish to proceed(y/n/a):")
}

func TestDeactivate_CommandFails(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Runner.WithCommands("pip3").Respond(fakePip{}.respond)

	changed, err := pypi.NewPypiModule().Deactivate(env.UserContext())
	assert.False(t, changed)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
}
