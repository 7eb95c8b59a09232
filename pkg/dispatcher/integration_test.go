package dispatcher_test

import (
	"testing"

	"github.com/arthur-debert/tuna/pkg/dispatcher"
	"github.com/arthur-debert/tuna/pkg/modules/archlinux"
	"github.com/arthur-debert/tuna/pkg/registry"
	"github.com/arthur-debert/tuna/pkg/testutil"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredModules_EmptyHostStatus(t *testing.T) {
	t.Setenv("CARGO_HOME", "")
	env := testutil.NewEnvironment(t)
	mods, err := registry.Select(env.Config, nil)
	require.NoError(t, err)

	result := dispatch(t, env, env.GlobalContext(), dispatcher.CommandStatus, mods...)

	assert.Len(t, result.Outcomes, 9)
	assert.Equal(t, 9, result.Count(dispatcher.ResultSkipped))
	assert.Empty(t, env.Out.String())
	assert.Empty(t, env.Runner.Calls, "no tool on PATH means no command runs")
}

func TestArchlinux_GlobalStatusThenUpDown(t *testing.T) {
	env := testutil.NewEnvironment(t)
	path := env.System(archlinux.MirrorList)
	env.WriteFile(path, "Server = https://mirrors.tuna.tsinghua.edu.cn/archlinux/$repo/os/$arch\n")
	mods, err := registry.Select(env.Config, []string{"archlinux"})
	require.NoError(t, err)

	// online detection reads the file only; no input is available
	status := dispatch(t, env, env.Context(types.ScopeGlobal, false, ""), dispatcher.CommandStatus, mods...)
	assert.Equal(t, dispatcher.ResultOnline, status.Outcomes[0].Result)
	assert.NotContains(t, env.Out.String(), "proceed")

	down := dispatch(t, env, env.GlobalContext(), dispatcher.CommandDown, mods...)
	assert.Equal(t, dispatcher.ResultTransitioned, down.Outcomes[0].Result)
	testutil.AssertFileNotContains(t, env.FS, path, "tuna.tsinghua")

	up := dispatch(t, env, env.GlobalContext(), dispatcher.CommandUp, mods...)
	assert.Equal(t, dispatcher.ResultTransitioned, up.Outcomes[0].Result)
	again := dispatch(t, env, env.GlobalContext(), dispatcher.CommandUp, mods...)
	assert.Equal(t, dispatcher.ResultAlready, again.Outcomes[0].Result)
}
