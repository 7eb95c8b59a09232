package dispatcher_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/tuna/pkg/confirmations"
	"github.com/arthur-debert/tuna/pkg/dispatcher"
	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/arthur-debert/tuna/pkg/modules"
	"github.com/arthur-debert/tuna/pkg/style"
	"github.com/arthur-debert/tuna/pkg/testutil"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule keeps its online state in memory and asks the gate like a real module
type fakeModule struct {
	name          string
	applicable    bool
	online        bool
	activateErr   error
	deactivateErr error
	activations   int
	deactivations int
}

func (f *fakeModule) Name() string { return f.name }

func (f *fakeModule) IsApplicable(ctx *modules.Context) bool { return f.applicable }

func (f *fakeModule) IsOnline(ctx *modules.Context) bool { return f.online }

func (f *fakeModule) Activate(ctx *modules.Context) (bool, error) {
	f.activations++
	if f.activateErr != nil {
		return false, f.activateErr
	}
	ok, err := ctx.Confirm(confirmations.Change{Subject: f.name, Before: "upstream", After: "mirror"})
	if err != nil || !ok {
		return false, err
	}
	f.online = true
	return true, nil
}

func (f *fakeModule) Deactivate(ctx *modules.Context) (bool, error) {
	f.deactivations++
	if f.deactivateErr != nil {
		return false, f.deactivateErr
	}
	ok, err := ctx.Confirm(confirmations.Change{Subject: f.name, Before: "mirror", After: "upstream"})
	if err != nil || !ok {
		return false, err
	}
	f.online = false
	return true, nil
}

func dispatch(t *testing.T, env *testutil.Environment, ctx *modules.Context, cmd dispatcher.CommandType, mods ...modules.Module) *dispatcher.Result {
	t.Helper()
	result, err := dispatcher.Dispatch(cmd, dispatcher.Options{
		Context: ctx,
		Modules: mods,
		Printer: style.NewPlainPrinter(env.Out),
	})
	require.NoError(t, err)
	return result
}

func kinds(r *dispatcher.Result) []dispatcher.ResultKind {
	var out []dispatcher.ResultKind
	for _, o := range r.Outcomes {
		out = append(out, o.Result)
	}
	return out
}

func TestDispatch_Status(t *testing.T) {
	env := testutil.NewEnvironment(t)
	on := &fakeModule{name: "pypi", applicable: true, online: true}
	off := &fakeModule{name: "cargo", applicable: true}
	absent := &fakeModule{name: "maven"}

	result := dispatch(t, env, env.UserContext(), dispatcher.CommandStatus, on, off, absent)

	assert.Equal(t, []dispatcher.ResultKind{
		dispatcher.ResultOnline, dispatcher.ResultOffline, dispatcher.ResultSkipped,
	}, kinds(result))
	out := env.Out.String()
	assert.Contains(t, out, "[success] pypi is online")
	assert.Contains(t, out, "[info]  cargo is offline")
	assert.NotContains(t, out, "maven")
	assert.Zero(t, on.activations+off.activations)
}

func TestDispatch_StatusWithNothingApplicableIsEmpty(t *testing.T) {
	env := testutil.NewEnvironment(t)

	result := dispatch(t, env, env.UserContext(), dispatcher.CommandStatus,
		&fakeModule{name: "homebrew"}, &fakeModule{name: "ctan"})

	assert.Equal(t, 0, result.Applicable())
	assert.Empty(t, env.Out.String())
}

func TestDispatch_UpIsIdempotent(t *testing.T) {
	env := testutil.NewEnvironment(t)
	m := &fakeModule{name: "pypi", applicable: true}
	ctx := env.UserContext()

	first := dispatch(t, env, ctx, dispatcher.CommandUp, m)
	second := dispatch(t, env, ctx, dispatcher.CommandUp, m)

	assert.Equal(t, dispatcher.ResultTransitioned, first.Outcomes[0].Result)
	assert.Equal(t, dispatcher.ResultAlready, second.Outcomes[0].Result)
	assert.Equal(t, 1, m.activations)
	assert.Contains(t, env.Out.String(), "pypi is already configured to the mirror")
}

func TestDispatch_UpDownRoundTrip(t *testing.T) {
	env := testutil.NewEnvironment(t)
	m := &fakeModule{name: "anaconda", applicable: true}
	ctx := env.UserContext()

	dispatch(t, env, ctx, dispatcher.CommandUp, m)
	require.True(t, m.online)

	result := dispatch(t, env, ctx, dispatcher.CommandDown, m)
	assert.Equal(t, dispatcher.ResultTransitioned, result.Outcomes[0].Result)
	assert.False(t, m.online)
	assert.Contains(t, env.Out.String(), "anaconda is restored to its default upstream")

	result = dispatch(t, env, ctx, dispatcher.CommandDown, m)
	assert.Equal(t, dispatcher.ResultAlready, result.Outcomes[0].Result)
	assert.Equal(t, 1, m.deactivations)
}

func TestDispatch_YesNeverPrompts(t *testing.T) {
	env := testutil.NewEnvironment(t)
	mods := []modules.Module{
		&fakeModule{name: "pypi", applicable: true},
		&fakeModule{name: "cargo", applicable: true},
	}

	result := dispatch(t, env, env.Context(types.ScopeUser, true, ""), dispatcher.CommandUp, mods...)

	assert.Equal(t, 2, result.Count(dispatcher.ResultTransitioned))
	assert.NotContains(t, env.Out.String(), confirmations.Prompt)
}

func TestDispatch_DeclineLeavesResourceUnchanged(t *testing.T) {
	env := testutil.NewEnvironment(t)
	m := &fakeModule{name: "pypi", applicable: true}

	result := dispatch(t, env, env.Context(types.ScopeUser, false, "n\n"), dispatcher.CommandUp, m)

	assert.Equal(t, dispatcher.ResultDeclined, result.Outcomes[0].Result)
	assert.False(t, m.online)
	assert.Contains(t, env.Out.String(), "[warning] pypi: operation cancelled")
}

func TestDispatch_AlwaysAnswerCoversRestOfRun(t *testing.T) {
	env := testutil.NewEnvironment(t)
	first := &fakeModule{name: "pypi", applicable: true}
	second := &fakeModule{name: "cargo", applicable: true}

	result := dispatch(t, env, env.Context(types.ScopeUser, false, "a\n"), dispatcher.CommandUp, first, second)

	assert.Equal(t, 2, result.Count(dispatcher.ResultTransitioned))
	assert.Equal(t, 1, strings.Count(env.Out.String(), confirmations.Prompt))
}

func TestDispatch_UnsupportedIsInformational(t *testing.T) {
	env := testutil.NewEnvironment(t)
	m := &fakeModule{
		name:          "debian",
		applicable:    true,
		online:        true,
		deactivateErr: errors.NotImplemented("debian", "down"),
	}

	result := dispatch(t, env, env.GlobalContext(), dispatcher.CommandDown, m)

	assert.Equal(t, dispatcher.ResultUnsupported, result.Outcomes[0].Result)
	assert.Contains(t, env.Out.String(), "[info]  debian: down is not supported, please do it manually")
}

func TestDispatch_FailureDoesNotStopRun(t *testing.T) {
	env := testutil.NewEnvironment(t)
	broken := &fakeModule{name: "homebrew", applicable: true, activateErr: stderrors.New("git exploded")}
	fine := &fakeModule{name: "pypi", applicable: true}

	result := dispatch(t, env, env.UserContext(), dispatcher.CommandUp, broken, fine)

	assert.Equal(t, []dispatcher.ResultKind{dispatcher.ResultFailed, dispatcher.ResultTransitioned}, kinds(result))
	assert.EqualError(t, result.Outcomes[0].Err, "git exploded")
	assert.Contains(t, env.Out.String(), "[error] homebrew: git exploded")
	assert.True(t, fine.online)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	env := testutil.NewEnvironment(t)
	_, err := dispatcher.Dispatch("sideways", dispatcher.Options{
		Context: env.UserContext(),
		Printer: style.NewPlainPrinter(env.Out),
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseCommand(t *testing.T) {
	for _, name := range []string{"up", "down", "status"} {
		cmd, err := dispatcher.ParseCommand(name)
		require.NoError(t, err)
		assert.Equal(t, dispatcher.CommandType(name), cmd)
	}
	_, err := dispatcher.ParseCommand("list")
	assert.Error(t, err)
}
