package shell_test

import (
	"testing"

	"github.com/arthur-debert/tuna/pkg/filesystem"
	"github.com/arthur-debert/tuna/pkg/paths"
	"github.com/arthur-debert/tuna/pkg/shell"
	"github.com/arthur-debert/tuna/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bottles = "HOMEBREW_BOTTLE_DOMAIN"

func TestProfile_UserFilesSelection(t *testing.T) {
	fs := filesystem.NewMemory()
	p := paths.NewWith("/home/u", "/")

	profile := shell.NewProfile(fs, p, types.ScopeUser)
	assert.Equal(t, []string{"/home/u/.profile"}, profile.Files(), "falls back to .profile")

	require.NoError(t, filesystem.WriteFile(fs, "/home/u/.bashrc", []byte("alias ll='ls -l'\n")))
	require.NoError(t, filesystem.WriteFile(fs, "/home/u/.zshrc", []byte("")))

	profile = shell.NewProfile(fs, p, types.ScopeUser)
	assert.Equal(t, []string{"/home/u/.bashrc", "/home/u/.zshrc"}, profile.Files())
}

func TestProfile_SetGetUnset(t *testing.T) {
	fs := filesystem.NewMemory()
	p := paths.NewWith("/home/u", "/")
	require.NoError(t, filesystem.WriteFile(fs, "/home/u/.bashrc", []byte("alias ll='ls -l'\n")))

	profile := shell.NewProfile(fs, p, types.ScopeUser)

	_, ok := profile.Get(bottles)
	assert.False(t, ok)

	require.NoError(t, profile.Set(bottles, "https://mirror/homebrew-bottles"))
	value, ok := profile.Get(bottles)
	require.True(t, ok)
	assert.Equal(t, "https://mirror/homebrew-bottles", value)

	// setting twice replaces instead of duplicating
	require.NoError(t, profile.Set(bottles, "https://other/bottles"))
	data, err := fs.ReadFile("/home/u/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "alias ll='ls -l'\nexport HOMEBREW_BOTTLE_DOMAIN=\"https://other/bottles\" # added by tuna\n", string(data))

	require.NoError(t, profile.Unset(bottles))
	data, err = fs.ReadFile("/home/u/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "alias ll='ls -l'\n", string(data))

	_, ok = profile.Get(bottles)
	assert.False(t, ok)
}

func TestProfile_UnsetKeepsForeignExports(t *testing.T) {
	fs := filesystem.NewMemory()
	p := paths.NewWith("/home/u", "/")
	original := "export HOMEBREW_BOTTLE_DOMAIN=https://user-chosen\n"
	require.NoError(t, filesystem.WriteFile(fs, "/home/u/.zshrc", []byte(original)))

	profile := shell.NewProfile(fs, p, types.ScopeUser)
	require.NoError(t, profile.Unset(bottles))

	data, err := fs.ReadFile("/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "lines tuna did not write are left alone")
}

func TestProfile_GlobalDropInRemovedWhenEmpty(t *testing.T) {
	fs := filesystem.NewMemory()
	p := paths.NewWith("/root", "/")

	profile := shell.NewProfile(fs, p, types.ScopeGlobal)
	assert.Equal(t, []string{"/etc/profile.d/tuna.sh"}, profile.Files())

	require.NoError(t, profile.Set(bottles, "https://mirror/bottles"))
	assert.True(t, filesystem.Exists(fs, "/etc/profile.d/tuna.sh"))

	require.NoError(t, profile.Unset(bottles))
	assert.False(t, filesystem.Exists(fs, "/etc/profile.d/tuna.sh"))
}
