package registry

import (
	"testing"

	"github.com/arthur-debert/tuna/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID int
}

func TestRegister(t *testing.T) {
	reg := New[testItem]()

	require.NoError(t, reg.Register("first", testItem{ID: 1}))
	assert.Equal(t, 1, reg.Count())

	err := reg.Register("", testItem{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Register("first", testItem{ID: 2})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	item, err := reg.Get("first")
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
}

func TestGet_NotFound(t *testing.T) {
	reg := New[testItem]()

	_, err := reg.Get("missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.False(t, reg.Has("missing"))
}

func TestOrderIsPreserved(t *testing.T) {
	reg := New[testItem]()
	for i, name := range []string{"zeta", "alpha", "mid"} {
		MustRegister(reg, name, testItem{ID: i})
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, reg.List())
	assert.Equal(t, []testItem{{0}, {1}, {2}}, reg.Items())
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	reg := New[testItem]()
	MustRegister(reg, "dup", testItem{})

	assert.Panics(t, func() { MustRegister(reg, "dup", testItem{}) })
}
