package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"
)

func TestParseBinding(t *testing.T) {
	mods, key, err := ParseBinding("Ctrl+Alt+W")
	require.NoError(t, err)
	assert.Equal(t, []hotkey.Modifier{modifierMap["CTRL"], modifierMap["ALT"]}, mods)
	assert.Equal(t, hotkey.KeyW, key)

	mods, key, err = ParseBinding(" super + f9 ")
	require.NoError(t, err)
	assert.Equal(t, []hotkey.Modifier{modifierMap["SUPER"]}, mods)
	assert.Equal(t, hotkey.KeyF9, key)
}

func TestParseBindingInvalid(t *testing.T) {
	for _, binding := range []string{"W", "Ctrl+", "Hyper+W", "Ctrl+Enter", ""} {
		_, _, err := ParseBinding(binding)
		assert.ErrorIs(t, err, ErrInvalidBinding, binding)
	}
}

func TestRegisterEmptyIsNoop(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Register("", func() {}))
	assert.Empty(t, m.hotkeys)
	m.Clear()
}
