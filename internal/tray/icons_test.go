package tray

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeltoggle/internal/mode"
)

func TestIconsDecode(t *testing.T) {
	for _, name := range []string{mode.IconMouse, mode.IconTouchpad, mode.IconError, mode.IconWarning, "unknown"} {
		data := Icon(name)
		require.NotEmpty(t, data, name)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, name)
		assert.Equal(t, iconSize, img.Bounds().Dx(), name)
		assert.Equal(t, iconSize, img.Bounds().Dy(), name)
	}
}

func TestIconsDistinct(t *testing.T) {
	assert.NotEqual(t, Icon(mode.IconMouse), Icon(mode.IconTouchpad))
	assert.NotEqual(t, Icon(mode.IconError), Icon(mode.IconWarning))
	assert.Equal(t, Icon(mode.IconError), Icon("unknown"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "mouse", Describe(mode.IconMouse))
	assert.Equal(t, "touchpad", Describe(mode.IconTouchpad))
	assert.Equal(t, "apply failed", Describe(mode.IconWarning))
	assert.Equal(t, "imwheel not found", Describe(mode.IconError))
}

func TestMenuStateBeforeReady(t *testing.T) {
	tr := New("wheeltoggle", "Toggle imwheel settings")

	id := tr.AddMenuItem("Switch to touchpad", func() {})
	tr.AddSeparator()
	quit := tr.AddMenuItem("Quit", nil)

	tr.SetItemTitle(id, "Switch to mouse")
	tr.SetItemDisabled(id, true)
	tr.SetItemChecked(quit, true)
	tr.SetItemTitle(1, "ignored")
	tr.SetItemTitle(42, "ignored")

	assert.Equal(t, "Switch to mouse", tr.items[id].Title)
	assert.True(t, tr.items[id].Disabled)
	assert.True(t, tr.items[quit].Checked)
	assert.Nil(t, tr.items[1])
	assert.Equal(t, 2, quit)

	tr.SetItemCallback(quit, func() {})
	assert.NotNil(t, tr.items[quit].Callback)
}
