package autostart

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRemoveDesktopEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autostart", desktopFileName)

	require.NoError(t, writeEntry(path, linuxDesktopEntry, "/opt/wheeltoggle/wheeltoggle"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Desktop Entry]")
	assert.Contains(t, string(data), `Exec="/opt/wheeltoggle/wheeltoggle"`)

	require.NoError(t, removeEntry(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, removeEntry(path))
}

func TestEnableDisableRoundTrip(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG autostart only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.False(t, IsEnabled())
	require.NoError(t, Enable())
	assert.True(t, IsEnabled())
	require.NoError(t, Disable())
	assert.False(t, IsEnabled())
}
