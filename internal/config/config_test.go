package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeltoggle/internal/imwheel"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "wheeltoggle", "settings.yaml"))
	require.NoError(t, err)
	return m
}

func TestDefaults(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Load())

	assert.Equal(t, "mouse", m.CurrentMode())
	assert.Equal(t, 3, m.Int(KeyMouseValue))
	assert.Equal(t, 0, m.Int(KeyTouchpadValue))
	assert.True(t, m.Bool(KeyNotifications))
	assert.Equal(t, imwheel.DefaultCommands(), m.Commands())
}

func TestSetCurrentModePersists(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetCurrentMode("touchpad"))

	reloaded, err := NewManager(m.Path())
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, "touchpad", reloaded.CurrentMode())
}

func TestLoadFromFile(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0755))
	require.NoError(t, os.WriteFile(m.Path(), []byte("current-mode: touchpad\ntouchpad-value: 2\nrebind-command: imwheel -kill -b \"45\"\n"), 0644))

	require.NoError(t, m.Load())

	assert.Equal(t, "touchpad", m.CurrentMode())
	assert.Equal(t, 2, m.Int(KeyTouchpadValue))
	assert.Equal(t, 3, m.Int(KeyMouseValue))
	assert.Equal(t, `imwheel -kill -b "45"`, m.Commands().Rebind)
}

func TestLoadInvalidFile(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0755))
	require.NoError(t, os.WriteFile(m.Path(), []byte("current-mode: [\n"), 0644))

	assert.Error(t, m.Load())
}

func TestWatchReloads(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Save())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, m.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(m.Path(), []byte("current-mode: touchpad\nmouse-value: 7\n"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("settings change not observed")
	}
	assert.Eventually(t, func() bool { return m.Int(KeyMouseValue) == 7 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "touchpad", m.CurrentMode())
}

func TestLoadAfterSetSeesExternalEdit(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetCurrentMode("touchpad"))

	require.NoError(t, os.WriteFile(m.Path(), []byte("current-mode: mouse\n"), 0644))
	require.NoError(t, m.Load())

	assert.Equal(t, "mouse", m.CurrentMode())
}

func TestWatchSkipsEmptyFile(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetCurrentMode("touchpad"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, m.Watch(ctx, func() { changed <- struct{}{} }))

	// the state between truncate and write
	require.NoError(t, os.WriteFile(m.Path(), nil, 0644))

	select {
	case <-changed:
		t.Fatal("empty settings file was loaded")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, "touchpad", m.CurrentMode())

	require.NoError(t, os.WriteFile(m.Path(), []byte("current-mode: touchpad\ntouchpad-value: 4\n"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("settings change not observed")
	}
	assert.Equal(t, "touchpad", m.CurrentMode())
	assert.Eventually(t, func() bool { return m.Int(KeyTouchpadValue) == 4 }, 5*time.Second, 10*time.Millisecond)
}

func TestSaveReplacesFile(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetCurrentMode("touchpad"))
	require.NoError(t, m.SetCurrentMode("mouse"))

	entries, err := os.ReadDir(filepath.Dir(m.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.yaml", entries[0].Name())

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "current-mode: mouse")
}
