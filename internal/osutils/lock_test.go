package osutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "wheeltoggle.lock")

	first, err := AcquireLock(path)
	require.NoError(t, err)

	_, err = AcquireLock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	again, err := AcquireLock(path)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestAcquireLockLeftoverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheeltoggle.lock")

	// left behind by an instance that did not shut down cleanly
	require.NoError(t, os.WriteFile(path, []byte("4242\n"), 0644))

	lock, err := AcquireLock(path)
	require.NoError(t, err)

	_, err = AcquireLock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.NoError(t, lock.Release())
}
