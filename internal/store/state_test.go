package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFilePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	path, err := StateFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-data/desknotify/state.json", path)
}

func TestLoadSharedStateFrom_Missing(t *testing.T) {
	state, err := LoadSharedStateFrom(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.False(t, state.Paused)
	assert.Equal(t, CurrentSchemaVersion, state.SchemaVersion)
}

func TestLoadSharedStateFrom_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	state, err := LoadSharedStateFrom(path)
	require.NoError(t, err)
	assert.False(t, state.Paused)
}

func TestSharedState_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	state := DefaultSharedState()
	state.SetPaused(true, "cli")
	require.NoError(t, SaveSharedStateTo(path, state))

	loaded, err := LoadSharedStateFrom(path)
	require.NoError(t, err)
	assert.True(t, loaded.Paused)
	assert.Equal(t, "cli", loaded.PausedBy)
	assert.NotZero(t, loaded.PausedAt)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSharedState_TogglePaused(t *testing.T) {
	state := DefaultSharedState()

	assert.True(t, state.TogglePaused("cli"))
	assert.Equal(t, "cli", state.PausedBy)

	assert.False(t, state.TogglePaused("cli"))
	assert.Empty(t, state.PausedBy)
	assert.Zero(t, state.PausedAt)
}
