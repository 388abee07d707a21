package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNotificationPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	path, err := LastNotificationPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-data/desknotify/last_notification.json", path)

	statePath, err := StateFilePath()
	require.NoError(t, err)
	assert.NotEqual(t, statePath, path)
}

func TestLoadLastNotificationFrom_MissingAndCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_notification.json")

	n, err := LoadLastNotificationFrom(path)
	require.NoError(t, err)
	assert.Nil(t, n)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	n, err = LoadLastNotificationFrom(path)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestSaveLastNotificationTo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "last_notification.json")

	require.NoError(t, SaveLastNotificationTo(path, LastNotification{
		ID:     "01JABCDEF",
		Kind:   "switched",
		Header: "Virtual Desktop Switched",
		Body:   "Current Desktop: Desktop 2",
	}))

	n, err := LoadLastNotificationFrom(path)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "Current Desktop: Desktop 2", n.Body)
	assert.NotZero(t, n.ShownAt)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

// The daemon records notifications while the CLI changes the pause state.
// Neither write may undo the other, whatever the order.
func TestPauseAndLastNotification_Interleaved(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	lastPath := filepath.Join(dir, "last_notification.json")

	// Daemon records a notification between the CLI's load and save.
	state, err := LoadSharedStateFrom(statePath)
	require.NoError(t, err)
	require.NoError(t, SaveLastNotificationTo(lastPath, LastNotification{ID: "1", Kind: "switched", Body: "Desktop 1"}))
	state.SetPaused(true, "cli")
	require.NoError(t, SaveSharedStateTo(statePath, state))

	// And again after the CLI saved.
	require.NoError(t, SaveLastNotificationTo(lastPath, LastNotification{ID: "2", Kind: "switched", Body: "Desktop 2"}))

	loaded, err := LoadSharedStateFrom(statePath)
	require.NoError(t, err)
	assert.True(t, loaded.Paused)
	assert.Equal(t, "cli", loaded.PausedBy)

	last, err := LoadLastNotificationFrom(lastPath)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "2", last.ID)
}

func TestRecorder_KeepsNewest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_notification.json")
	r := NewRecorder(path, nil)

	for i := 1; i <= 50; i++ {
		r.Record(LastNotification{ID: fmt.Sprint(i), Kind: "switched", Body: fmt.Sprintf("Desktop %d", i)})
	}
	r.Stop()
	r.Stop()

	n, err := LoadLastNotificationFrom(path)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "50", n.ID)
	assert.Equal(t, "Desktop 50", n.Body)
}

func TestRecorder_DoesNotTouchSharedState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	state := DefaultSharedState()
	state.SetPaused(true, "cli")
	require.NoError(t, SaveSharedStateTo(statePath, state))

	r := NewRecorder(filepath.Join(dir, "last_notification.json"), nil)
	r.Record(LastNotification{ID: "1", Kind: "pinned", Body: "Window Pinned"})
	r.Stop()

	loaded, err := LoadSharedStateFrom(statePath)
	require.NoError(t, err)
	assert.True(t, loaded.Paused)
}
