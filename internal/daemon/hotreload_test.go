package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/desknotify/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestConfigWatcher_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desknotifyd.toml")
	store := config.NewStore(config.DefaultDaemonConfig())
	w := NewConfigWatcher(path, store, nil)

	var reloads, failures int
	w.SetReloadCallback(func(*config.DaemonConfig) { reloads++ })
	w.SetErrorCallback(func(error) { failures++ })

	writeFile(t, path, "[general]\nsimple_notification = true\n")
	require.NoError(t, w.Reload())
	assert.True(t, store.Current().General.SimpleNotification)
	assert.Equal(t, 1, reloads)

	// Unchanged content is not reported again.
	require.NoError(t, w.Reload())
	assert.Equal(t, 1, reloads)

	writeFile(t, path, "[display]\nposition = \"sideways\"\n")
	assert.Error(t, w.Reload())
	assert.Equal(t, 1, failures)
	assert.True(t, store.Current().General.SimpleNotification, "invalid file keeps previous config")
}

func TestConfigWatcher_WatchesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "desknotify")
	path := filepath.Join(dir, "desknotifyd.toml")
	store := config.NewStore(config.DefaultDaemonConfig())
	w := NewConfigWatcher(path, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeFile(t, path, "[general]\nnotification_duration = \"4s\"\n")

	assert.Eventually(t, func() bool {
		return store.Current().General.NotificationDuration.Duration() == 4*time.Second
	}, 5*time.Second, 20*time.Millisecond)

	w.Stop()
	w.Stop()
}

func TestFileWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	var changes atomic.Int32
	w := NewFileWatcher(path, nil, func() { changes.Add(1) })
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeFile(t, filepath.Join(filepath.Dir(path), "other.json"), "{}")
	writeFile(t, path, `{"paused":true}`)

	assert.Eventually(t, func() bool { return changes.Load() > 0 }, 5*time.Second, 20*time.Millisecond)
}
