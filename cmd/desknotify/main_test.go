package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/output"
	"github.com/jmylchreest/desknotify/internal/store"
)

func TestParseDesktopNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
		wantErr  bool
	}{
		{"1", 0, false},
		{"3", 2, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"two", 0, true},
		{"4294967296", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDesktopNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseWindowHandle(t *testing.T) {
	h, err := parseWindowHandle("0x1001")
	require.NoError(t, err)
	assert.Equal(t, desktop.WindowHandle(0x1001), h)

	h, err = parseWindowHandle("42")
	require.NoError(t, err)
	assert.Equal(t, desktop.WindowHandle(42), h)

	_, err = parseWindowHandle("window")
	assert.Error(t, err)
}

func TestPinOperation(t *testing.T) {
	assert.Equal(t, desktop.OpPin|desktop.OpWindow, pinOperation(false, false))
	assert.Equal(t, desktop.OpUnpin|desktop.OpWindow, pinOperation(true, false))
	assert.Equal(t, desktop.OpPin|desktop.OpApplication, pinOperation(false, true))
	assert.Equal(t, desktop.OpUnpin|desktop.OpApplication, pinOperation(true, true))
}

func TestWaybarStatus(t *testing.T) {
	state := store.DefaultSharedState()
	got := waybarStatus(state, nil)
	assert.Equal(t, "active", got.Class)
	assert.Equal(t, "No notifications yet", got.Tooltip)

	last := &store.LastNotification{ID: "01", Kind: "switched", Header: "Virtual Desktop Switched", Body: "Current Desktop: Desktop 2"}
	got = waybarStatus(state, last)
	assert.Equal(t, "Virtual Desktop Switched\nCurrent Desktop: Desktop 2", got.Tooltip)

	state.SetPaused(true, "cli")
	got = waybarStatus(state, last)
	assert.Equal(t, "paused", got.Text)
	assert.Equal(t, "paused", got.Class)
}

func TestRenderStatus_Text(t *testing.T) {
	state := store.DefaultSharedState()

	var buf bytes.Buffer
	require.NoError(t, renderStatus(&buf, output.FormatText, state, nil))
	assert.Equal(t, "Notifications: active\n", buf.String())

	state.SetPaused(true, "cli")
	last := &store.LastNotification{
		Kind:    "pinned",
		Body:    "Window Pinned",
		ShownAt: time.Now().Add(-3 * time.Minute).Unix(),
	}

	buf.Reset()
	require.NoError(t, renderStatus(&buf, output.FormatText, state, last))
	out := buf.String()
	assert.Contains(t, out, "Notifications: paused\n")
	assert.Contains(t, out, " by cli\n")
	assert.Contains(t, out, "Last notification: 3 minutes ago (pinned)\n")
	assert.Contains(t, out, "  Window Pinned\n")
}

func TestRenderStatus_JSON(t *testing.T) {
	state := store.DefaultSharedState()
	last := &store.LastNotification{ID: "01", Kind: "switched", Body: "1. Main"}

	var buf bytes.Buffer
	require.NoError(t, renderStatus(&buf, output.FormatJSON, state, last))

	var got statusView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.Paused)
	require.NotNil(t, got.Last)
	assert.Equal(t, "1. Main", got.Last.Body)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desknotify", "desknotifyd.toml")

	require.NoError(t, initConfig(path, false))
	cfg, err := config.LoadDaemonConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDaemonConfig().General.NotificationDuration, cfg.General.NotificationDuration)
	assert.Equal(t, string(config.PositionCenter), cfg.Display.Position)

	assert.Error(t, initConfig(path, false))

	require.NoError(t, os.WriteFile(path, []byte("garbage = ["), 0600))
	require.NoError(t, initConfig(path, true))
	_, err = config.LoadDaemonConfigFrom(path)
	assert.NoError(t, err)
}

func TestStatePath_Override(t *testing.T) {
	t.Cleanup(func() { globalOpts.stateFile = "" })

	globalOpts.stateFile = "/tmp/custom-state.json"
	path, err := statePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-state.json", path)

	globalOpts.stateFile = ""
	t.Setenv("XDG_DATA_HOME", "/data")
	path, err = statePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "desknotify", "state.json"), path)
}
