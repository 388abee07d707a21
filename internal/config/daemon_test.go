package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desknotifyd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultDaemonConfig(t *testing.T) {
	cfg := DefaultDaemonConfig()

	assert.True(t, cfg.General.NotifyOnSwitch)
	assert.False(t, cfg.General.SimpleNotification)
	assert.False(t, cfg.General.UseDesktopName)
	assert.Empty(t, cfg.General.DesktopNames)
	assert.Equal(t, 2500, cfg.General.NotificationDuration.Milliseconds())
	assert.Equal(t, MonitorCurrent, cfg.Display.Monitor)
	assert.Equal(t, string(PositionCenter), cfg.Display.Position)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDaemonConfigFrom_MissingFile(t *testing.T) {
	cfg, err := LoadDaemonConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDaemonConfig(), cfg)
}

func TestLoadDaemonConfigFrom_ParsesTOML(t *testing.T) {
	path := writeConfig(t, `
[general]
notify_on_switch = false
simple_notification = true
use_desktop_name = true
desktop_names = ["Work", "", "Games"]
notification_duration = "1500ms"
notification_font = "Fira Sans"

[display]
monitor = 4294967295
position = "top"
offset = 40

[behavior]
strict_monitor_index = true
internal_notices = false
`)

	cfg, err := LoadDaemonConfigFrom(path)
	require.NoError(t, err)

	assert.False(t, cfg.General.NotifyOnSwitch)
	assert.True(t, cfg.General.SimpleNotification)
	assert.True(t, cfg.General.UseDesktopName)
	assert.Equal(t, []string{"Work", "", "Games"}, cfg.General.DesktopNames)
	assert.Equal(t, 1500*time.Millisecond, cfg.General.NotificationDuration.Duration())
	assert.Equal(t, "Fira Sans", cfg.General.NotificationFont)
	assert.Equal(t, MonitorAll, cfg.Display.Monitor)
	assert.Equal(t, "top", cfg.Display.Position)
	assert.Equal(t, 40, cfg.Display.Offset)
	assert.True(t, cfg.Behavior.StrictMonitorIndex)
	assert.False(t, cfg.Behavior.InternalNotices)
}

func TestLoadDaemonConfigFrom_PartialConfig(t *testing.T) {
	path := writeConfig(t, `
[general]
simple_notification = true
`)

	cfg, err := LoadDaemonConfigFrom(path)
	require.NoError(t, err)

	assert.True(t, cfg.General.SimpleNotification)
	// Unchanged fields keep their defaults
	assert.True(t, cfg.General.NotifyOnSwitch)
	assert.Equal(t, 2500, cfg.General.NotificationDuration.Milliseconds())
	assert.Equal(t, string(PositionCenter), cfg.Display.Position)
}

func TestLoadDaemonConfigFrom_MillisecondString(t *testing.T) {
	path := writeConfig(t, `
[general]
notification_duration = "3000"
`)

	cfg, err := LoadDaemonConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.General.NotificationDuration.Duration())
}

func TestLoadDaemonConfigFrom_MillisecondInteger(t *testing.T) {
	path := writeConfig(t, `
[general]
notification_duration = 2500
`)

	cfg, err := LoadDaemonConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.General.NotificationDuration.Duration())
}

func TestLoadDaemonConfigFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `this is not valid toml [`},
		{"bad duration", "[general]\nnotification_duration = \"soon\"\n"},
		{"duration too short", "[general]\nnotification_duration = \"10ms\"\n"},
		{"bad position", "[display]\nposition = \"sideways\"\n"},
		{"negative offset", "[display]\noffset = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDaemonConfigFrom(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSaveDaemonConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "desknotifyd.toml")

	cfg := DefaultDaemonConfig()
	cfg.General.UseDesktopName = true
	cfg.General.DesktopNames = []string{"Mail", "Code"}
	cfg.General.NotificationDuration = Duration(4 * time.Second)
	cfg.Display.Monitor = 2

	require.NoError(t, SaveDaemonConfig(path, cfg))

	loaded, err := LoadDaemonConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGeneralConfig_DesktopName(t *testing.T) {
	g := GeneralConfig{DesktopNames: []string{"Work", "", "Games"}}

	tests := []struct {
		number int
		name   string
		ok     bool
	}{
		{0, "", false},
		{1, "Work", true},
		{2, "", false},
		{3, "Games", true},
		{4, "", false},
	}

	for _, tt := range tests {
		name, ok := g.DesktopName(tt.number)
		assert.Equal(t, tt.name, name, "desktop %d", tt.number)
		assert.Equal(t, tt.ok, ok, "desktop %d", tt.number)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, DefaultDaemonConfig(), s.Current())

	next := DefaultDaemonConfig()
	next.General.SimpleNotification = true
	s.Set(next)
	assert.Same(t, next, s.Current())

	s.Set(nil)
	assert.Same(t, next, s.Current(), "nil config is ignored")
}

func TestDaemonConfigPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := DaemonConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/desknotify/desknotifyd.toml", path)
}
