// Package config handles configuration file loading and parsing.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFontFamily is appended after the user's font so missing glyphs still render.
const DefaultFontFamily = "Segoe UI Light, Meiryo UI, Noto Sans, sans-serif"

// Display target sentinels stored in [display].monitor.
const (
	MonitorCurrent uint32 = 0
	MonitorAll     uint32 = math.MaxUint32
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "2s", "1500ms", "1m", or an integer of milliseconds,
// bare (2500) or quoted ("2500").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Bare integers are milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '2s', '1500ms' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DaemonConfig is the configuration for desknotifyd.
// Loaded from ~/.config/desknotify/desknotifyd.toml
type DaemonConfig struct {
	General  GeneralConfig  `toml:"general"`
	Display  DisplayConfig  `toml:"display"`
	Behavior BehaviorConfig `toml:"behavior"`
}

// GeneralConfig contains the notification settings.
type GeneralConfig struct {
	NotifyOnSwitch       bool     `toml:"notify_on_switch"`      // Show a notification when the desktop changes or is reordered
	SimpleNotification   bool     `toml:"simple_notification"`   // Minimal, centered text
	UseDesktopName       bool     `toml:"use_desktop_name"`      // Include configured desktop names
	DesktopNames         []string `toml:"desktop_names"`         // Index 0 is desktop 1
	NotificationDuration Duration `toml:"notification_duration"` // e.g. "2s", 2000 or "2000"
	NotificationFont     string   `toml:"notification_font"`     // Empty = DefaultFontFamily
}

// DisplayConfig contains notification window placement settings.
type DisplayConfig struct {
	Monitor  uint32 `toml:"monitor"`  // 0 = current, 4294967295 = all, 1+ = specific monitor
	Position string `toml:"position"` // "center", "top", "bottom"
	Offset   int    `toml:"offset"`   // Pixels from the anchored edge
}

// BehaviorConfig contains daemon behavior settings.
type BehaviorConfig struct {
	StrictMonitorIndex bool `toml:"strict_monitor_index"` // Fail instead of falling back when the monitor is missing
	InternalNotices    bool `toml:"internal_notices"`     // Notify about config reloads and errors
}

// Position represents the notification window position within a work area.
type Position string

const (
	PositionCenter Position = "center"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{PositionCenter, PositionTop, PositionBottom}
}

// DefaultDaemonConfig returns a new DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		General: GeneralConfig{
			NotifyOnSwitch:       true,
			SimpleNotification:   false,
			UseDesktopName:       false,
			DesktopNames:         []string{},
			NotificationDuration: Duration(2500 * time.Millisecond),
			NotificationFont:     "",
		},
		Display: DisplayConfig{
			Monitor:  MonitorCurrent,
			Position: string(PositionCenter),
			Offset:   0,
		},
		Behavior: BehaviorConfig{
			StrictMonitorIndex: false,
			InternalNotices:    true,
		},
	}
}

// DaemonConfigPath returns the path to the daemon config file.
func DaemonConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "desknotify", "desknotifyd.toml"), nil
}

// LoadDaemonConfig loads the daemon configuration from the default path.
func LoadDaemonConfig() (*DaemonConfig, error) {
	path, err := DaemonConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadDaemonConfigFrom(path)
}

// LoadDaemonConfigFrom loads the daemon configuration from path.
// If the file doesn't exist, returns the default configuration.
func LoadDaemonConfigFrom(path string) (*DaemonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDaemonConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	config := DefaultDaemonConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SaveDaemonConfig writes the configuration to path atomically.
func SaveDaemonConfig(path string, config *DaemonConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *DaemonConfig) Validate() error {
	d := c.General.NotificationDuration.Duration()
	if d < 100*time.Millisecond || d > time.Minute {
		return fmt.Errorf("notification_duration must be between 100ms and 1m, got %s", d)
	}

	validPos := false
	for _, p := range ValidPositions() {
		if c.Display.Position == string(p) {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}

	if c.Display.Offset < 0 || c.Display.Offset > 2000 {
		return fmt.Errorf("offset must be between 0 and 2000, got %d", c.Display.Offset)
	}

	return nil
}

// DesktopName returns the configured name for a 1-based desktop number.
// The second return value is false when no non-empty name is configured.
func (g GeneralConfig) DesktopName(number int) (string, bool) {
	i := number - 1
	if i < 0 || i >= len(g.DesktopNames) {
		return "", false
	}
	name := g.DesktopNames[i]
	return name, name != ""
}
