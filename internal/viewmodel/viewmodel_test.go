package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/desknotify/internal/config"
)

func newStore(modify func(*config.DaemonConfig)) *config.Store {
	cfg := config.DefaultDaemonConfig()
	if modify != nil {
		modify(cfg)
	}
	return config.NewStore(cfg)
}

func TestNotification_Text(t *testing.T) {
	vm := New(nil, "desknotify", "Virtual Desktop Switched", "Current Desktop: Desktop 2")

	assert.Equal(t, "desknotify", vm.Title())
	assert.Equal(t, "Virtual Desktop Switched", vm.Header())
	assert.Equal(t, "Current Desktop: Desktop 2", vm.Body())
	assert.True(t, vm.BodyVisible())
}

func TestNotification_HeaderVisible(t *testing.T) {
	assert.False(t, New(nil, "t", "", "body").HeaderVisible())
	assert.True(t, New(nil, "t", "header", "body").HeaderVisible())
}

func TestNotification_FontFamily(t *testing.T) {
	tests := []struct {
		name     string
		font     string
		expected string
	}{
		{"no user font", "", config.DefaultFontFamily},
		{"user font", "Fira Sans", "Fira Sans, " + config.DefaultFontFamily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(func(c *config.DaemonConfig) { c.General.NotificationFont = tt.font })
			assert.Equal(t, tt.expected, New(s, "t", "h", "b").FontFamily())
		})
	}
}

func TestNotification_SimpleMode(t *testing.T) {
	tests := []struct {
		simple    bool
		bodyAlign Alignment
		minWidth  int
	}{
		{true, AlignCenter, 210},
		{false, AlignLeft, 500},
	}

	for _, tt := range tests {
		s := newStore(func(c *config.DaemonConfig) { c.General.SimpleNotification = tt.simple })
		vm := New(s, "t", "h", "b")

		assert.Equal(t, tt.bodyAlign, vm.BodyAlignment(), "simple=%v", tt.simple)
		assert.Equal(t, AlignLeft, vm.HeaderAlignment(), "simple=%v", tt.simple)
		assert.Equal(t, tt.minWidth, vm.MinWidth(), "simple=%v", tt.simple)
		assert.Equal(t, 100, vm.MinHeight(), "simple=%v", tt.simple)
	}
}

func TestNotification_RecomputesFromSettings(t *testing.T) {
	s := newStore(nil)
	vm := New(s, "t", "h", "b")
	assert.Equal(t, AlignLeft, vm.BodyAlignment())

	next := config.DefaultDaemonConfig()
	next.General.SimpleNotification = true
	s.Set(next)

	assert.Equal(t, AlignCenter, vm.BodyAlignment())
	assert.Equal(t, SimpleMinWidth, vm.MinWidth())
}

func TestAlignment_XAlign(t *testing.T) {
	assert.Equal(t, float32(0), AlignLeft.XAlign())
	assert.Equal(t, float32(0.5), AlignCenter.XAlign())
}
