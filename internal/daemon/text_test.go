package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/desktop"
)

func TestDesktopBody(t *testing.T) {
	names := []string{"Work", "", "Foo"}

	tests := []struct {
		name     string
		simple   bool
		useName  bool
		number   int
		expected string
	}{
		{"detailed without names", false, false, 3, "Current Desktop: Desktop 3"},
		{"simple without names", true, false, 3, "Desktop 3"},
		{"detailed named", false, true, 3, "Current Desktop: 3: Foo"},
		{"simple named", true, true, 1, "1. Work"},
		{"empty name falls back", false, true, 2, "Current Desktop: Desktop 2"},
		{"missing name falls back", true, true, 7, "Desktop 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := config.GeneralConfig{
				SimpleNotification: tt.simple,
				UseDesktopName:     tt.useName,
				DesktopNames:       names,
			}
			assert.Equal(t, tt.expected, desktopBody(g, switchedPrefix, tt.number))
		})
	}
}

func TestSwitchedText(t *testing.T) {
	header, body := switchedText(config.GeneralConfig{}, desktop.SwitchedEvent{NewIndex: 2})
	assert.Equal(t, "Virtual Desktop Switched", header)
	assert.Equal(t, "Current Desktop: Desktop 3", body)

	header, body = switchedText(config.GeneralConfig{SimpleNotification: true}, desktop.SwitchedEvent{NewIndex: 0})
	assert.Empty(t, header)
	assert.Equal(t, "Desktop 1", body)
}

func TestMovedText(t *testing.T) {
	ev := desktop.MovedEvent{OldIndex: 0, NewIndex: 2, CurrentIndex: 2}

	header, body := movedText(config.GeneralConfig{}, ev)
	assert.Equal(t, "Desktop 1 Moved to Desktop 3", header)
	assert.Equal(t, "Reordered Current Desktop: Desktop 3", body)

	header, body = movedText(config.GeneralConfig{SimpleNotification: true}, ev)
	assert.Equal(t, "Desktop 1 => Desktop 3", header)
	assert.Equal(t, "Desktop 3", body)

	named := config.GeneralConfig{UseDesktopName: true, DesktopNames: []string{"a", "b", "Foo"}}
	_, body = movedText(named, ev)
	assert.Equal(t, "Reordered Current Desktop: 3: Foo", body)
}

func TestPinnedText(t *testing.T) {
	tests := []struct {
		op           desktop.PinOperation
		simpleBody   string
		detailedBody string
	}{
		{desktop.OpPin | desktop.OpWindow, "Window Pinned", "Pinned this window"},
		{desktop.OpUnpin | desktop.OpWindow, "Window Unpinned", "Unpinned this window"},
		{desktop.OpPin | desktop.OpApplication, "Application Pinned", "Pinned this application"},
		{desktop.OpUnpin | desktop.OpApplication, "Application Unpinned", "Unpinned this application"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			ev := desktop.PinnedEvent{Window: 42, Operation: tt.op}

			header, body := pinnedText(config.GeneralConfig{SimpleNotification: true}, ev)
			assert.Empty(t, header)
			assert.Equal(t, tt.simpleBody, body)

			header, body = pinnedText(config.GeneralConfig{}, ev)
			assert.Equal(t, "Virtual Desktop", header)
			assert.Equal(t, tt.detailedBody, body)
		})
	}
}
