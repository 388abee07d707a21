package dbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/desknotify/internal/desktop"
)

func newTestServer(t *testing.T) (*EventServer, *desktop.Hub) {
	t.Helper()
	hub := desktop.NewHub(nil)
	return NewEventServer(hub, nil), hub
}

func TestEventServer_DesktopSwitched(t *testing.T) {
	s, hub := newTestServer(t)

	var got []desktop.SwitchedEvent
	hub.OnSwitched(func(ev desktop.SwitchedEvent) { got = append(got, ev) })

	require.Nil(t, s.DesktopSwitched(3))
	assert.Equal(t, []desktop.SwitchedEvent{{NewIndex: 3}}, got)

	assert.NotNil(t, s.DesktopSwitched(1<<31))
	assert.Len(t, got, 1)
}

func TestEventServer_DesktopMoved(t *testing.T) {
	s, hub := newTestServer(t)

	var got []desktop.MovedEvent
	hub.OnMoved(func(ev desktop.MovedEvent) { got = append(got, ev) })

	require.Nil(t, s.DesktopMoved(0, 2, 2))
	assert.Equal(t, []desktop.MovedEvent{{OldIndex: 0, NewIndex: 2, CurrentIndex: 2}}, got)
}

func TestEventServer_WindowPinned(t *testing.T) {
	s, hub := newTestServer(t)

	var got []desktop.PinnedEvent
	hub.OnPinned(func(ev desktop.PinnedEvent) { got = append(got, ev) })

	require.Nil(t, s.WindowPinned(0xdead, uint32(desktop.OpPin|desktop.OpWindow)))
	require.Len(t, got, 1)
	assert.Equal(t, desktop.WindowHandle(0xdead), got[0].Window)
	assert.True(t, got[0].Operation.Has(desktop.OpPin))

	tests := []struct {
		name string
		op   desktop.PinOperation
	}{
		{"no flags", 0},
		{"pin and unpin", desktop.OpPin | desktop.OpUnpin | desktop.OpWindow},
		{"no subject", desktop.OpPin},
		{"window and application", desktop.OpUnpin | desktop.OpWindow | desktop.OpApplication},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbusErr := s.WindowPinned(1, uint32(tt.op))
			require.NotNil(t, dbusErr)
			assert.Equal(t, "org.freedesktop.DBus.Error.InvalidArgs", dbusErr.Name)
		})
	}
	assert.Len(t, got, 1)
}

func TestEventServer_GetServerInformation(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetServerInfo(ServerInfo{Name: "desknotifyd", Vendor: "desknotify", Version: "1.2.3", OSBuild: "22631"})

	name, vendor, version, build, dbusErr := s.GetServerInformation()
	require.Nil(t, dbusErr)
	assert.Equal(t, "desknotifyd", name)
	assert.Equal(t, "desknotify", vendor)
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "22631", build)
}

func TestEventServer_EmitBeforeStart(t *testing.T) {
	s, _ := newTestServer(t)
	assert.ErrorIs(t, s.EmitNotificationShown(ShownNotification{ID: "x"}), ErrNotConnected)
	assert.NoError(t, s.Stop())
}

func TestParseShown(t *testing.T) {
	sig := &dbus.Signal{
		Name: DBusInterface + "." + SignalNotificationShown,
		Body: []any{"01J", "Virtual Desktop Switched", "Current Desktop: Desktop 2"},
	}
	n, ok := parseShown(sig)
	require.True(t, ok)
	assert.Equal(t, ShownNotification{ID: "01J", Header: "Virtual Desktop Switched", Body: "Current Desktop: Desktop 2"}, n)

	_, ok = parseShown(&dbus.Signal{Name: "org.example.Other", Body: sig.Body})
	assert.False(t, ok)

	_, ok = parseShown(&dbus.Signal{Name: sig.Name, Body: []any{"01J", uint32(1), "b"}})
	assert.False(t, ok)
}
