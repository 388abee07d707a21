package dbus

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when emitting before Start.
var ErrNotConnected = errors.New("not connected to D-Bus")

// EmitNotificationShown emits the NotificationShown signal.
func (s *EventServer) EmitNotificationShown(n ShownNotification) error {
	s.mu.RLock()
	conn := s.conn
	running := s.running
	s.mu.RUnlock()

	if conn == nil || !running {
		return ErrNotConnected
	}

	err := conn.Emit(DBusPath, DBusInterface+"."+SignalNotificationShown, n.ID, n.Header, n.Body)
	if err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", SignalNotificationShown, err)
	}

	s.logger.Debug("emitted NotificationShown signal", "id", n.ID)
	return nil
}
