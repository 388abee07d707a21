package dbus

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/desknotify/internal/desktop"
)

// EventServer implements the io.github.jmylchreest.DeskNotify interface.
// Method calls are decoded into desktop events and handed to a Publisher.
type EventServer struct {
	conn      *dbus.Conn
	logger    *slog.Logger
	publisher Publisher

	mu         sync.RWMutex
	serverInfo ServerInfo
	running    bool
}

// NewEventServer creates an EventServer that publishes to p.
func NewEventServer(p Publisher, logger *slog.Logger) *EventServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventServer{
		logger:     logger,
		publisher:  p,
		serverInfo: DefaultServerInfo(),
	}
}

// SetServerInfo sets the information returned by GetServerInformation.
func (s *EventServer) SetServerInfo(info ServerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverInfo = info
}

// Start connects to the session bus, exports the interface and claims the bus name.
func (s *EventServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: eventMethods(),
				Signals: eventSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken, is desknotifyd already running?", DBusBusName)
	}

	s.conn = conn
	s.running = true

	s.logger.Info("D-Bus event server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name. The shared session connection stays open.
func (s *EventServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		_ = s.conn.Export(nil, DBusPath, DBusInterface)
	}

	s.logger.Info("D-Bus event server stopped")
	return nil
}

// DesktopSwitched reports that the current desktop changed.
// D-Bus method: DesktopSwitched(u) -> nothing
func (s *EventServer) DesktopSwitched(newIndex uint32) *dbus.Error {
	idx, err := toIndex(newIndex)
	if err != nil {
		return invalidArgs(err)
	}
	s.logger.Debug("DesktopSwitched called", "new_index", idx)
	s.publisher.PublishSwitched(desktop.SwitchedEvent{NewIndex: idx})
	return nil
}

// DesktopMoved reports that a desktop was reordered.
// D-Bus method: DesktopMoved(uuu) -> nothing
func (s *EventServer) DesktopMoved(oldIndex, newIndex, currentIndex uint32) *dbus.Error {
	var ev desktop.MovedEvent
	var err error
	if ev.OldIndex, err = toIndex(oldIndex); err != nil {
		return invalidArgs(err)
	}
	if ev.NewIndex, err = toIndex(newIndex); err != nil {
		return invalidArgs(err)
	}
	if ev.CurrentIndex, err = toIndex(currentIndex); err != nil {
		return invalidArgs(err)
	}
	s.logger.Debug("DesktopMoved called", "old_index", ev.OldIndex, "new_index", ev.NewIndex, "current_index", ev.CurrentIndex)
	s.publisher.PublishMoved(ev)
	return nil
}

// WindowPinned reports a pin change for a window or application.
// D-Bus method: WindowPinned(tu) -> nothing
func (s *EventServer) WindowPinned(window uint64, operation uint32) *dbus.Error {
	op := desktop.PinOperation(operation)
	if err := validPinOperation(op); err != nil {
		return invalidArgs(err)
	}
	s.logger.Debug("WindowPinned called", "window", window, "operation", op.String())
	s.publisher.PublishPinned(desktop.PinnedEvent{
		Window:    desktop.WindowHandle(window),
		Operation: op,
	})
	return nil
}

// GetServerInformation returns information about the daemon.
// D-Bus method: GetServerInformation() -> (ssss)
func (s *EventServer) GetServerInformation() (string, string, string, string, *dbus.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.logger.Debug("GetServerInformation called")
	return s.serverInfo.Name, s.serverInfo.Vendor, s.serverInfo.Version, s.serverInfo.OSBuild, nil
}

func toIndex(v uint32) (int, error) {
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("desktop index %d out of range", v)
	}
	return int(v), nil
}

func invalidArgs(err error) *dbus.Error {
	return dbus.NewError("org.freedesktop.DBus.Error.InvalidArgs", []any{err.Error()})
}

// eventMethods returns the D-Bus method introspection data.
func eventMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "DesktopSwitched",
			Args: []introspect.Arg{
				{Name: "new_index", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "DesktopMoved",
			Args: []introspect.Arg{
				{Name: "old_index", Type: "u", Direction: "in"},
				{Name: "new_index", Type: "u", Direction: "in"},
				{Name: "current_index", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "WindowPinned",
			Args: []introspect.Arg{
				{Name: "window", Type: "t", Direction: "in"},
				{Name: "operation", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "vendor", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "os_build", Type: "s", Direction: "out"},
			},
		},
	}
}

// eventSignals returns the D-Bus signal introspection data.
func eventSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: SignalNotificationShown,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "header", Type: "s"},
				{Name: "body", Type: "s"},
			},
		},
	}
}
