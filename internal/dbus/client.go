package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/desknotify/internal/desktop"
)

// Client calls a running desknotifyd over the session bus.
type Client struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	logger *slog.Logger
}

// NewClient connects to the session bus.
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn:   conn,
		obj:    conn.Object(DBusBusName, DBusPath),
		logger: logger,
	}, nil
}

func (c *Client) call(ctx context.Context, method string, args ...any) *dbus.Call {
	c.logger.Debug("calling daemon", "method", method)
	return c.obj.CallWithContext(ctx, DBusInterface+"."+method, 0, args...)
}

// DesktopSwitched reports a desktop switch. newIndex is 0-based.
func (c *Client) DesktopSwitched(ctx context.Context, newIndex uint32) error {
	if err := c.call(ctx, "DesktopSwitched", newIndex).Err; err != nil {
		return fmt.Errorf("DesktopSwitched failed: %w", err)
	}
	return nil
}

// DesktopMoved reports a desktop reorder. All indices are 0-based.
func (c *Client) DesktopMoved(ctx context.Context, oldIndex, newIndex, currentIndex uint32) error {
	if err := c.call(ctx, "DesktopMoved", oldIndex, newIndex, currentIndex).Err; err != nil {
		return fmt.Errorf("DesktopMoved failed: %w", err)
	}
	return nil
}

// WindowPinned reports a pin change.
func (c *Client) WindowPinned(ctx context.Context, window desktop.WindowHandle, op desktop.PinOperation) error {
	if err := c.call(ctx, "WindowPinned", uint64(window), uint32(op)).Err; err != nil {
		return fmt.Errorf("WindowPinned failed: %w", err)
	}
	return nil
}

// ServerInformation returns the daemon's GetServerInformation reply.
func (c *Client) ServerInformation(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	err := c.call(ctx, "GetServerInformation").Store(&info.Name, &info.Vendor, &info.Version, &info.OSBuild)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("GetServerInformation failed: %w", err)
	}
	return info, nil
}

// WatchShown calls handler for every NotificationShown signal until ctx is done.
func (c *Client) WatchShown(ctx context.Context, handler func(ShownNotification)) error {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember(SignalNotificationShown),
	}
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}
	defer func() {
		_ = c.conn.RemoveMatchSignal(opts...)
	}()

	ch := make(chan *dbus.Signal, 16)
	c.conn.Signal(ch)
	defer c.conn.RemoveSignal(ch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-ch:
			if !ok {
				return nil
			}
			n, ok := parseShown(sig)
			if !ok {
				continue
			}
			handler(n)
		}
	}
}

func parseShown(sig *dbus.Signal) (ShownNotification, bool) {
	if sig == nil || sig.Name != DBusInterface+"."+SignalNotificationShown || len(sig.Body) != 3 {
		return ShownNotification{}, false
	}
	var n ShownNotification
	var ok bool
	if n.ID, ok = sig.Body[0].(string); !ok {
		return ShownNotification{}, false
	}
	if n.Header, ok = sig.Body[1].(string); !ok {
		return ShownNotification{}, false
	}
	if n.Body, ok = sig.Body[2].(string); !ok {
		return ShownNotification{}, false
	}
	return n, true
}
