package dbus

import (
	"fmt"

	"github.com/jmylchreest/desknotify/internal/desktop"
)

const (
	// DBusInterface is the event bridge interface name.
	DBusInterface = "io.github.jmylchreest.DeskNotify"
	// DBusPath is the event bridge object path.
	DBusPath = "/io/github/jmylchreest/DeskNotify"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.DeskNotify"

	// SignalNotificationShown is emitted after a notification is displayed.
	SignalNotificationShown = "NotificationShown"
)

// ServerInfo is returned by GetServerInformation.
type ServerInfo struct {
	Name    string // "desknotifyd"
	Vendor  string
	Version string
	// OSBuild is the host build number the feature flags were derived from.
	OSBuild string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:    "desknotifyd",
		Vendor:  "desknotify",
		Version: "0.0.0",
		OSBuild: "0",
	}
}

// ShownNotification is the payload of the NotificationShown signal.
type ShownNotification struct {
	ID     string `json:"id" yaml:"id"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
	Body   string `json:"body" yaml:"body"`
}

// Publisher receives the events decoded from method calls.
type Publisher interface {
	PublishSwitched(desktop.SwitchedEvent)
	PublishMoved(desktop.MovedEvent)
	PublishPinned(desktop.PinnedEvent)
}

// validPinOperation reports whether op carries exactly one of pin/unpin and
// exactly one of window/application.
func validPinOperation(op desktop.PinOperation) error {
	if op.Has(desktop.OpPin) == op.Has(desktop.OpUnpin) {
		return fmt.Errorf("operation %s must set exactly one of pin or unpin", op)
	}
	if op.Has(desktop.OpWindow) == op.Has(desktop.OpApplication) {
		return fmt.Errorf("operation %s must set exactly one of window or application", op)
	}
	return nil
}
