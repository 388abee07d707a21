// Package desktop defines virtual desktop events and the in-process event hub.
package desktop

import "strings"

// WindowHandle identifies a native top-level window.
type WindowHandle uint64

// PinOperation describes a pin change as a set of flag bits.
type PinOperation uint32

const (
	OpPin PinOperation = 1 << iota
	OpUnpin
	OpWindow
	OpApplication
)

// Has reports whether every bit of flag is set.
func (op PinOperation) Has(flag PinOperation) bool {
	return op&flag == flag
}

// String returns the set flags joined by "|".
func (op PinOperation) String() string {
	var parts []string
	for _, f := range []struct {
		flag PinOperation
		name string
	}{
		{OpPin, "pin"},
		{OpUnpin, "unpin"},
		{OpWindow, "window"},
		{OpApplication, "application"},
	} {
		if op.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// SwitchedEvent is raised when the current desktop changes.
type SwitchedEvent struct {
	NewIndex int // 0-based
}

// MovedEvent is raised when a desktop is reordered.
type MovedEvent struct {
	OldIndex     int // 0-based
	NewIndex     int // 0-based
	CurrentIndex int // 0-based index of the current desktop after the move
}

// PinnedEvent is raised when a window or application is pinned or unpinned.
type PinnedEvent struct {
	Window    WindowHandle
	Operation PinOperation
}

// Subscription is a registered listener. Release is idempotent.
type Subscription interface {
	Release()
}

// Source publishes desktop events to registered listeners.
type Source interface {
	OnSwitched(func(SwitchedEvent)) Subscription
	OnMoved(func(MovedEvent)) Subscription
	OnPinned(func(PinnedEvent)) Subscription
}
