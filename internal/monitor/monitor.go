// Package monitor resolves which display work areas a notification is shown on.
package monitor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/desknotify/internal/config"
)

// Errors returned by Resolve.
var (
	ErrNoMonitors        = errors.New("no monitors available")
	ErrMonitorOutOfRange = errors.New("monitor index out of range")
)

// Rect describes a rectangle in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor describes a display and its usable work area.
type Monitor struct {
	Name     string
	Bounds   Rect
	WorkArea Rect

	// Handle is the renderer's native monitor object, if any.
	Handle any
}

// Resolver enumerates the monitors of the host.
type Resolver interface {
	// Current returns the monitor the user is working on.
	Current() (Monitor, error)
	// All returns every monitor in display order.
	All() ([]Monitor, error)
}

// Kind is the display target selection.
type Kind int

const (
	KindCurrent Kind = iota
	KindAll
	KindSpecific
)

// Target selects the monitor(s) to show a notification on.
type Target struct {
	Kind  Kind
	Index int // 1-based, only for KindSpecific
}

// TargetFromSetting decodes the [display].monitor setting.
func TargetFromSetting(v uint32) Target {
	switch v {
	case config.MonitorCurrent:
		return Target{Kind: KindCurrent}
	case config.MonitorAll:
		return Target{Kind: KindAll}
	default:
		return Target{Kind: KindSpecific, Index: int(v)}
	}
}

// String returns a short description for logging.
func (t Target) String() string {
	switch t.Kind {
	case KindCurrent:
		return "current"
	case KindAll:
		return "all"
	default:
		return fmt.Sprintf("monitor-%d", t.Index)
	}
}

// Resolve returns the monitors for target.
// An out-of-range specific index is an error when strict is set; otherwise it
// falls back to the primary (first) monitor and logs a warning.
func Resolve(r Resolver, t Target, strict bool, logger *slog.Logger) ([]Monitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch t.Kind {
	case KindCurrent:
		m, err := r.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to get current monitor: %w", err)
		}
		return []Monitor{m}, nil

	case KindAll:
		monitors, err := r.All()
		if err != nil {
			return nil, fmt.Errorf("failed to list monitors: %w", err)
		}
		if len(monitors) == 0 {
			return nil, ErrNoMonitors
		}
		return monitors, nil
	}

	monitors, err := r.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list monitors: %w", err)
	}
	if len(monitors) == 0 {
		return nil, ErrNoMonitors
	}

	if t.Index < 1 || t.Index > len(monitors) {
		if strict {
			return nil, fmt.Errorf("%w: configured %d, available %d", ErrMonitorOutOfRange, t.Index, len(monitors))
		}
		logger.Warn("configured monitor not available, using primary",
			"configured", t.Index,
			"available", len(monitors),
		)
		return monitors[:1], nil
	}

	return []Monitor{monitors[t.Index-1]}, nil
}

// Static is a Resolver over a fixed monitor list.
type Static struct {
	Monitors []Monitor
	// CurrentIndex is the 0-based index returned by Current.
	CurrentIndex int
}

// Current returns the monitor at CurrentIndex.
func (s *Static) Current() (Monitor, error) {
	if len(s.Monitors) == 0 {
		return Monitor{}, ErrNoMonitors
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Monitors) {
		return s.Monitors[0], nil
	}
	return s.Monitors[s.CurrentIndex], nil
}

// All returns a copy of the monitor list.
func (s *Static) All() ([]Monitor, error) {
	out := make([]Monitor, len(s.Monitors))
	copy(out, s.Monitors)
	return out, nil
}

// Grid builds n side-by-side monitors of the given size, each with a
// taskbar-sized strip removed from the bottom of its work area.
func Grid(n, width, height int) []Monitor {
	const taskbar = 48
	monitors := make([]Monitor, n)
	for i := range n {
		bounds := Rect{X: i * width, Y: 0, Width: width, Height: height}
		work := bounds
		work.Height -= taskbar
		monitors[i] = Monitor{
			Name:     fmt.Sprintf("DISPLAY%d", i+1),
			Bounds:   bounds,
			WorkArea: work,
		}
	}
	return monitors
}
