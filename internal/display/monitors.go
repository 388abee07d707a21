package display

import (
	"log/slog"
	"strconv"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/desknotify/internal/monitor"
)

// MonitorResolver enumerates monitors through GDK. It must be used on the
// GTK main thread.
type MonitorResolver struct {
	logger *slog.Logger
}

// NewMonitorResolver creates a MonitorResolver.
func NewMonitorResolver(logger *slog.Logger) *MonitorResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonitorResolver{logger: logger}
}

// Current returns the first monitor. GTK4 does not expose the focused
// monitor without a mapped surface.
func (r *MonitorResolver) Current() (monitor.Monitor, error) {
	monitors, err := r.All()
	if err != nil {
		return monitor.Monitor{}, err
	}
	if len(monitors) == 0 {
		return monitor.Monitor{}, monitor.ErrNoMonitors
	}
	return monitors[0], nil
}

// All returns every monitor known to the default display.
// GTK4 has no work-area API, so WorkArea equals the monitor geometry.
func (r *MonitorResolver) All() ([]monitor.Monitor, error) {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}

	list := display.Monitors()
	if list == nil {
		return nil, &DisplayError{Message: "no monitor list available"}
	}

	n := list.NItems()
	out := make([]monitor.Monitor, 0, n)
	for i := uint(0); i < n; i++ {
		gm := wrapMonitor(list.Item(i))
		if gm == nil {
			continue
		}
		geo := gm.Geometry()
		bounds := monitor.Rect{X: geo.X(), Y: geo.Y(), Width: geo.Width(), Height: geo.Height()}
		out = append(out, monitor.Monitor{
			Name:     monitorName(gm, i),
			Bounds:   bounds,
			WorkArea: bounds,
			Handle:   gm,
		})
	}

	r.logger.Debug("enumerated monitors", "count", len(out))
	return out, nil
}

func monitorName(m *gdk.Monitor, i uint) string {
	if c := m.Connector(); c != "" {
		return c
	}
	if model := m.Model(); model != "" {
		return model
	}
	return "monitor-" + strconv.Itoa(int(i)+1)
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper for list model items.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type gdkMonitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &gdkMonitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
