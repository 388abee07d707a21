package display

import (
	"log/slog"
	"os"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/daemon"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/monitor"
	"github.com/jmylchreest/desknotify/internal/viewmodel"
)

// Factory creates GTK notification windows. Its methods must run on the
// GTK main thread.
type Factory struct {
	app      *gtk.Application
	settings config.Provider
	style    *Style
	logger   *slog.Logger

	layerShell bool
}

// NewFactory creates a Factory. Layer-shell placement is used when running
// under Wayland.
func NewFactory(app *gtk.Application, settings config.Provider, style *Style, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		app:        app,
		settings:   settings,
		style:      style,
		logger:     logger,
		layerShell: os.Getenv("WAYLAND_DISPLAY") != "",
	}
}

// NewDesktopWindow creates a window placed on m.
func (f *Factory) NewDesktopWindow(vm *viewmodel.Notification, m monitor.Monitor) (daemon.Window, error) {
	w, err := f.newWindow(vm)
	if err != nil {
		return nil, err
	}
	f.place(w, m)
	return w, nil
}

// NewPinWindow creates a window for a pin change. The window is placed on m;
// target is only recorded for logging because a foreign toplevel cannot be
// used as a placement anchor.
func (f *Factory) NewPinWindow(vm *viewmodel.Notification, target desktop.WindowHandle, m monitor.Monitor) (daemon.Window, error) {
	w, err := f.newWindow(vm)
	if err != nil {
		return nil, err
	}
	w.window.AddCSSClass("pin")
	f.place(w, m)
	f.logger.Debug("created pin window", "target", uint64(target), "monitor", m.Name)
	return w, nil
}

func (f *Factory) newWindow(vm *viewmodel.Notification) (*Window, error) {
	if f.app == nil {
		return nil, &DisplayError{Message: "no GTK application"}
	}
	if f.style != nil {
		f.style.SetFont(vm.FontFamily())
	}

	w := &Window{logger: f.logger}
	w.window = gtk.NewWindow()
	w.window.SetApplication(f.app)
	w.window.SetTitle(vm.Title())
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetFocusable(false)
	w.window.SetCanFocus(false)
	w.window.AddCSSClass("desknotify")
	w.window.SetSizeRequest(vm.MinWidth(), vm.MinHeight())

	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.AddCSSClass("desknotify-notification")
	box.AddCSSClass(colorSchemeClass())
	if f.settings != nil && f.settings.Current().General.SimpleNotification {
		box.AddCSSClass("simple")
	}
	box.SetVAlign(gtk.AlignCenter)

	header := gtk.NewLabel(vm.Header())
	header.AddCSSClass("desknotify-header")
	header.SetXAlign(vm.HeaderAlignment().XAlign())
	header.SetVisible(vm.HeaderVisible())
	box.Append(header)

	body := gtk.NewLabel(vm.Body())
	body.AddCSSClass("desknotify-body")
	body.SetXAlign(vm.BodyAlignment().XAlign())
	body.SetWrap(true)
	body.SetVisible(vm.BodyVisible())
	box.Append(body)

	w.window.SetChild(box)
	return w, nil
}

// place positions w within m according to [display].position and offset.
func (f *Factory) place(w *Window, m monitor.Monitor) {
	if !f.layerShell {
		// GTK4 cannot move toplevels outside layer-shell; the window manager
		// decides where the window appears.
		f.logger.Debug("layer-shell unavailable, placement left to the window manager", "monitor", m.Name)
		return
	}

	win := w.window
	layershell.InitForWindow(win)
	layershell.SetLayer(win, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(win, 0)
	layershell.SetKeyboardMode(win, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(win, "desknotify-notification")

	if gm, ok := m.Handle.(*gdk.Monitor); ok && gm != nil {
		layershell.SetMonitor(win, gm)
	}

	display := config.DefaultDaemonConfig().Display
	if f.settings != nil {
		display = f.settings.Current().Display
	}

	layershell.SetAnchor(win, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(win, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(win, layershell.LayerShellEdgeLeft, false)
	layershell.SetAnchor(win, layershell.LayerShellEdgeRight, false)

	switch config.Position(display.Position) {
	case config.PositionTop:
		layershell.SetAnchor(win, layershell.LayerShellEdgeTop, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeTop, display.Offset)
	case config.PositionBottom:
		layershell.SetAnchor(win, layershell.LayerShellEdgeBottom, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeBottom, display.Offset)
	default:
		// No anchors: the compositor centers the surface.
	}
}

// Window is a single GTK notification window.
type Window struct {
	window *gtk.Window
	logger *slog.Logger
	closed bool
}

// Show presents the window.
func (w *Window) Show() error {
	if w.closed {
		return &DisplayError{Message: "window already closed"}
	}
	w.window.Present()
	return nil
}

// Close destroys the window. Subsequent calls do nothing.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.Close()
}
