package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/desknotify/internal/daemon"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/monitor"
	"github.com/jmylchreest/desknotify/internal/viewmodel"
)

// pixelsPerColumn converts window pixel widths to terminal columns.
const pixelsPerColumn = 10

// screen holds the virtual monitors and the notification windows open on them.
// It is only touched from Model.Update.
type screen struct {
	monitors []monitor.Monitor
	windows  []*termWindow
	created  int
}

// termWindow renders a notification as a lipgloss box.
type termWindow struct {
	screen  *screen
	monitor string
	vm      *viewmodel.Notification
	pinned  desktop.WindowHandle
	open    bool
}

func (w *termWindow) Show() error {
	if !w.open {
		w.open = true
		w.screen.windows = append(w.screen.windows, w)
	}
	return nil
}

func (w *termWindow) Close() {
	if !w.open {
		return
	}
	w.open = false
	w.screen.windows = slices.DeleteFunc(w.screen.windows, func(o *termWindow) bool { return o == w })
}

// NewDesktopWindow implements daemon.WindowFactory.
func (s *screen) NewDesktopWindow(vm *viewmodel.Notification, m monitor.Monitor) (daemon.Window, error) {
	s.created++
	return &termWindow{screen: s, monitor: m.Name, vm: vm}, nil
}

// NewPinWindow implements daemon.WindowFactory.
func (s *screen) NewPinWindow(vm *viewmodel.Notification, target desktop.WindowHandle, m monitor.Monitor) (daemon.Window, error) {
	s.created++
	return &termWindow{screen: s, monitor: m.Name, vm: vm, pinned: target}, nil
}

// windowsOn returns the open windows on the named monitor.
func (s *screen) windowsOn(name string) []*termWindow {
	var out []*termWindow
	for _, w := range s.windows {
		if w.monitor == name {
			out = append(out, w)
		}
	}
	return out
}

var (
	notificationBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("12")).
				Padding(0, 1)

	notificationHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8"))

	notificationBodyStyle = lipgloss.NewStyle().
				Bold(true)
)

func lipglossAlign(a viewmodel.Alignment) lipgloss.Position {
	if a == viewmodel.AlignCenter {
		return lipgloss.Center
	}
	return lipgloss.Left
}

// render draws the window using the view-model's layout properties.
func (w *termWindow) render() string {
	vm := w.vm
	width := vm.MinWidth() / pixelsPerColumn

	var lines []string
	if vm.HeaderVisible() {
		lines = append(lines, notificationHeaderStyle.
			Width(width).
			Align(lipglossAlign(vm.HeaderAlignment())).
			Render(vm.Header()))
	}
	if vm.BodyVisible() {
		lines = append(lines, notificationBodyStyle.
			Width(width).
			Align(lipglossAlign(vm.BodyAlignment())).
			Render(vm.Body()))
	}

	return notificationBoxStyle.Render(strings.Join(lines, "\n"))
}
