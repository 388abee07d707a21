// Package tui provides the BubbleTea-based notification simulator used by
// "desknotify preview". It drives the real notification service against
// virtual monitors and draws open notification windows in the terminal.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/daemon"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/monitor"
	"github.com/jmylchreest/desknotify/internal/product"
	"github.com/jmylchreest/desknotify/internal/timer"
)

// maxEvents is the number of event log lines kept on screen.
const maxEvents = 6

// previewWindow is the fake handle used for pin events.
const previewWindow desktop.WindowHandle = 0x1001

// Options configures the simulator.
type Options struct {
	Config   *config.DaemonConfig
	Product  product.Info
	Desktops int // default 4
	Monitors int // default 2
	Clock    timer.Clock
	Logger   *slog.Logger
}

// Model is the simulator model.
type Model struct {
	svc        *daemon.Service
	hub        *desktop.Hub
	dispatcher *teaDispatcher
	screen     *screen
	settings   *config.Store
	product    product.Info

	desktops     int
	current      int // 0-based
	windowPinned bool
	appPinned    bool

	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
	events   []string
}

// New creates the simulator model and its notification service.
func New(opts Options) (Model, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultDaemonConfig()
	}
	if opts.Desktops <= 0 {
		opts.Desktops = 4
	}
	if opts.Monitors <= 0 {
		opts.Monitors = 2
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Product.Title == "" {
		opts.Product.Title = "desknotify"
	}

	scr := &screen{monitors: monitor.Grid(opts.Monitors, 1920, 1080)}
	settings := config.NewStore(opts.Config)
	dispatcher := &teaDispatcher{}
	hub := desktop.NewHub(opts.Logger)

	svc, err := daemon.NewService(daemon.Options{
		Logger:     opts.Logger,
		Product:    opts.Product,
		Settings:   settings,
		Monitors:   &monitor.Static{Monitors: scr.monitors},
		Windows:    scr,
		Dispatcher: dispatcher,
		Clock:      opts.Clock,
	})
	if err != nil {
		return Model{}, err
	}
	if err := svc.Subscribe(hub); err != nil {
		return Model{}, err
	}

	return Model{
		svc:        svc,
		hub:        hub,
		dispatcher: dispatcher,
		screen:     scr,
		settings:   settings,
		product:    opts.Product,
		desktops:   opts.Desktops,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case drainMsg:
		m.dispatcher.drain()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dispatcher.drain()
		m.svc.Close()
		m.dispatcher.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Prev):
		m.switchTo((m.current + m.desktops - 1) % m.desktops)

	case key.Matches(msg, m.keys.Next):
		m.switchTo((m.current + 1) % m.desktops)

	case key.Matches(msg, m.keys.Jump):
		if n := int(msg.String()[0] - '0'); n >= 1 && n <= m.desktops {
			m.switchTo(n - 1)
		}

	case key.Matches(msg, m.keys.MoveLeft):
		m.move(m.current - 1)

	case key.Matches(msg, m.keys.MoveRight):
		m.move(m.current + 1)

	case key.Matches(msg, m.keys.PinWindow):
		m.windowPinned = !m.windowPinned
		m.pin(desktop.OpWindow, m.windowPinned)

	case key.Matches(msg, m.keys.PinApp):
		m.appPinned = !m.appPinned
		m.pin(desktop.OpApplication, m.appPinned)

	case key.Matches(msg, m.keys.ToggleSimple):
		m.updateSettings(func(c *config.DaemonConfig) {
			c.General.SimpleNotification = !c.General.SimpleNotification
		})

	case key.Matches(msg, m.keys.ToggleNames):
		m.updateSettings(func(c *config.DaemonConfig) {
			c.General.UseDesktopName = !c.General.UseDesktopName
			if len(c.General.DesktopNames) == 0 {
				c.General.DesktopNames = defaultDesktopNames(m.desktops)
			}
		})

	case key.Matches(msg, m.keys.CycleMonitor):
		m.updateSettings(func(c *config.DaemonConfig) {
			c.Display.Monitor = nextMonitorSetting(c.Display.Monitor, len(m.screen.monitors))
		})
	}

	return m, nil
}

func (m *Model) switchTo(index int) {
	if index == m.current {
		return
	}
	m.current = index
	m.logEvent(fmt.Sprintf("switched to desktop %d", index+1))
	m.hub.PublishSwitched(desktop.SwitchedEvent{NewIndex: index})
}

func (m *Model) move(to int) {
	if to < 0 || to >= m.desktops {
		return
	}
	from := m.current
	m.current = to
	m.logEvent(fmt.Sprintf("moved desktop %d to %d", from+1, to+1))
	m.hub.PublishMoved(desktop.MovedEvent{OldIndex: from, NewIndex: to, CurrentIndex: to})
}

func (m *Model) pin(subject desktop.PinOperation, pinned bool) {
	op := subject | desktop.OpUnpin
	if pinned {
		op = subject | desktop.OpPin
	}
	m.logEvent("pin event: " + op.String())
	m.hub.PublishPinned(desktop.PinnedEvent{Window: previewWindow, Operation: op})
}

func (m *Model) updateSettings(modify func(*config.DaemonConfig)) {
	next := *m.settings.Current()
	next.General.DesktopNames = append([]string(nil), next.General.DesktopNames...)
	modify(&next)
	m.settings.Set(&next)
	m.logEvent(fmt.Sprintf("settings: simple=%t names=%t monitor=%s",
		next.General.SimpleNotification,
		next.General.UseDesktopName,
		monitor.TargetFromSetting(next.Display.Monitor),
	))
}

func (m *Model) logEvent(s string) {
	m.events = append(m.events, time.Now().Format("15:04:05")+" "+s)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func defaultDesktopNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Workspace %c", 'A'+i)
	}
	return names
}

// nextMonitorSetting cycles current -> 1..n -> all -> current.
func nextMonitorSetting(v uint32, n int) uint32 {
	switch {
	case v == config.MonitorCurrent:
		return 1
	case v == config.MonitorAll:
		return config.MonitorCurrent
	case int(v) >= n:
		return config.MonitorAll
	default:
		return v + 1
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	monitorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	desktopStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeDesktopStyle = desktopStyle.
				Background(lipgloss.Color("12")).
				Foreground(lipgloss.Color("0"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.product.Title + " preview"))
	b.WriteString("  ")
	for i := range m.desktops {
		style := desktopStyle
		if i == m.current {
			style = activeDesktopStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d", i+1)))
	}
	b.WriteString("\n\n")

	columns := make([]string, 0, len(m.screen.monitors))
	for _, mon := range m.screen.monitors {
		content := []string{dimStyle.Render(mon.Name)}
		for _, w := range m.screen.windowsOn(mon.Name) {
			content = append(content, w.render())
		}
		columns = append(columns, monitorStyle.
			Width(56).
			Height(10).
			Render(strings.Join(content, "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	for _, e := range m.events {
		b.WriteString(dimStyle.Render(e))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

// Run starts the simulator.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.dispatcher.setSend(p.Send)

	_, err = p.Run()
	m.dispatcher.close()
	return err
}
