package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/desknotify/internal/config"
	"github.com/jmylchreest/desknotify/internal/desktop"
	"github.com/jmylchreest/desknotify/internal/dispatch"
	"github.com/jmylchreest/desknotify/internal/monitor"
	"github.com/jmylchreest/desknotify/internal/product"
	"github.com/jmylchreest/desknotify/internal/timer"
	"github.com/jmylchreest/desknotify/internal/viewmodel"
)

// Kind identifies what produced a notification.
type Kind string

const (
	KindSwitched Kind = "switched"
	KindMoved    Kind = "moved"
	KindPinned   Kind = "pinned"
	KindInternal Kind = "internal"
)

// Request is a single notification to display. It is not modified after it
// is handed to the UI executor.
type Request struct {
	ID        string
	Kind      Kind
	Title     string
	Header    string
	Body      string
	Duration  time.Duration
	CreatedAt time.Time

	// Window is the pinned window for KindPinned requests.
	Window desktop.WindowHandle
}

// Window is a displayed notification window.
type Window interface {
	Show() error
	// Close is safe to call more than once.
	Close()
}

// WindowFactory creates notification windows. Methods are called on the UI executor.
type WindowFactory interface {
	NewDesktopWindow(vm *viewmodel.Notification, m monitor.Monitor) (Window, error)
	NewPinWindow(vm *viewmodel.Notification, target desktop.WindowHandle, m monitor.Monitor) (Window, error)
}

// ErrServiceClosed is returned for work submitted after Close.
var ErrServiceClosed = errors.New("notification service closed")

// ErrAlreadySubscribed is returned when Subscribe is called a second time.
var ErrAlreadySubscribed = errors.New("notification service already subscribed")

// Options are the collaborators of a Service.
type Options struct {
	Logger     *slog.Logger
	Product    product.Info
	Settings   config.Provider
	Monitors   monitor.Resolver
	Windows    WindowFactory
	Dispatcher dispatch.Dispatcher
	Clock      timer.Clock

	// Paused reports whether notifications are currently suppressed.
	Paused func() bool
	// OnShown is called on the UI executor after a notification is displayed.
	OnShown func(Request)
}

// Service turns desktop events into on-screen notifications.
// At most one notification is visible at a time; showing a new one
// cancels and closes the previous one.
type Service struct {
	logger     *slog.Logger
	product    product.Info
	settings   config.Provider
	monitors   monitor.Resolver
	windows    WindowFactory
	dispatcher dispatch.Dispatcher
	clock      timer.Clock
	paused     func() bool
	onShown    func(Request)

	mu     sync.Mutex
	subs   []desktop.Subscription
	active *activeNotification
	closed bool
}

// NewService creates a Service. Settings, Monitors, Windows and Dispatcher are required.
func NewService(opts Options) (*Service, error) {
	if opts.Settings == nil || opts.Monitors == nil || opts.Windows == nil || opts.Dispatcher == nil {
		return nil, errors.New("settings, monitors, windows and dispatcher are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = timer.System{}
	}

	return &Service{
		logger:     opts.Logger,
		product:    opts.Product,
		settings:   opts.Settings,
		monitors:   opts.Monitors,
		windows:    opts.Windows,
		dispatcher: opts.Dispatcher,
		clock:      opts.Clock,
		paused:     opts.Paused,
		onShown:    opts.OnShown,
	}, nil
}

// Subscribe registers the service's handlers on src. The moved handler is
// only registered when the host supports desktop reordering. A service
// subscribes once; later calls return ErrAlreadySubscribed.
func (s *Service) Subscribe(src desktop.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if len(s.subs) > 0 {
		return ErrAlreadySubscribed
	}

	s.subs = append(s.subs,
		src.OnSwitched(func(ev desktop.SwitchedEvent) {
			s.OnDesktopSwitched(ev.NewIndex)
		}),
		src.OnPinned(func(ev desktop.PinnedEvent) {
			s.OnWindowPinned(ev.Window, ev.Operation)
		}),
	)

	if s.product.Features.Reordering {
		s.subs = append(s.subs, src.OnMoved(func(ev desktop.MovedEvent) {
			s.OnDesktopMoved(ev.OldIndex, ev.NewIndex, ev.CurrentIndex)
		}))
	} else {
		s.logger.Debug("desktop reordering not supported, moved events ignored", "os_build", s.product.OSBuild)
	}

	return nil
}

// OnDesktopSwitched handles a change of the current desktop. newIndex is 0-based.
func (s *Service) OnDesktopSwitched(newIndex int) {
	cfg := s.settings.Current()
	if !cfg.General.NotifyOnSwitch || s.suppressed(KindSwitched) {
		return
	}
	header, body := switchedText(cfg.General, desktop.SwitchedEvent{NewIndex: newIndex})
	s.post(s.newRequest(cfg, KindSwitched, header, body))
}

// OnDesktopMoved handles a desktop reorder. All indices are 0-based.
func (s *Service) OnDesktopMoved(oldIndex, newIndex, currentIndex int) {
	cfg := s.settings.Current()
	if !cfg.General.NotifyOnSwitch || s.suppressed(KindMoved) {
		return
	}
	header, body := movedText(cfg.General, desktop.MovedEvent{
		OldIndex:     oldIndex,
		NewIndex:     newIndex,
		CurrentIndex: currentIndex,
	})
	s.post(s.newRequest(cfg, KindMoved, header, body))
}

// OnWindowPinned handles a pin change. It is not gated by notify_on_switch.
func (s *Service) OnWindowPinned(window desktop.WindowHandle, op desktop.PinOperation) {
	if s.suppressed(KindPinned) {
		return
	}
	cfg := s.settings.Current()
	header, body := pinnedText(cfg.General, desktop.PinnedEvent{Window: window, Operation: op})
	req := s.newRequest(cfg, KindPinned, header, body)
	req.Window = window
	s.post(req)
}

// Notify shows an internal message using the desktop notification layout.
func (s *Service) Notify(header, body string) {
	s.post(s.newRequest(s.settings.Current(), KindInternal, header, body))
}

// ActiveID returns the ID of the visible notification, or "" if none.
func (s *Service) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.id
}

// Close releases the event subscriptions, cancels the pending auto-close and
// closes any visible windows. It is safe to call more than once and should be
// called from the UI executor.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	active := s.active
	s.active = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Release()
	}
	if active != nil {
		active.dispose()
	}
	s.logger.Debug("notification service closed", "subscriptions", len(subs))
}

func (s *Service) suppressed(kind Kind) bool {
	if s.paused != nil && s.paused() {
		s.logger.Debug("notifications paused, event suppressed", "kind", kind)
		return true
	}
	return false
}

func (s *Service) newRequest(cfg *config.DaemonConfig, kind Kind, header, body string) Request {
	return Request{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Title:     s.product.Title,
		Header:    header,
		Body:      body,
		Duration:  cfg.General.NotificationDuration.Duration(),
		CreatedAt: time.Now(),
	}
}

func (s *Service) post(req Request) {
	err := s.dispatcher.Post(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic while showing notification",
					"id", req.ID,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		if err := s.show(req); err != nil {
			s.logger.Warn("notification dropped", "id", req.ID, "kind", req.Kind, "error", err)
		}
	})
	if err != nil {
		s.logger.Error("failed to post notification to UI executor", "id", req.ID, "kind", req.Kind, "error", err)
	}
}

// show runs on the UI executor.
func (s *Service) show(req Request) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrServiceClosed
	}

	cfg := s.settings.Current()
	vm := viewmodel.New(s.settings, req.Title, req.Header, req.Body)

	windows, err := s.createWindows(cfg, req, vm)
	if err != nil {
		return err
	}

	for _, w := range windows {
		if err := w.Show(); err != nil {
			closeAll(windows)
			return fmt.Errorf("failed to show window: %w", err)
		}
	}

	a := &activeNotification{id: req.ID, windows: windows}
	a.start(s.clock, req.Duration, func() { s.expire(a) })

	// The previous timer is canceled before the new notification takes the slot.
	s.mu.Lock()
	prev := s.active
	if prev != nil {
		prev.cancel()
	}
	s.active = a
	s.mu.Unlock()

	if prev != nil {
		prev.closeWindows()
	}

	s.logger.Debug("notification shown",
		"id", req.ID,
		"kind", req.Kind,
		"windows", len(windows),
		"duration", req.Duration,
	)

	if s.onShown != nil {
		s.onShown(req)
	}
	return nil
}

func (s *Service) createWindows(cfg *config.DaemonConfig, req Request, vm *viewmodel.Notification) ([]Window, error) {
	if req.Kind == KindPinned {
		m, err := s.monitors.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve monitor: %w", err)
		}
		w, err := s.windows.NewPinWindow(vm, req.Window, m)
		if err != nil {
			return nil, fmt.Errorf("failed to create pin window: %w", err)
		}
		return []Window{w}, nil
	}

	strict := s.product.Debug || cfg.Behavior.StrictMonitorIndex
	target := monitor.TargetFromSetting(cfg.Display.Monitor)
	monitors, err := monitor.Resolve(s.monitors, target, strict, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve monitors for %s: %w", target, err)
	}

	windows := make([]Window, 0, len(monitors))
	for _, m := range monitors {
		w, err := s.windows.NewDesktopWindow(vm, m)
		if err != nil {
			closeAll(windows)
			return nil, fmt.Errorf("failed to create window on %s: %w", m.Name, err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// expire runs on the clock's goroutine when a notification's duration elapses.
func (s *Service) expire(a *activeNotification) {
	if a.isCanceled() {
		return
	}
	err := s.dispatcher.Post(func() {
		if a.isCanceled() {
			return
		}
		s.mu.Lock()
		if s.active == a {
			s.active = nil
		}
		s.mu.Unlock()
		a.closeWindows()
		s.logger.Debug("notification expired", "id", a.id)
	})
	if err != nil {
		s.logger.Error("failed to post notification close", "id", a.id, "error", err)
	}
}

func closeAll(windows []Window) {
	for _, w := range windows {
		w.Close()
	}
}

// activeNotification owns the windows and auto-close timer of the visible notification.
type activeNotification struct {
	id      string
	windows []Window

	mu       sync.Mutex
	timer    timer.Timer
	canceled bool
	closed   bool
}

func (a *activeNotification) start(clock timer.Clock, d time.Duration, f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer = clock.AfterFunc(d, f)
}

func (a *activeNotification) isCanceled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canceled
}

// cancel stops the auto-close timer. It never closes the windows.
func (a *activeNotification) cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.canceled {
		return
	}
	a.canceled = true
	if a.timer != nil {
		a.timer.Stop()
	}
}

func (a *activeNotification) closeWindows() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	windows := a.windows
	a.mu.Unlock()

	closeAll(windows)
}

// dispose cancels then closes.
func (a *activeNotification) dispose() {
	a.cancel()
	a.closeWindows()
}
