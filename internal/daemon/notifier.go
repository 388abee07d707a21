package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/desknotify/internal/config"
)

// InternalNotifier shows notifications about the daemon itself, such as
// configuration reloads. Repeats of the same key within minInterval are dropped.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	settings config.Provider
	notify   func(header, body string)
	now      func() time.Time

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
}

// NewInternalNotifier creates an InternalNotifier that displays through notify.
// Notices are skipped when [behavior].internal_notices is off.
func NewInternalNotifier(settings config.Provider, notify func(header, body string), logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		settings:       settings,
		notify:         notify,
		now:            time.Now,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
	}
}

// SetMinInterval sets the minimum interval between notices with the same key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows a notice unless one with the same key was shown recently.
func (n *InternalNotifier) Notify(key, header, body string) {
	n.mu.Lock()
	if n.settings != nil && !n.settings.Current().Behavior.InternalNotices {
		n.mu.Unlock()
		n.logger.Debug("internal notice disabled", "key", key)
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal notice rate-limited", "key", key)
		return
	}
	n.lastNotifyTime[key] = now
	notify := n.notify
	n.mu.Unlock()

	if notify == nil {
		return
	}
	n.logger.Debug("sending internal notice", "key", key, "header", header)
	notify(header, body)
}

// NotifyConfigReloaded reports a successful configuration reload.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration Reloaded", "desknotifyd configuration has been reloaded.")
}

// NotifyConfigError reports a configuration file that failed to load.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration Error", "Failed to reload configuration: "+err.Error())
}
