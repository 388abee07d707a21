package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/desknotify/internal/config"
)

type notice struct{ header, body string }

func newTestNotifier(cfg *config.DaemonConfig) (*InternalNotifier, *[]notice, *time.Time) {
	var got []notice
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	n := NewInternalNotifier(config.NewStore(cfg), func(h, b string) {
		got = append(got, notice{h, b})
	}, nil)
	n.now = func() time.Time { return now }
	return n, &got, &now
}

func TestInternalNotifier_RateLimit(t *testing.T) {
	n, got, now := newTestNotifier(config.DefaultDaemonConfig())

	n.NotifyConfigReloaded()
	n.NotifyConfigReloaded()
	assert.Len(t, *got, 1)

	// Different keys are limited independently.
	n.NotifyConfigError(errors.New("bad position"))
	assert.Len(t, *got, 2)
	assert.Equal(t, "Configuration Error", (*got)[1].header)
	assert.Contains(t, (*got)[1].body, "bad position")

	*now = now.Add(5 * time.Second)
	n.NotifyConfigReloaded()
	assert.Len(t, *got, 3)
}

func TestInternalNotifier_Disabled(t *testing.T) {
	cfg := config.DefaultDaemonConfig()
	cfg.Behavior.InternalNotices = false
	n, got, _ := newTestNotifier(cfg)

	n.NotifyConfigReloaded()
	assert.Empty(t, *got)
}
