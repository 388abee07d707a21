package display

import (
	"sync/atomic"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/desknotify/internal/dispatch"
)

// IdleDispatcher runs tasks on the GTK main loop via glib.IdleAdd.
type IdleDispatcher struct {
	closed atomic.Bool
}

// Post schedules task on the main loop.
func (d *IdleDispatcher) Post(task func()) error {
	if d.closed.Load() {
		return dispatch.ErrClosed
	}
	glib.IdleAdd(task)
	return nil
}

// Close rejects further tasks. Tasks already queued still run.
func (d *IdleDispatcher) Close() {
	d.closed.Store(true)
}
