package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/desknotify/internal/dispatch"
)

// drainMsg asks the model to run queued UI tasks.
type drainMsg struct{}

// teaDispatcher queues tasks and runs them inside Model.Update so window
// changes happen on the program's event loop. Program.Send blocks until the
// loop receives the message, so it is always called from a new goroutine;
// the queue keeps tasks in FIFO order regardless of delivery order.
type teaDispatcher struct {
	mu     sync.Mutex
	queue  []func()
	send   func(tea.Msg)
	closed bool
}

func (d *teaDispatcher) Post(task func()) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return dispatch.ErrClosed
	}
	d.queue = append(d.queue, task)
	send := d.send
	d.mu.Unlock()

	if send != nil {
		go send(drainMsg{})
	}
	return nil
}

func (d *teaDispatcher) setSend(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.send = send
}

func (d *teaDispatcher) drain() {
	d.mu.Lock()
	tasks := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}

func (d *teaDispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.queue = nil
}
