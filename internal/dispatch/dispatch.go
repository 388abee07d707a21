// Package dispatch serializes work onto a single UI-affine executor.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Errors returned by Post.
var (
	ErrClosed    = errors.New("dispatcher closed")
	ErrQueueFull = errors.New("dispatcher queue full")
)

// Dispatcher runs posted tasks in FIFO order on one executor.
type Dispatcher interface {
	Post(task func()) error
}

// Func adapts a function to a Dispatcher.
type Func func(task func()) error

// Post implements Dispatcher.
func (f Func) Post(task func()) error {
	return f(task)
}

// Inline runs every task immediately on the posting goroutine.
// Use it only where the caller is already the UI executor.
type Inline struct{}

// Post implements Dispatcher.
func (Inline) Post(task func()) error {
	task()
	return nil
}

// Loop is a Dispatcher backed by a single goroutine.
type Loop struct {
	logger *slog.Logger
	tasks  chan func()
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewLoop starts a Loop with room for size queued tasks.
func NewLoop(size int, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	if size < 1 {
		size = 1
	}

	l := &Loop{
		logger: logger,
		tasks:  make(chan func(), size),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues task. It never blocks.
func (l *Loop) Post(task func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrClosed
	}

	select {
	case l.tasks <- task:
		return nil
	default:
		return fmt.Errorf("%w (capacity %d)", ErrQueueFull, cap(l.tasks))
	}
}

// Close stops accepting tasks, drains the queue and waits for the loop to exit.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	close(l.tasks)
	l.mu.Unlock()

	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)
	for task := range l.tasks {
		l.exec(task)
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatched task panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	task()
}
