package desktop

import (
	"log/slog"
	"slices"
	"sync"
)

// Hub is an in-process Source. Publish calls listeners synchronously in
// registration order; a panicking listener is logged and skipped.
type Hub struct {
	mu     sync.RWMutex
	logger *slog.Logger
	nextID uint64

	switched map[uint64]func(SwitchedEvent)
	moved    map[uint64]func(MovedEvent)
	pinned   map[uint64]func(PinnedEvent)
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:   logger,
		switched: make(map[uint64]func(SwitchedEvent)),
		moved:    make(map[uint64]func(MovedEvent)),
		pinned:   make(map[uint64]func(PinnedEvent)),
	}
}

type subscription struct {
	once    sync.Once
	release func()
}

func (s *subscription) Release() {
	s.once.Do(s.release)
}

// OnSwitched registers a desktop-switched listener.
func (h *Hub) OnSwitched(fn func(SwitchedEvent)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.allocID()
	h.switched[id] = fn
	return &subscription{release: func() { h.remove(func() { delete(h.switched, id) }) }}
}

// OnMoved registers a desktop-moved listener.
func (h *Hub) OnMoved(fn func(MovedEvent)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.allocID()
	h.moved[id] = fn
	return &subscription{release: func() { h.remove(func() { delete(h.moved, id) }) }}
}

// OnPinned registers a window-pinned listener.
func (h *Hub) OnPinned(fn func(PinnedEvent)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.allocID()
	h.pinned[id] = fn
	return &subscription{release: func() { h.remove(func() { delete(h.pinned, id) }) }}
}

// allocID returns a new listener ID. Caller must hold the lock.
func (h *Hub) allocID() uint64 {
	h.nextID++
	return h.nextID
}

func (h *Hub) remove(del func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	del()
}

// PublishSwitched delivers ev to every switched listener.
func (h *Hub) PublishSwitched(ev SwitchedEvent) {
	for _, fn := range snapshot(h, h.switched) {
		h.deliver("switched", func() { fn(ev) })
	}
}

// PublishMoved delivers ev to every moved listener.
func (h *Hub) PublishMoved(ev MovedEvent) {
	for _, fn := range snapshot(h, h.moved) {
		h.deliver("moved", func() { fn(ev) })
	}
}

// PublishPinned delivers ev to every pinned listener.
func (h *Hub) PublishPinned(ev PinnedEvent) {
	for _, fn := range snapshot(h, h.pinned) {
		h.deliver("pinned", func() { fn(ev) })
	}
}

// ListenerCount returns the number of registered listeners of all kinds.
func (h *Hub) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.switched) + len(h.moved) + len(h.pinned)
}

func (h *Hub) deliver(kind string, call func()) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("desktop event listener panicked", "event", kind, "panic", r)
		}
	}()
	call()
}

// snapshot copies listeners in registration order so they run without the lock held.
func snapshot[E any](h *Hub, m map[uint64]func(E)) []func(E) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(E), len(ids))
	for i, id := range ids {
		fns[i] = m[id]
	}
	return fns
}
