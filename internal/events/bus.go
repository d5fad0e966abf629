// Package events provides the in-process section-changed signal.
package events

import "github.com/tuya/fastdata/internal/model"

// Handler receives section-changed signals.
type Handler func(ev model.SectionChanged)

// Bus is a synchronous publish/subscribe channel for SectionChanged.
// It is owned by the UI event loop and is not safe for concurrent use.
type Bus struct {
	nextID   int
	handlers []subscription
	// Re-entrant publishes are queued and drained by the outermost Publish
	// so subscribers always observe signals in emission order.
	dispatching bool
	queue       []model.SectionChanged
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every subscriber in subscription order.
func (b *Bus) Publish(ev model.SectionChanged) {
	b.queue = append(b.queue, ev)
	if b.dispatching {
		return
	}
	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		for _, s := range append([]subscription(nil), b.handlers...) {
			s.fn(next)
		}
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int { return len(b.handlers) }
