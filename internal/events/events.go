package events

import "sync"

// Kind identifies a class of session lifecycle event.
type Kind string

const (
	// SessionExpired is published by the transport when the server
	// rejects a previously accepted credential. Subscribers should
	// return the user to the sign-in entry point.
	SessionExpired Kind = "session.expired"

	// SignedIn is published after a login transition completes.
	SignedIn Kind = "session.signed_in"

	// SignedOut is published after an explicit logout.
	SignedOut Kind = "session.signed_out"
)

// Event is a session lifecycle notification delivered to subscribers.
type Event struct {
	Kind    Kind
	Message string
}

// Handler processes a single event. Handlers run synchronously on the
// publishing goroutine, so a forced sign-out is observed by every
// subscriber before the publisher continues.
type Handler func(Event)

// Bus is an in-process publish/subscribe fan-out with a stable API.
type Bus struct {
	mu       sync.Mutex
	handlers []Handler
}

// NewBus constructs an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscriber before returning.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
