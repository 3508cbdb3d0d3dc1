package notification

import (
	"context"
	"sync"
)

// Notifier publishes events for external delivery. Implementations must be
// safe for concurrent use and must not block the caller beyond enqueueing.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// Noop discards events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

// Recorder captures events in memory for test assertions.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event{}, r.events...)
}

// ByType filters recorded events.
func (r *Recorder) ByType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
