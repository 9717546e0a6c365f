package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a state-change notification delivered to subscribers.
// Events are immutable once created.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// Type names what happened (e.g., "slot.replaced").
	Type string `json:"type"`

	// Source is the publisher key the event was emitted under.
	Source string `json:"source"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Payload carries event data, opaque to the hub.
	Payload any `json:"payload,omitempty"`
}

// NewEvent creates an event with a generated ID and the current time.
func NewEvent(eventType, source string, payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Handler receives notifications for a subscription.
// A handler error is isolated to its own subscription: it is collected
// into the NotifyAll result and never prevents delivery to others.
type Handler interface {
	Notify(ctx context.Context, evt Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt Event) error

// Notify implements Handler.
func (f HandlerFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}
