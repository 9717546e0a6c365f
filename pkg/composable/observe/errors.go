package observe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilHandler is returned by Subscribe when the handler is nil.
var ErrNilHandler = errors.New("handler cannot be nil")

// SubscriberError records one handler failure during a notification pass.
type SubscriberError struct {
	// SubscriptionID identifies the failing subscription.
	SubscriptionID string
	// Event is the event being delivered.
	Event Event
	// Err is the error the handler returned.
	Err error
}

// Error implements the error interface.
func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber %s: event %s: %v", e.SubscriptionID, e.Event.Type, e.Err)
}

// Unwrap returns the handler's error for errors.Is/As support.
func (e *SubscriberError) Unwrap() error {
	return e.Err
}

// NotifyError aggregates handler failures from a single NotifyAll pass.
// Delivery to the remaining subscribers always completes; NotifyError
// reports which handlers failed, not a partial delivery.
type NotifyError struct {
	// Publisher is the publisher key that was notified.
	Publisher string
	// Failures holds one entry per failing subscriber, in delivery order.
	Failures []*SubscriberError
}

// Error implements the error interface.
func (e *NotifyError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("notify %q: %v", e.Publisher, e.Failures[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "notify %q: %d subscribers failed:", e.Publisher, len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n\t")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap returns the individual failures for errors.Is/As support.
func (e *NotifyError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
