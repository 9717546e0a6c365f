package observe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/composable/pkg/composable/observability"
)

// Hub maintains a set of subscribers per publisher and delivers
// notifications to a snapshot of that set. All methods are safe for
// concurrent use.
//
// The subscriber set is mutated only under the hub mutex; NotifyAll
// copies the set under that mutex and invokes handlers outside it, so a
// slow or failing subscriber never blocks concurrent Subscribe or
// Unsubscribe calls.
type Hub struct {
	mu         sync.Mutex
	publishers map[string]*publisher

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// publisher tracks one publisher's subscriptions. order preserves
// subscription order for deterministic delivery.
type publisher struct {
	subs  map[string]*Subscription
	order []string
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id        string
	publisher string
	handler   Handler
	hub       *Hub

	// dead is set before the subscription is removed from the set.
	// deliverMu is held around every handler invocation; Unsubscribe
	// acquires it after setting dead, so it cannot return while the
	// handler runs, and the handler never runs again afterwards.
	dead      atomic.Bool
	deliverMu sync.Mutex
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Publisher returns the publisher key the subscription is attached to.
func (s *Subscription) Publisher() string {
	return s.publisher
}

// HubOption configures a hub.
type HubOption func(*Hub)

// WithLogger sets a structured logger for notification passes.
// Default: no logging.
func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithMetrics sets a metrics recorder for notification passes.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) HubOption {
	return func(h *Hub) {
		h.metrics = m
	}
}

// WithSpans sets a span manager wrapping each notification pass.
// Default: observability.NoopSpans.
func WithSpans(s observability.SpanManager) HubOption {
	return func(h *Hub) {
		h.spans = s
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		publishers: make(map[string]*publisher),
		metrics:    observability.NoopMetrics{},
		spans:      observability.NoopSpans{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a handler for a publisher key and returns its
// handle. The subscriber receives every NotifyAll pass for that publisher
// that snapshots after this call returns; a pass already in flight does
// not include it. A nil handler is rejected with ErrNilHandler.
func (h *Hub) Subscribe(publisherKey string, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("subscribe %q: %w", publisherKey, ErrNilHandler)
	}

	sub := &Subscription{
		id:        uuid.New().String(),
		publisher: publisherKey,
		handler:   handler,
		hub:       h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.publishers[publisherKey]
	if !ok {
		p = &publisher{subs: make(map[string]*Subscription)}
		h.publishers[publisherKey] = p
	}
	p.subs[sub.id] = sub
	p.order = append(p.order, sub.id)
	return sub, nil
}

// Unsubscribe removes the subscription from its publisher's set. Once it
// returns, the handler is never invoked again: if a notification pass is
// mid-delivery to this subscriber, Unsubscribe waits for that invocation
// to finish.
//
// Calling Unsubscribe from inside the subscription's own handler would
// wait on itself; do not do that. Unsubscribing twice is a no-op.
func (s *Subscription) Unsubscribe() {
	if s.dead.Swap(true) {
		return
	}

	h := s.hub
	h.mu.Lock()
	if p, ok := h.publishers[s.publisher]; ok {
		delete(p.subs, s.id)
		for i, id := range p.order {
			if id == s.id {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
		if len(p.subs) == 0 {
			delete(h.publishers, s.publisher)
		}
	}
	h.mu.Unlock()

	// Wait out any in-flight delivery to this subscriber.
	s.deliverMu.Lock()
	s.deliverMu.Unlock()
}

// Subscribers returns the number of active subscriptions for a publisher.
func (h *Hub) Subscribers(publisherKey string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.publishers[publisherKey]
	if !ok {
		return 0
	}
	return len(p.subs)
}

// NotifyAll delivers evt to a snapshot of the publisher's subscribers, in
// subscription order. Subscribers added after the snapshot miss this pass
// and receive the next one.
//
// A handler error never aborts the pass: delivery continues to the
// remaining subscribers and the failures come back aggregated in a
// *NotifyError. A nil return means every snapshotted subscriber that was
// still active received the event without error.
func (h *Hub) NotifyAll(ctx context.Context, publisherKey string, evt Event) error {
	h.mu.Lock()
	var snapshot []*Subscription
	if p, ok := h.publishers[publisherKey]; ok {
		snapshot = make([]*Subscription, 0, len(p.order))
		for _, id := range p.order {
			snapshot = append(snapshot, p.subs[id])
		}
	}
	h.mu.Unlock()

	ctx, span := h.spans.StartNotifySpan(ctx, publisherKey, evt.Type)
	logger := observability.EnrichLogger(h.logger, publisherKey)
	observability.LogNotifyStart(logger, evt.Type, len(snapshot))
	start := time.Now()

	var failures []*SubscriberError
	for _, sub := range snapshot {
		if err := sub.deliver(ctx, evt); err != nil {
			h.spans.AddSpanEvent(ctx, "subscriber failed",
				attribute.String("subscription.id", sub.id),
			)
			failures = append(failures, &SubscriberError{
				SubscriptionID: sub.id,
				Event:          evt,
				Err:            err,
			})
		}
	}

	h.metrics.RecordNotification(ctx, publisherKey, len(snapshot), len(failures), time.Since(start))
	if len(failures) > 0 {
		err := &NotifyError{Publisher: publisherKey, Failures: failures}
		observability.LogNotifyError(logger, err)
		h.spans.EndSpanWithError(span, err)
		return err
	}
	observability.LogNotifyComplete(logger, evt.Type, len(snapshot))
	h.spans.EndSpanWithError(span, nil)
	return nil
}

// deliver invokes the handler unless the subscription died since the
// snapshot. The delivery mutex is what lets Unsubscribe wait for an
// in-flight invocation.
func (s *Subscription) deliver(ctx context.Context, evt Event) error {
	if s.dead.Load() {
		return nil
	}
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.dead.Load() {
		return nil
	}
	return s.handler.Notify(ctx, evt)
}
