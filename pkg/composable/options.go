package composable

import (
	"log/slog"

	"github.com/randalmurphal/composable/pkg/composable/observability"
	"github.com/randalmurphal/composable/pkg/composable/observe"
)

// EntityOption configures entity construction.
type EntityOption func(*BaseEntity)

// WithHub attaches an observer hub. After every completed SetSlot call the
// entity publishes a slot.replaced event to the hub, using the entity's
// description as the publisher key.
func WithHub(hub *observe.Hub) EntityOption {
	return func(e *BaseEntity) {
		e.hub = hub
	}
}

// WithLogger sets a structured logger for slot swaps and notification
// failures. Default: no logging.
func WithLogger(logger *slog.Logger) EntityOption {
	return func(e *BaseEntity) {
		e.logger = logger
	}
}

// WithMetrics sets a metrics recorder for completed slot swaps.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) EntityOption {
	return func(e *BaseEntity) {
		e.metrics = m
	}
}
