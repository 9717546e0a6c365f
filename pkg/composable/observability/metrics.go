package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records composition runtime metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordConstruction records a singleton or factory construction
	// attempt and whether it failed.
	RecordConstruction(ctx context.Context, key string, shared bool, err error)

	// RecordNotification records a notification pass: how many
	// subscribers were in the snapshot, how many handlers failed, and
	// how long delivery took.
	RecordNotification(ctx context.Context, publisher string, subscribers, failures int, duration time.Duration)

	// RecordSlotSwap records a completed behavior slot replacement.
	RecordSlotSwap(ctx context.Context, entity, slot string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	constructions      metric.Int64Counter
	constructionErrors metric.Int64Counter
	notifications      metric.Int64Counter
	notifyLatency      metric.Float64Histogram
	subscriberFailures metric.Int64Counter
	slotSwaps          metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("composable")

	constructions, err := meter.Int64Counter("composable.constructions",
		metric.WithDescription("Number of construction attempts"),
	)
	if err != nil {
		return nil, err
	}

	constructionErrors, err := meter.Int64Counter("composable.construction.errors",
		metric.WithDescription("Number of failed constructions"),
	)
	if err != nil {
		return nil, err
	}

	notifications, err := meter.Int64Counter("composable.notifications",
		metric.WithDescription("Number of notification passes"),
	)
	if err != nil {
		return nil, err
	}

	notifyLatency, err := meter.Float64Histogram("composable.notify.latency_ms",
		metric.WithDescription("Notification pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	subscriberFailures, err := meter.Int64Counter("composable.subscriber.failures",
		metric.WithDescription("Number of failed subscriber handlers"),
	)
	if err != nil {
		return nil, err
	}

	slotSwaps, err := meter.Int64Counter("composable.slot.swaps",
		metric.WithDescription("Number of behavior slot replacements"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		constructions:      constructions,
		constructionErrors: constructionErrors,
		notifications:      notifications,
		notifyLatency:      notifyLatency,
		subscriberFailures: subscriberFailures,
		slotSwaps:          slotSwaps,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordConstruction records a construction attempt.
func (m *otelMetrics) RecordConstruction(ctx context.Context, key string, shared bool, err error) {
	attrs := metric.WithAttributes(
		attribute.String("key", key),
		attribute.Bool("shared", shared),
	)
	m.constructions.Add(ctx, 1, attrs)
	if err != nil {
		m.constructionErrors.Add(ctx, 1, attrs)
	}
}

// RecordNotification records a notification pass.
func (m *otelMetrics) RecordNotification(ctx context.Context, publisher string, subscribers, failures int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("publisher", publisher),
	)
	m.notifications.Add(ctx, 1, attrs)
	m.notifyLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if failures > 0 {
		m.subscriberFailures.Add(ctx, int64(failures), attrs)
	}
}

// RecordSlotSwap records a completed slot replacement.
func (m *otelMetrics) RecordSlotSwap(ctx context.Context, entity, slot string) {
	m.slotSwaps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("slot", slot),
	))
}
