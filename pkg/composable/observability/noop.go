package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordConstruction does nothing.
func (NoopMetrics) RecordConstruction(_ context.Context, _ string, _ bool, _ error) {}

// RecordNotification does nothing.
func (NoopMetrics) RecordNotification(_ context.Context, _ string, _, _ int, _ time.Duration) {}

// RecordSlotSwap does nothing.
func (NoopMetrics) RecordSlotSwap(_ context.Context, _, _ string) {}

// NoopSpans is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpans struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpans{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartNotifySpan returns the context unchanged and a no-op span.
func (NoopSpans) StartNotifySpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpans) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpans) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
