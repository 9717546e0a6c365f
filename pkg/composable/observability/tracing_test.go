package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("composable")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func findAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartNotifySpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx := context.Background()

	_, span := m.StartNotifySpan(ctx, "fighter", "slot.replaced")
	require.NotNil(t, span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "composable.notify", s.Name)

	publisher, ok := findAttr(s.Attributes, "publisher")
	require.True(t, ok)
	assert.Equal(t, "fighter", publisher.AsString())

	eventType, ok := findAttr(s.Attributes, "event.type")
	require.True(t, ok)
	assert.Equal(t, "slot.replaced", eventType.AsString())
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartNotifySpan(context.Background(), "fighter", "slot.replaced")
		m.EndSpanWithError(span, errors.New("2 subscribers failed"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "2 subscribers failed", spans[0].Status.Description)
		require.Len(t, spans[0].Events, 1, "error recorded as span event")
	})

	t.Run("records ok status", func(t *testing.T) {
		exporter.Reset()
		_, span := m.StartNotifySpan(context.Background(), "fighter", "slot.replaced")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("nil span is a no-op", func(t *testing.T) {
		m.EndSpanWithError(nil, errors.New("ignored"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx, span := m.StartNotifySpan(context.Background(), "fighter", "slot.replaced")
	m.AddSpanEvent(ctx, "subscriber.notified", attribute.String("subscription.id", "abc"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "subscriber.notified", spans[0].Events[0].Name)
}

func TestAddSpanEventNoSpanInContext(t *testing.T) {
	_, cleanup := setupTracingTest(t)
	defer cleanup()

	// Must not panic without a recording span in context.
	NewSpanManager().AddSpanEvent(context.Background(), "ignored")
}
