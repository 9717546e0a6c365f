package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumValue extracts the total of an Int64 sum metric.
func sumValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Int64 sum data")
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)
}

func TestRecordConstruction(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordConstruction(ctx, "pizza.margherita", true, nil)
	m.RecordConstruction(ctx, "pizza.margherita", true, errors.New("boom"))

	rm := collectMetrics(t, reader)

	constructions := findMetric(rm, "composable.constructions")
	require.NotNil(t, constructions)
	assert.Equal(t, int64(2), sumValue(t, constructions))

	failures := findMetric(rm, "composable.construction.errors")
	require.NotNil(t, failures)
	assert.Equal(t, int64(1), sumValue(t, failures))
}

func TestRecordNotification(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordNotification(ctx, "fighter", 3, 0, 5*time.Millisecond)
	m.RecordNotification(ctx, "fighter", 3, 2, 7*time.Millisecond)

	rm := collectMetrics(t, reader)

	notifications := findMetric(rm, "composable.notifications")
	require.NotNil(t, notifications)
	assert.Equal(t, int64(2), sumValue(t, notifications))

	subFailures := findMetric(rm, "composable.subscriber.failures")
	require.NotNil(t, subFailures)
	assert.Equal(t, int64(2), sumValue(t, subFailures))

	latency := findMetric(rm, "composable.notify.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestRecordSlotSwap(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSlotSwap(ctx, "fighter", "kick")
	m.RecordSlotSwap(ctx, "fighter", "jump")

	rm := collectMetrics(t, reader)

	swaps := findMetric(rm, "composable.slot.swaps")
	require.NotNil(t, swaps)
	assert.Equal(t, int64(2), sumValue(t, swaps))
}
