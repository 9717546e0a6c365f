package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/composable/pkg/composable"
	"github.com/randalmurphal/composable/pkg/composable/observability"
	"github.com/randalmurphal/composable/pkg/composable/singleton"
)

// Constructor builds a new value of type T.
type Constructor[T any] func() (T, error)

// Factory creates values by key without exposing concrete constructors to
// callers. Create returns a fresh value per call; CreateShared returns
// the same at-most-once constructed value per key, backed by a
// singleton.Provider.
//
// All methods are safe for concurrent use. Registering a key already
// registered replaces its constructor (last writer wins); registrations
// and lookups of unrelated keys never interfere.
type Factory[T any] struct {
	constructors *Registry[string, Constructor[T]]
	shared       *singleton.Provider[T]

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// FactoryOption configures a factory.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// WithLogger sets a structured logger for construction outcomes, shared
// and fresh alike. Default: no logging.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(o *factoryOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics recorder for construction outcomes.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) FactoryOption {
	return func(o *factoryOptions) {
		o.metrics = m
	}
}

// NewFactory creates an empty factory. The logger and metrics recorder
// are handed down to the shared-instance provider, so shared
// constructions report through the same sinks as fresh ones.
func NewFactory[T any](opts ...FactoryOption) *Factory[T] {
	o := factoryOptions{metrics: observability.NoopMetrics{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Factory[T]{
		constructors: New[string, Constructor[T]](),
		shared:       singleton.New[T](singleton.WithLogger(o.logger), singleton.WithMetrics(o.metrics)),
		logger:       o.logger,
		metrics:      o.metrics,
	}
}

// Register binds a constructor to a key. A nil constructor returns
// composable.ErrNilConstructor; otherwise registration cannot fail.
func (f *Factory[T]) Register(key string, ctor Constructor[T]) error {
	if ctor == nil {
		return fmt.Errorf("register %q: %w", key, composable.ErrNilConstructor)
	}
	f.constructors.Register(key, ctor)
	return nil
}

// Has returns true if a constructor is registered for key.
func (f *Factory[T]) Has(key string) bool {
	return f.constructors.Has(key)
}

// Keys returns all registered keys. The order is not guaranteed.
func (f *Factory[T]) Keys() []string {
	return f.constructors.Keys()
}

// Create constructs a fresh value for key. An unregistered key fails with
// composable.ErrUnknownKey without invoking any constructor; a
// constructor error is wrapped in composable.ConstructionError.
func (f *Factory[T]) Create(key string) (T, error) {
	var zero T
	ctor, ok := f.constructors.Get(key)
	if !ok {
		return zero, fmt.Errorf("create %q: %w", key, composable.ErrUnknownKey)
	}
	v, err := ctor()
	f.metrics.RecordConstruction(context.Background(), key, false, err)
	if err != nil {
		observability.LogConstructionError(f.logger, key, err)
		return zero, &composable.ConstructionError{Key: key, Err: err}
	}
	observability.LogConstruction(f.logger, key, false)
	return v, nil
}

// CreateShared returns the shared instance for key, constructing it on
// first call via the registered constructor. Construction follows the
// singleton provider's contract: at most one successful construction per
// key, failed attempts leave the key retryable.
//
// The constructor is resolved per call, so a Register after a failed
// CreateShared takes effect on the retry.
func (f *Factory[T]) CreateShared(key string) (T, error) {
	var zero T
	ctor, ok := f.constructors.Get(key)
	if !ok {
		return zero, fmt.Errorf("create shared %q: %w", key, composable.ErrUnknownKey)
	}
	return f.shared.Get(key, ctor)
}
