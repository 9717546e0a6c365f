package singleton

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/randalmurphal/composable/pkg/composable"
	"github.com/randalmurphal/composable/pkg/composable/observability"
)

// Provider guarantees at most one instance per key is ever constructed,
// even under concurrent first access. All methods are safe for concurrent
// use.
//
// Get uses double-checked acquisition: a lock-free read of an atomically
// published reference, then a per-key mutex with a mandatory re-check
// before construction. Losing callers block only while the winning
// constructor runs; once an instance is published, no Get for that key
// takes a lock.
type Provider[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]

	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// entry holds the per-key lock and the published instance.
// value is written exactly once per successful construction and only
// while mu is held; readers load it without the lock.
type entry[T any] struct {
	mu    sync.Mutex
	value atomic.Pointer[T]
}

// Option configures a provider.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// WithLogger sets a structured logger for construction outcomes.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics recorder for construction outcomes.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New creates an empty provider.
func New[T any](opts ...Option) *Provider[T] {
	o := options{metrics: observability.NoopMetrics{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Provider[T]{
		entries: make(map[string]*entry[T]),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Get returns the instance for key, constructing it with ctor on first
// access. The constructor runs at most once per key across all callers;
// every call observes the same instance.
//
// If ctor returns an error, nothing is published: the error is wrapped in
// a ConstructionError and a later Get for the same key invokes its
// constructor again. Concurrent failing attempts each receive the error
// from their own construction attempt.
func (p *Provider[T]) Get(key string, ctor func() (T, error)) (T, error) {
	var zero T
	if ctor == nil {
		return zero, composable.ErrNilConstructor
	}

	e := p.entry(key)

	// Fast path: already published.
	if v := e.value.Load(); v != nil {
		return *v, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Another caller may have won the race while we waited.
	if v := e.value.Load(); v != nil {
		return *v, nil
	}

	v, err := ctor()
	p.metrics.RecordConstruction(context.Background(), key, true, err)
	if err != nil {
		observability.LogConstructionError(p.logger, key, err)
		return zero, &composable.ConstructionError{Key: key, Err: err}
	}
	observability.LogConstruction(p.logger, key, true)
	e.value.Store(&v)
	return v, nil
}

// Has returns true if an instance has been published for key.
func (p *Provider[T]) Has(key string) bool {
	p.mu.Lock()
	e, ok := p.entries[key]
	p.mu.Unlock()
	return ok && e.value.Load() != nil
}

// Len returns the number of published instances.
func (p *Provider[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.entries {
		if e.value.Load() != nil {
			n++
		}
	}
	return n
}

// Discard drops the published instance for key, if any. The next Get
// constructs a fresh instance. Intended for test teardown; concurrent
// Get callers holding the old instance keep it.
func (p *Provider[T]) Discard(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, key)
}

// entry returns the per-key entry, creating it on first use.
// The outer map lock is held only for the map access, never during
// construction, so different keys never block each other.
func (p *Provider[T]) entry(key string) *entry[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[key]
	if !ok {
		e = &entry[T]{}
		p.entries[key] = e
	}
	return e
}
