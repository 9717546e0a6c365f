package singleton

import "sync"

// Process-scoped provider and initialization guard.
var (
	globalProvider *Provider[any]
	globalOnce     sync.Once
)

// Global returns the process-scoped provider, creating it on first call.
// It lives until process teardown. Tests that need isolation should
// construct their own Provider, or call Reset between cases.
func Global() *Provider[any] {
	globalOnce.Do(func() {
		globalProvider = New[any]()
	})
	return globalProvider
}

// Get fetches or constructs a keyed instance from the process-scoped
// provider. See Provider.Get for the construction contract.
func Get(key string, ctor func() (any, error)) (any, error) {
	return Global().Get(key, ctor)
}

// Reset discards the process-scoped provider so the next Global call
// builds a fresh one. NOT safe for concurrent use; intended for test
// teardown only.
func Reset() {
	globalOnce = sync.Once{}
	globalProvider = nil
}
