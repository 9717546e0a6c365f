// Package singleton provides a concurrency-safe lazy singleton provider.
//
// A Provider maps opaque string keys to at-most-once constructed
// instances. The first Get for a key runs the supplied constructor;
// concurrent first-time callers wait for the winner and then share its
// instance, and every later Get reads the published reference without
// locking.
//
// # Double-Checked Acquisition
//
// Get checks the atomically published reference before taking any lock,
// then re-checks after acquiring the per-key mutex. The re-check is what
// prevents duplicate construction when two callers race on first access;
// the atomic publish is what prevents another goroutine from observing a
// partially initialized instance.
//
// # Failure
//
// A constructor error publishes nothing. The key is not poisoned: a later
// Get runs its constructor again. Errors are wrapped in
// composable.ConstructionError.
//
// # Process-Scoped Provider
//
// Global returns a lazily created provider that lives until process
// teardown, for callers that want classic singleton semantics without
// threading a Provider through their call graph:
//
//	cfg, err := singleton.Get("config", func() (any, error) {
//	    return loadConfig()
//	})
//
// Tests should prefer an isolated New provider per case, or call Reset.
package singleton
