// Package registry provides a generic thread-safe registry and a keyed
// factory built on it.
//
// Registry maps comparable keys to values under a sync.RWMutex and is
// tuned for read-heavy use. Factory layers construction semantics on top:
// constructors are registered by opaque string key, and callers obtain
// either fresh values (Create) or process-shared ones (CreateShared)
// without ever seeing a concrete constructor.
//
//	factory := registry.NewFactory[composable.Entity]()
//	factory.Register("pizza.margherita", func() (composable.Entity, error) {
//	    return composable.NewEntity("Margherita", 100, nil), nil
//	})
//
//	fresh, err := factory.Create("pizza.margherita")   // new value per call
//	one, err := factory.CreateShared("pizza.margherita") // same value every call
//
// Re-registering a key overwrites the previous constructor silently; the
// last writer wins. This is deliberate so tests can override production
// constructors.
package registry
