package composable

import "context"

// Behavior is a named, replaceable unit of algorithmic behavior held by an
// entity. Implementations are pure strategy: they carry no shared state and
// may be swapped into a slot at any time.
//
// Example:
//
//	var tornadoKick = composable.BehaviorFunc(func(ctx context.Context, args ...any) (any, error) {
//	    return "tornado kick", nil
//	})
type Behavior interface {
	// Execute runs the behavior. Arguments and result are opaque to the
	// runtime; the entity passes them through unmodified.
	Execute(ctx context.Context, args ...any) (any, error)
}

// BehaviorFunc adapts a function to the Behavior interface.
type BehaviorFunc func(ctx context.Context, args ...any) (any, error)

// Execute implements Behavior.
func (f BehaviorFunc) Execute(ctx context.Context, args ...any) (any, error) {
	return f(ctx, args...)
}

// SlotPolicy controls what happens when a slot is invoked before any
// SetSlot call has bound a behavior to it.
type SlotPolicy int

const (
	// SlotDefaulted slots run the default behavior supplied at construction
	// until a SetSlot call replaces it.
	SlotDefaulted SlotPolicy = iota

	// SlotRequired slots have no default; invoking one before SetSlot
	// fails with ErrUnboundSlot.
	SlotRequired
)

// String returns the policy name.
func (p SlotPolicy) String() string {
	switch p {
	case SlotDefaulted:
		return "defaulted"
	case SlotRequired:
		return "required"
	default:
		return "unknown"
	}
}

// SlotSpec declares a behavior slot at entity construction time.
// The slot set of an entity is fixed once constructed; only the behavior
// bound to each slot can change afterwards.
type SlotSpec struct {
	// Name identifies the slot. Opaque to the runtime.
	Name string

	// Policy selects defaulted or required semantics.
	Policy SlotPolicy

	// Default is the initial behavior for SlotDefaulted slots.
	// Ignored for SlotRequired slots.
	Default Behavior
}

// Defaulted builds a SlotSpec with an initial behavior.
func Defaulted(name string, def Behavior) SlotSpec {
	return SlotSpec{Name: name, Policy: SlotDefaulted, Default: def}
}

// Required builds a SlotSpec that must be bound before first invoke.
func Required(name string) SlotSpec {
	return SlotSpec{Name: name, Policy: SlotRequired}
}
