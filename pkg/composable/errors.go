package composable

import (
	"errors"
	"fmt"
)

// Sentinel errors for factory and singleton construction.
var (
	// ErrUnknownKey indicates a factory lookup for an unregistered key.
	ErrUnknownKey = errors.New("unknown construction key")

	// ErrNilConstructor indicates a constructor function was nil.
	ErrNilConstructor = errors.New("constructor cannot be nil")
)

// Sentinel errors for decorator chains.
var (
	// ErrMissingBase indicates a decorator was applied to a nil base entity.
	ErrMissingBase = errors.New("missing base entity")
)

// Sentinel errors for behavior slots.
var (
	// ErrUnknownSlot indicates a slot name that was not declared at construction.
	ErrUnknownSlot = errors.New("slot not declared")

	// ErrUnboundSlot indicates invoking a required slot with no behavior set.
	ErrUnboundSlot = errors.New("required slot has no behavior bound")

	// ErrNilBehavior indicates SetSlot was called with a nil behavior.
	ErrNilBehavior = errors.New("behavior cannot be nil")
)

// ConstructionError wraps a constructor failure with the key being built.
// The key remains retryable: a later construction attempt for the same key
// invokes the constructor again.
type ConstructionError struct {
	// Key is the construction key whose constructor failed.
	Key string
	// Err is the underlying error from the constructor.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// SlotError wraps a behavior-slot failure with entity and slot context.
type SlotError struct {
	// Entity is the description of the entity whose slot failed.
	Entity string
	// Slot is the slot name.
	Slot string
	// Op is the operation that failed ("set", "invoke").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SlotError) Error() string {
	return fmt.Sprintf("%s slot %q on %s: %v", e.Op, e.Slot, e.Entity, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SlotError) Unwrap() error {
	return e.Err
}
