package composable

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/randalmurphal/composable/pkg/composable/observability"
	"github.com/randalmurphal/composable/pkg/composable/observe"
)

// Entity is the base object being decorated and strategized.
// It exposes a textual description and a numeric cost; decorator chains
// combine both by traversing the chain down to the base entity.
type Entity interface {
	// Describe returns the entity's description.
	Describe() string

	// Cost returns the entity's cost.
	Cost() int64
}

// SlotChanged is the payload published to the hub when SetSlot completes.
type SlotChanged struct {
	// Entity is the description of the entity whose slot changed.
	Entity string `json:"entity"`
	// Slot is the name of the replaced slot.
	Slot string `json:"slot"`
}

// EventSlotReplaced is the event type published after a completed slot swap.
const EventSlotReplaced = "slot.replaced"

// slot holds one replaceable behavior reference.
// The pointer swap is the only synchronization between SetSlot and Invoke:
// Invoke observes either the previous or the new behavior, never a torn
// reference, and never blocks on a concurrent SetSlot.
type slot struct {
	policy   SlotPolicy
	behavior atomic.Pointer[Behavior]
}

// BaseEntity is a host object with a fixed description, cost, and a set of
// named behavior slots declared at construction. All methods are safe for
// concurrent use.
type BaseEntity struct {
	description string
	cost        int64
	slots       map[string]*slot

	hub     *observe.Hub
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// Compile-time interface check.
var _ Entity = (*BaseEntity)(nil)

// NewEntity creates an entity with the given description, cost, and slot
// declarations. The slot set is immutable after construction; SetSlot on a
// name not declared here fails with ErrUnknownSlot.
func NewEntity(description string, cost int64, specs []SlotSpec, opts ...EntityOption) *BaseEntity {
	e := &BaseEntity{
		description: description,
		cost:        cost,
		slots:       make(map[string]*slot, len(specs)),
		metrics:     observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, spec := range specs {
		s := &slot{policy: spec.Policy}
		if spec.Policy == SlotDefaulted && spec.Default != nil {
			def := spec.Default
			s.behavior.Store(&def)
		}
		e.slots[spec.Name] = s
	}
	return e
}

// Describe returns the entity's description.
func (e *BaseEntity) Describe() string {
	return e.description
}

// Cost returns the entity's cost.
func (e *BaseEntity) Cost() int64 {
	return e.cost
}

// HasSlot returns true if the slot was declared at construction.
func (e *BaseEntity) HasSlot(name string) bool {
	_, ok := e.slots[name]
	return ok
}

// Slots returns the declared slot names. The order is not guaranteed.
func (e *BaseEntity) Slots() []string {
	names := make([]string, 0, len(e.slots))
	for name := range e.slots {
		names = append(names, name)
	}
	return names
}

// SlotPolicy returns the declared policy for a slot and whether the slot
// exists.
func (e *BaseEntity) SlotPolicy(name string) (SlotPolicy, bool) {
	s, ok := e.slots[name]
	if !ok {
		return 0, false
	}
	return s.policy, true
}

// SetSlot atomically replaces the behavior bound to a declared slot.
// Once SetSlot returns, every subsequent Invoke on the slot observes the
// new behavior until a later completed SetSlot call.
//
// If the entity is attached to a hub (see WithHub), a slot.replaced event
// is published after the swap; subscriber failures are logged, not
// surfaced, since the swap itself already completed.
func (e *BaseEntity) SetSlot(name string, b Behavior) error {
	if b == nil {
		return &SlotError{Entity: e.description, Slot: name, Op: "set", Err: ErrNilBehavior}
	}
	s, ok := e.slots[name]
	if !ok {
		return &SlotError{Entity: e.description, Slot: name, Op: "set", Err: ErrUnknownSlot}
	}
	s.behavior.Store(&b)

	observability.LogSlotSwap(e.logger, e.description, name)
	e.metrics.RecordSlotSwap(context.Background(), e.description, name)
	if e.hub != nil {
		evt := observe.NewEvent(EventSlotReplaced, e.description, SlotChanged{
			Entity: e.description,
			Slot:   name,
		})
		if err := e.hub.NotifyAll(context.Background(), e.description, evt); err != nil {
			observability.LogNotifyError(e.logger, err)
		}
	}
	return nil
}

// Invoke runs the behavior currently bound to the slot.
//
// For a SlotRequired slot with no behavior bound yet, Invoke fails with
// ErrUnboundSlot. For a SlotDefaulted slot the default supplied at
// construction runs until the first completed SetSlot.
func (e *BaseEntity) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	s, ok := e.slots[name]
	if !ok {
		return nil, &SlotError{Entity: e.description, Slot: name, Op: "invoke", Err: ErrUnknownSlot}
	}
	b := s.behavior.Load()
	if b == nil {
		return nil, &SlotError{Entity: e.description, Slot: name, Op: "invoke", Err: ErrUnboundSlot}
	}
	return (*b).Execute(ctx, args...)
}
