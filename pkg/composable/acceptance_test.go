package composable_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/composable/pkg/composable"
	"github.com/randalmurphal/composable/pkg/composable/decorate"
	"github.com/randalmurphal/composable/pkg/composable/observe"
	"github.com/randalmurphal/composable/pkg/composable/registry"
)

// TestComposedEntityLifecycle runs the full flow a client goes through:
// obtain an entity from the factory (shared construction), wrap it in a
// decorator chain, swap a behavior slot at runtime, and observe the
// change through the hub.
func TestComposedEntityLifecycle(t *testing.T) {
	hub := observe.NewHub()

	var constructions atomic.Int32
	factory := registry.NewFactory[*composable.BaseEntity]()
	require.NoError(t, factory.Register("fighter", func() (*composable.BaseEntity, error) {
		constructions.Add(1)
		return composable.NewEntity("fighter", 0, []composable.SlotSpec{
			composable.Defaulted("kick", composable.BehaviorFunc(func(ctx context.Context, args ...any) (any, error) {
				return "basic kick", nil
			})),
			composable.Required("jump"),
		}, composable.WithHub(hub)), nil
	}))

	// Shared construction: both callers get the same entity.
	fighter, err := factory.CreateShared("fighter")
	require.NoError(t, err)
	again, err := factory.CreateShared("fighter")
	require.NoError(t, err)
	assert.Same(t, fighter, again)
	assert.Equal(t, int32(1), constructions.Load())

	// Watch for slot swaps.
	var swaps []string
	sub, err := hub.Subscribe("fighter", observe.HandlerFunc(func(ctx context.Context, evt observe.Event) error {
		change, ok := evt.Payload.(composable.SlotChanged)
		require.True(t, ok)
		swaps = append(swaps, change.Slot)
		return nil
	}))
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// Swap behaviors at runtime; the hub reports each completed swap.
	require.NoError(t, fighter.SetSlot("kick", composable.BehaviorFunc(func(ctx context.Context, args ...any) (any, error) {
		return "tornado kick", nil
	})))
	require.NoError(t, fighter.SetSlot("jump", composable.BehaviorFunc(func(ctx context.Context, args ...any) (any, error) {
		return "high jump", nil
	})))
	assert.Equal(t, []string{"kick", "jump"}, swaps)

	result, err := fighter.Invoke(context.Background(), "kick")
	require.NoError(t, err)
	assert.Equal(t, "tornado kick", result)

	// Decorate the same entity; the chain reads through to the base.
	geared, err := decorate.Stack(fighter,
		decorate.Contribution{Delta: 40, Fragment: "Steel Gauntlets"},
		decorate.Contribution{Delta: 70, Fragment: "Winged Boots"},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(110), geared.Cost())
	assert.Equal(t, "fighter, Steel Gauntlets, Winged Boots", geared.Describe())
	assert.Same(t, fighter, decorate.Base(geared))

	// The base keeps its behavior under the decorations.
	result, err = decorate.Base(geared).(*composable.BaseEntity).Invoke(context.Background(), "jump")
	require.NoError(t, err)
	assert.Equal(t, "high jump", result)
}
