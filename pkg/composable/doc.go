/*
Package composable provides a small pattern-composition runtime: entities
with runtime-replaceable behavior slots, keyed factories with shared
(singleton) construction, wrap-only decorator chains over computed
properties, and an observer hub for state-change notification.

# Overview

The library is organized as a root package plus one subpackage per
concern:

  - composable (this package): Entity, BaseEntity, behavior slots
  - composable/singleton: concurrency-safe lazy singleton provider
  - composable/registry: keyed constructor registry and factory
  - composable/decorate: decorator chains over Entity
  - composable/observe: publish/subscribe hub with snapshot delivery
  - composable/config: declarative entity wiring from YAML/JSON
  - composable/observability: structured logging, metrics, tracing

# Basic Usage

Build an entity with behavior slots, swap a behavior at runtime, and
invoke it:

	fighter := composable.NewEntity("fighter", 0, []composable.SlotSpec{
	    composable.Defaulted("kick", basicKick),
	    composable.Required("jump"),
	})

	result, err := fighter.Invoke(ctx, "kick") // runs basicKick

	if err := fighter.SetSlot("kick", tornadoKick); err != nil {
	    log.Fatal(err)
	}
	result, err = fighter.Invoke(ctx, "kick") // runs tornadoKick

Invoking a required slot before binding it fails with ErrUnboundSlot.
SetSlot publishes the new behavior with a single atomic reference swap, so
concurrent Invoke calls observe either the previous or the new behavior
and never block.

# Decoration

Wrap an entity to augment its description and cost:

	pizza := composable.NewEntity("Margherita", 100, nil)
	wrapped, err := decorate.Stack(pizza,
	    decorate.Contribution{Delta: 40, Fragment: "Fresh Tomato"},
	    decorate.Contribution{Delta: 70, Fragment: "Paneer"},
	)
	wrapped.Cost()     // 210
	wrapped.Describe() // "Margherita, Fresh Tomato, Paneer"

# Notification

Attach an entity to a hub to broadcast slot swaps:

	hub := observe.NewHub()
	sub, err := hub.Subscribe("fighter", handler)
	if err != nil {
	    log.Fatal(err)
	}
	defer sub.Unsubscribe()

	fighter := composable.NewEntity("fighter", 0, specs, composable.WithHub(hub))
	fighter.SetSlot("kick", tornadoKick) // handler receives slot.replaced
*/
package composable
