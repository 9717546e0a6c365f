// Package decorate composes entities with ordered chains of wrappers.
//
// Each Decorator wraps exactly one inner entity and contributes a fixed
// cost delta and description fragment. The chain is wrap-only: nodes are
// immutable once built, and undecorating means keeping a reference to the
// inner node instead of the outer one.
//
// # Combination Rules
//
// Cost is the sum of the base cost and every delta in the chain, so the
// total is independent of wrap order. Descriptions are combined
// inner-first: the base description, then each fragment in application
// order, joined with ", ".
//
//	pizza := composable.NewEntity("Margherita", 100, nil)
//	withTomato, _ := decorate.Wrap(pizza, decorate.Contribution{Delta: 40, Fragment: "Fresh Tomato"})
//	withPaneer, _ := decorate.Wrap(withTomato, decorate.Contribution{Delta: 70, Fragment: "Paneer"})
//
//	withPaneer.Cost()     // 210
//	withPaneer.Describe() // "Margherita, Fresh Tomato, Paneer"
//
// Wrapping a nil base fails with composable.ErrMissingBase; no degenerate
// chain is ever constructed.
package decorate
