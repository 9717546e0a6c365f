package decorate

import (
	"fmt"

	"github.com/randalmurphal/composable/pkg/composable"
)

// Contribution is what one decorator adds to the chain: a cost delta and
// a description fragment.
type Contribution struct {
	// Delta is added to the wrapped entity's cost. Cost combination is a
	// plain sum, so wrap order never changes the total.
	Delta int64

	// Fragment is appended to the wrapped entity's description.
	Fragment string
}

// Decorator wraps exactly one inner entity and contributes a fixed cost
// delta and description fragment. A chain of decorators is a singly
// linked sequence terminating at a base entity.
//
// Decorators are immutable once built: the inner reference and the
// contribution never change, and concurrent Describe and Cost calls need
// no synchronization. "Removing" a decoration means discarding the outer
// node and continuing with Unwrap's result.
type Decorator struct {
	inner composable.Entity
	contr Contribution
}

// Compile-time interface check.
var _ composable.Entity = (*Decorator)(nil)

// Wrap builds a decorator around base. A nil base fails with
// composable.ErrMissingBase and constructs no node.
func Wrap(base composable.Entity, c Contribution) (*Decorator, error) {
	if base == nil {
		return nil, fmt.Errorf("wrap %q: %w", c.Fragment, composable.ErrMissingBase)
	}
	return &Decorator{inner: base, contr: c}, nil
}

// Stack wraps base with each contribution in argument order, so the last
// contribution becomes the outermost node.
func Stack(base composable.Entity, contribs ...Contribution) (composable.Entity, error) {
	entity := base
	for _, c := range contribs {
		node, err := Wrap(entity, c)
		if err != nil {
			return nil, err
		}
		entity = node
	}
	if entity == nil {
		return nil, composable.ErrMissingBase
	}
	return entity, nil
}

// Describe combines the chain's description fragments, inner first: the
// base entity's description, then each wrapper's fragment in the order
// the wrappers were applied, joined with ", ".
func (d *Decorator) Describe() string {
	if d.contr.Fragment == "" {
		return d.inner.Describe()
	}
	return d.inner.Describe() + ", " + d.contr.Fragment
}

// Cost returns the wrapped entity's cost plus this node's delta. The sum
// is commutative: the total for a set of contributions is the same in
// every wrap order.
func (d *Decorator) Cost() int64 {
	return d.inner.Cost() + d.contr.Delta
}

// Contribution returns this node's contribution.
func (d *Decorator) Contribution() Contribution {
	return d.contr
}

// Unwrap returns the wrapped entity.
func (d *Decorator) Unwrap() composable.Entity {
	return d.inner
}

// Base walks the chain to its terminal entity.
func Base(e composable.Entity) composable.Entity {
	for {
		d, ok := e.(*Decorator)
		if !ok {
			return e
		}
		e = d.inner
	}
}

// Depth returns the number of decorator nodes above the base entity.
func Depth(e composable.Entity) int {
	n := 0
	for {
		d, ok := e.(*Decorator)
		if !ok {
			return n
		}
		n++
		e = d.inner
	}
}
