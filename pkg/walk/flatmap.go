package walk

import (
	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// FlatMap walks root and concatenates fn over every entity found as a child of a
// visited node. A child's own results come before fn(child), so children precede
// parents. Structural descent happens at most once per node, but fn is called on
// every edge into an entity, including edges back into already-visited ones; callers
// that need uniqueness must deduplicate in fn. The root is passed to fn only when an
// edge leads back into it.
//
// With unidirectional set, attributes listed in an entity's Skip are not walked, so
// only one direction of each bidirectional relationship is followed.
func FlatMap[T any](root any, fn func(domain.Entity) []T, unidirectional bool) []T {
	c := &collector[T]{fn: fn, unidirectional: unidirectional, seen: identity.Seen{}}
	c.walk(root)
	return c.out
}

type collector[T any] struct {
	fn             func(domain.Entity) []T
	unidirectional bool
	seen           identity.Seen
	out            []T
}

func (c *collector[T]) walk(node any) {
	if c.seen.Mark(node) {
		return
	}
	eachChild(node, c.unidirectional, func(child any) {
		c.walk(child)
		if e, ok := child.(domain.Entity); ok && !identity.IsNil(child) {
			c.out = append(c.out, c.fn(e)...)
		}
	})
}
