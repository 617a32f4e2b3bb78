package walk

import (
	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// Foreach applies fn once to every distinct entity reachable from root, root included.
// With applyFirst, fn runs on an entity before its children are walked; otherwise after.
// Back-reference fields are walked. The first error returned by fn stops the walk.
func Foreach(root any, fn func(domain.Entity) error, applyFirst bool) error {
	v := &visitor{fn: fn, applyFirst: applyFirst, seen: identity.Seen{}}
	v.visit(root)
	return v.err
}

type visitor struct {
	fn         func(domain.Entity) error
	applyFirst bool
	seen       identity.Seen
	err        error
}

func (v *visitor) visit(node any) {
	if v.err != nil || v.seen.Mark(node) {
		return
	}
	e, isEntity := node.(domain.Entity)
	isEntity = isEntity && !identity.IsNil(node)

	if isEntity && v.applyFirst {
		v.apply(e)
	}
	eachChild(node, false, v.visit)
	if isEntity && !v.applyFirst {
		v.apply(e)
	}
}

func (v *visitor) apply(e domain.Entity) {
	if v.err != nil {
		return
	}
	v.err = v.fn(e)
}
