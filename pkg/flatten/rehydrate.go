package flatten

import (
	"fmt"
	"strings"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/substitute"
)

// Indexer is a lookup that can also take new entities.
type Indexer interface {
	domain.Lookup
	Add(e domain.Entity)
}

// Rehydrate resolves a listing front to back: each element has its links replaced with
// the entities idx already holds, and is then added to idx so later elements can point
// at it. The resolved entities are returned in listing order. Links that cannot be
// resolved stay in place.
//
// Entities taken from idx are shared, not copied, so a listing rehydrates into a single
// connected graph.
func Rehydrate(listing []domain.Entity, idx Indexer) ([]domain.Entity, error) {
	out := make([]domain.Entity, 0, len(listing))
	for _, e := range listing {
		resolved, err := resolve(e, idx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", e.Type(), err)
		}
		re, ok := resolved.(domain.Entity)
		if !ok {
			return nil, fmt.Errorf("resolving %s produced %T", e.Type(), resolved)
		}
		idx.Add(re)
		out = append(out, re)
	}
	return out, nil
}

// resolve is substitute.Objects, except that entities already held by idx are kept
// as they are instead of being rebuilt.
func resolve(root domain.Entity, idx Indexer) (any, error) {
	applies := func(v any) bool {
		switch t := v.(type) {
		case domain.Link:
			return true
		case domain.Entity:
			return !identity.IsNil(v) && !identity.Same(v, root) && held(idx, t)
		}
		return false
	}
	sub := func(v any) (any, error) {
		if l, ok := v.(domain.Link); ok {
			if e, found := idx.Get(strings.ToLower(l.Scope), l.ID); found {
				return e, nil
			}
		}
		return v, nil
	}
	return substitute.Substitute(root, applies, sub)
}

func held(idx Indexer, e domain.Entity) bool {
	for _, k := range e.UIDs().Keys() {
		if got, ok := idx.Get(k.Scope, k.ID); ok && identity.Same(got, e) {
			return true
		}
	}
	return false
}
