package substitute

import (
	"strings"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// Links replaces every entity reachable from root, other than root itself, with a
// domain.Link. The preferred scope is used when an entity has it; otherwise its first
// scope. An entity without any UID fails the whole call with domain.ErrMissingIdentifier.
func Links(root any, preferred string) (any, error) {
	applies := func(v any) bool {
		_, ok := v.(domain.Entity)
		return ok && !identity.IsNil(v) && !identity.Same(v, root)
	}
	sub := func(v any) (any, error) {
		return domain.LinkTo(v.(domain.Entity), preferred)
	}
	return Substitute(root, applies, sub)
}

// Objects replaces every domain.Link reachable from root with the entity lookup holds
// for it. Links lookup cannot resolve are left in place; that is not an error.
func Objects(root any, lookup domain.Lookup) (any, error) {
	applies := func(v any) bool {
		_, ok := v.(domain.Link)
		return ok
	}
	sub := func(v any) (any, error) {
		l := v.(domain.Link)
		if e, ok := lookup.Get(strings.ToLower(l.Scope), l.ID); ok {
			return e, nil
		}
		return l, nil
	}
	return Substitute(root, applies, sub)
}
