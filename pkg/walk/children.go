package walk

import (
	"slices"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// eachChild calls fn for every direct child of v, in a deterministic order.
// Record attributes named in Skip are left out when unidirectional is set.
func eachChild(v any, unidirectional bool, fn func(child any)) {
	if identity.IsNil(v) {
		return
	}
	switch t := v.(type) {
	case []any:
		for _, x := range t {
			fn(x)
		}
	case domain.Tuple:
		for _, x := range t {
			fn(x)
		}
	case *domain.Mapping:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			fn(pair.Key)
		}
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			fn(pair.Value)
		}
	case *domain.Attributes:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			fn(pair.Value)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fn(t[k])
		}
	case domain.Record:
		var skip []string
		if e, ok := t.(domain.Entity); ok && unidirectional {
			skip = e.Skip()
		}
		for pair := t.Attributes().Oldest(); pair != nil; pair = pair.Next() {
			if slices.Contains(skip, pair.Key) {
				continue
			}
			fn(pair.Value)
		}
	}
}
