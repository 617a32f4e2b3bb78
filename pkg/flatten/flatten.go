package flatten

import (
	"fmt"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/order"
	"github.com/aretw0/lineage/pkg/substitute"
	"github.com/aretw0/lineage/pkg/walk"
)

// AssignUIDs gives every entity reachable from root that has no identifier at all a
// fresh one under scope. It returns how many entities were changed.
func AssignUIDs(root any, scope string, generate func() string) (int, error) {
	n := 0
	err := walk.Foreach(root, func(e domain.Entity) error {
		if e.UIDs().Len() > 0 {
			return nil
		}
		e.AddUID(scope, generate())
		n++
		return nil
	}, false)
	return n, err
}

// Flatten returns every entity reachable from root, excluding root, exactly once, with
// references between them replaced by links and dependencies listed before dependents.
// Back-reference fields are not followed.
func Flatten(root any, opts ...Option) ([]domain.Entity, error) {
	o := newOptions(opts)
	listing, err := flatten(root, o)
	if err != nil {
		o.recorder.Failed()
		return nil, err
	}
	o.recorder.Flattened(len(listing))
	return listing, nil
}

func flatten(root any, o *options) ([]domain.Entity, error) {
	assigned, err := AssignUIDs(root, o.scope, o.generate)
	if err != nil {
		return nil, fmt.Errorf("failed to assign uids: %w", err)
	}
	o.recorder.UIDsAssigned(assigned)
	o.logger.Debug("uids assigned", "count", assigned, "scope", o.scope)

	known := make(map[domain.Link]struct{})
	if e, ok := root.(domain.Entity); ok {
		for _, k := range e.UIDs().Keys() {
			known[k] = struct{}{}
		}
	}
	collected := walk.FlatMap(root, func(e domain.Entity) []domain.Entity {
		keys := e.UIDs().Keys()
		fresh := true
		for _, k := range keys {
			if _, ok := known[k]; ok {
				fresh = false
				break
			}
		}
		for _, k := range keys {
			known[k] = struct{}{}
		}
		if fresh {
			return []domain.Entity{e}
		}
		return nil
	}, true)
	o.logger.Debug("entities collected", "count", len(collected))

	listing := make([]domain.Entity, 0, len(collected))
	for _, e := range collected {
		linked, err := substitute.Links(e, o.preferred)
		if err != nil {
			return nil, fmt.Errorf("failed to link %s: %w", e.Type(), err)
		}
		le, ok := linked.(domain.Entity)
		if !ok {
			return nil, fmt.Errorf("linking %s produced %T", e.Type(), linked)
		}
		listing = append(listing, le)
	}

	if err := order.Sort(listing); err != nil {
		return nil, err
	}
	o.logger.Debug("listing built", "size", len(listing))
	return listing, nil
}
