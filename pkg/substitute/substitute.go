// Package substitute rewrites object graphs by replacing matching nodes.
//
// Substitute is the generic engine; Links and Objects specialise it to turn
// entity pointers into domain.Link values and back.
package substitute

import (
	"fmt"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
)

// Substitute returns a structurally equivalent copy of root in which every node for
// which applies returns true has been replaced by sub(node). The replacement is itself
// substituted again, so chains resolve fully.
//
// applies is checked before descent: a matched node's own structure is never walked,
// only its replacement is. Nodes with an identity are memoised by original and by final
// value, so a node reachable through several paths is substituted once and the result is
// shared. Values without identity are recomputed on every occurrence.
//
// Descent covers []any, domain.Tuple, *domain.Mapping (keys and values),
// *domain.Attributes, map[string]any and domain.Record, which is rebuilt through Build.
// Everything else is returned unchanged.
func Substitute(root any, applies func(any) bool, sub func(any) (any, error)) (any, error) {
	s := &engine{
		applies: applies,
		sub:     sub,
		visited: make(map[identity.Key]memo),
		active:  identity.Seen{},
	}
	return s.substitute(root)
}

// memo keeps the original node alive next to its result, so its address cannot be
// reused by a later allocation during the same call.
type memo struct {
	node, out any
}

type engine struct {
	applies func(any) bool
	sub     func(any) (any, error)
	visited map[identity.Key]memo
	// active holds the nodes whose descent is in progress.
	active identity.Seen
}

func (s *engine) substitute(node any) (any, error) {
	key, hasID := identity.Of(node)
	if hasID {
		if done, ok := s.visited[key]; ok {
			return done.out, nil
		}
		if _, ok := s.active[key]; ok {
			// Cycle through nodes that never match: leave the back edge as is.
			return node, nil
		}
	}

	var out any
	var err error
	if s.applies(node) {
		var replacement any
		replacement, err = s.sub(node)
		if err != nil {
			return nil, err
		}
		if hasID {
			s.visited[key] = memo{node, replacement}
		}
		out = replacement
		if !identity.Equal(replacement, node) {
			out, err = s.substitute(replacement)
		}
	} else {
		if hasID {
			s.active[key] = node
		}
		out, err = s.descend(node)
		if hasID {
			delete(s.active, key)
		}
	}
	if err != nil {
		return nil, err
	}

	if hasID {
		s.visited[key] = memo{node, out}
	}
	if k, ok := identity.Of(out); ok {
		s.visited[k] = memo{out, out}
	}
	return out, nil
}

func (s *engine) descend(node any) (any, error) {
	if identity.IsNil(node) {
		return node, nil
	}
	switch t := node.(type) {
	case []any:
		return s.sequence(t)
	case domain.Tuple:
		out, err := s.sequence(t)
		return domain.Tuple(out), err
	case *domain.Mapping:
		out := domain.NewMapping()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			k, err := s.substitute(pair.Key)
			if err != nil {
				return nil, err
			}
			v, err := s.substitute(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil
	case *domain.Attributes:
		return s.attributes(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			v, err := s.substitute(x)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case domain.Record:
		attrs, err := s.attributes(t.Attributes())
		if err != nil {
			return nil, err
		}
		rebuilt, err := t.Build(attrs)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild %s: %w", t.Type(), err)
		}
		return rebuilt, nil
	}
	return node, nil
}

func (s *engine) sequence(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, x := range in {
		v, err := s.substitute(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *engine) attributes(in *domain.Attributes) (*domain.Attributes, error) {
	out := domain.NewAttributes()
	for pair := in.Oldest(); pair != nil; pair = pair.Next() {
		v, err := s.substitute(pair.Value)
		if err != nil {
			return nil, err
		}
		out.Set(pair.Key, v)
	}
	return out, nil
}
