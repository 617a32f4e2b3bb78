package codec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/registry"
)

// ErrCycle is returned when encoding a graph that refers back to itself through live
// pointers. Flatten it first.
var ErrCycle = errors.New("cycle in document")

// Encode converts v into a document.
func Encode(v any) (any, error) {
	e := &encoder{active: identity.Seen{}}
	return e.encode(v)
}

type encoder struct {
	active identity.Seen
}

func (e *encoder) encode(v any) (any, error) {
	if identity.IsNil(v) {
		return nil, nil
	}
	switch t := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return t, nil
	case domain.Link:
		obj := domain.NewAttributes()
		obj.Set("type", domain.LinkType)
		obj.Set("scope", t.Scope)
		obj.Set("id", t.ID)
		return obj, nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	}

	if e.active.Mark(v) {
		return nil, fmt.Errorf("%w: %T", ErrCycle, v)
	}
	defer func() {
		if k, ok := identity.Of(v); ok {
			delete(e.active, k)
		}
	}()

	switch t := v.(type) {
	case []any:
		return e.sequence(t)
	case domain.Tuple:
		return e.sequence(t)
	case *domain.Attributes:
		return e.object(domain.NewAttributes(), t)
	case *domain.Mapping:
		obj := domain.NewAttributes()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			k, ok := pair.Key.(string)
			if !ok {
				return nil, fmt.Errorf("cannot encode mapping key of type %T", pair.Key)
			}
			val, err := e.encode(pair.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(k, val)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := domain.NewAttributes()
		for _, k := range keys {
			val, err := e.encode(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, val)
		}
		return obj, nil
	case domain.Record:
		obj := domain.NewAttributes()
		obj.Set("type", t.Type())
		return e.object(obj, t.Attributes())
	}
	return nil, fmt.Errorf("cannot encode %T", v)
}

func (e *encoder) sequence(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, x := range in {
		v, err := e.encode(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *encoder) object(obj, attrs *domain.Attributes) (*domain.Attributes, error) {
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		v, err := e.encode(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
		obj.Set(pair.Key, v)
	}
	return obj, nil
}

// Decode rebuilds records and links from a document. Objects carrying a "type" tag
// are built through reg; other objects stay *domain.Attributes.
func Decode(doc any, reg *registry.Registry) (any, error) {
	switch t := doc.(type) {
	case *domain.Attributes:
		return decodeObject(t, reg)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := domain.NewAttributes()
		for _, k := range keys {
			obj.Set(k, t[k])
		}
		return decodeObject(obj, reg)
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			v, err := Decode(x, reg)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}
	return doc, nil
}

func decodeObject(obj *domain.Attributes, reg *registry.Registry) (any, error) {
	raw, tagged := obj.Get("type")
	typ, isString := raw.(string)
	if tagged && !isString {
		return nil, fmt.Errorf("type tag must be a string, got %T", raw)
	}

	if typ == domain.LinkType {
		scope, _ := obj.Get("scope")
		id, _ := obj.Get("id")
		l := domain.Link{}
		var ok1, ok2 bool
		l.Scope, ok1 = scope.(string)
		l.ID, ok2 = id.(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("malformed %s: scope and id must be strings", domain.LinkType)
		}
		return l, nil
	}

	attrs := domain.NewAttributes()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if tagged && pair.Key == "type" {
			continue
		}
		v, err := Decode(pair.Value, reg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
		attrs.Set(pair.Key, v)
	}
	if !tagged {
		return attrs, nil
	}
	return reg.Build(typ, attrs)
}
