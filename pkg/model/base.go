package model

import (
	"fmt"
	"slices"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Base carries what every entity kind shares: identifiers and tags.
type Base struct {
	uids *domain.UIDs
	Tags []string `mapstructure:"tags"`
}

// UIDs returns the live identifier map.
func (b *Base) UIDs() *domain.UIDs {
	if b.uids == nil {
		b.uids = domain.NewUIDs()
	}
	return b.uids
}

// AddUID sets the identifier for scope.
func (b *Base) AddUID(scope, id string) {
	b.UIDs().Set(scope, id)
}

// Skip returns no back-reference fields; kinds that have some override it.
func (b *Base) Skip() []string {
	return nil
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) attributes() *domain.Attributes {
	attrs := domain.NewAttributes()
	attrs.Set("uids", b.UIDs().Attributes())
	attrs.Set("tags", anyStrings(b.Tags))
	return attrs
}

type based interface {
	base() *Base
}

// build decodes attrs into a fresh *T.
func build[T any, P interface {
	*T
	domain.Record
}](attrs *domain.Attributes) (domain.Record, error) {
	out := P(new(T))
	if err := decode(attrs, out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(attrs *domain.Attributes, out any) error {
	raw := make(map[string]any, attrs.Len())
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		raw[pair.Key] = pair.Value
	}

	if b, ok := out.(based); ok {
		uids, err := uidsFrom(raw["uids"])
		if err != nil {
			return err
		}
		b.base().uids = uids
	}
	delete(raw, "uids")

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode attributes: %w", err)
	}
	return nil
}

// uidsFrom accepts the attribute form of UIDs as well as plain maps from decoders.
func uidsFrom(v any) (*domain.UIDs, error) {
	uids := domain.NewUIDs()
	switch t := v.(type) {
	case nil:
	case *domain.UIDs:
		uids = t.Clone()
	case *domain.Attributes:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			id, ok := pair.Value.(string)
			if !ok {
				return nil, fmt.Errorf("uid %q: expected string, got %T", pair.Key, pair.Value)
			}
			uids.Set(pair.Key, id)
		}
	case map[string]string:
		for _, k := range sortedKeys(t) {
			uids.Set(k, t[k])
		}
	case map[string]any:
		for _, k := range sortedKeys(t) {
			id, ok := t[k].(string)
			if !ok {
				return nil, fmt.Errorf("uid %q: expected string, got %T", k, t[k])
			}
			uids.Set(k, id)
		}
	default:
		return nil, fmt.Errorf("uids: unsupported type %T", v)
	}
	return uids, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// anyStrings exposes a string list as a generic sequence.
func anyStrings(in []string) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// addRef appends v to list unless the very same node is already there.
func addRef(list []any, v any) []any {
	for _, x := range list {
		if identity.Same(x, v) {
			return list
		}
	}
	return append(list, v)
}

// removeRef drops v from list.
func removeRef(list []any, v any) []any {
	return slices.DeleteFunc(list, func(x any) bool {
		return identity.Same(x, v)
	})
}
