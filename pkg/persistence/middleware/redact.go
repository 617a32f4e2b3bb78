package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/lineage/internal/identity"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/ports"
)

// Mask replaces redacted string values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ListingStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks, before saving, the attributes whose name matches one of
// the patterns, in every listed entity and in the records nested inside it, however
// deep in lists, tuples and mappings they sit.
//
// String values become Mask, lists are masked element-wise and anything else is
// cleared. Nil lists stay nil. Identifiers and type tags are never touched. Panics on
// an invalid pattern.
func NewRedactMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ListingStore) ports.ListingStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, key string, listing []domain.Entity) error {
	// Records are rebuilt, so the caller's listing stays as it was.
	masked := make([]domain.Entity, len(listing))
	for i, e := range listing {
		r, err := m.record(e)
		if err != nil {
			return fmt.Errorf("redacting %s: %w", e.Type(), err)
		}
		masked[i] = r.(domain.Entity)
	}
	return m.next.Save(ctx, key, masked)
}

func (m *redactMiddleware) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	return m.next.Load(ctx, key)
}

func (m *redactMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactMiddleware) matches(name string) bool {
	if name == "uids" || name == "type" {
		return false
	}
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func (m *redactMiddleware) record(r domain.Record) (domain.Record, error) {
	attrs := r.Attributes()
	for pair := attrs.Oldest(); pair != nil; pair = pair.Next() {
		if m.matches(pair.Key) {
			pair.Value = mask(pair.Value)
			continue
		}
		v, err := m.value(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
		pair.Value = v
	}
	return r.Build(attrs)
}

func (m *redactMiddleware) value(v any) (any, error) {
	switch t := v.(type) {
	case []any:
		if t == nil {
			return v, nil
		}
		return m.sequence(t)
	case domain.Tuple:
		if t == nil {
			return v, nil
		}
		out, err := m.sequence(t)
		return domain.Tuple(out), err
	case *domain.Attributes:
		if t == nil {
			return v, nil
		}
		out := domain.NewAttributes()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			y, err := m.value(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pair.Key, err)
			}
			out.Set(pair.Key, y)
		}
		return out, nil
	case *domain.Mapping:
		if t == nil {
			return v, nil
		}
		out := domain.NewMapping()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			k, err := m.value(pair.Key)
			if err != nil {
				return nil, err
			}
			y, err := m.value(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(k, y)
		}
		return out, nil
	case domain.Entity:
		// listed entities only hold links to each other
		return v, nil
	case domain.Record:
		if identity.IsNil(t) {
			return v, nil
		}
		return m.record(t)
	}
	return v, nil
}

func (m *redactMiddleware) sequence(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, x := range in {
		y, err := m.value(x)
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

func mask(v any) any {
	switch t := v.(type) {
	case string:
		if t == "" {
			return t
		}
		return Mask
	case []string:
		if t == nil {
			return t
		}
		out := make([]string, len(t))
		for i := range t {
			out[i] = Mask
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = mask(x)
		}
		return out
	}
	return nil
}
