package domain

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UIDs maps scopes to identifiers. Scopes compare case-insensitively;
// the first spelling of a scope and the insertion order are kept.
// The zero value is not usable, use NewUIDs. Methods are safe on a nil receiver for reads.
type UIDs struct {
	entries *orderedmap.OrderedMap[string, Link]
}

// NewUIDs returns an empty identifier map.
func NewUIDs() *UIDs {
	return &UIDs{entries: orderedmap.New[string, Link]()}
}

// Set records id under scope, replacing any id the scope already had.
func (u *UIDs) Set(scope, id string) {
	key := strings.ToLower(scope)
	if prev, ok := u.entries.Get(key); ok {
		scope = prev.Scope
	}
	u.entries.Set(key, Link{Scope: scope, ID: id})
}

// Get returns the id recorded under scope.
func (u *UIDs) Get(scope string) (string, bool) {
	if u == nil {
		return "", false
	}
	l, ok := u.entries.Get(strings.ToLower(scope))
	return l.ID, ok
}

// Scope returns the stored spelling of scope, or scope itself when absent.
func (u *UIDs) Scope(scope string) string {
	if u == nil {
		return scope
	}
	if l, ok := u.entries.Get(strings.ToLower(scope)); ok {
		return l.Scope
	}
	return scope
}

// Delete removes scope.
func (u *UIDs) Delete(scope string) {
	u.entries.Delete(strings.ToLower(scope))
}

// Len returns the number of scopes.
func (u *UIDs) Len() int {
	if u == nil {
		return 0
	}
	return u.entries.Len()
}

// Items returns every (scope, id) pair in insertion order.
func (u *UIDs) Items() []Link {
	if u == nil {
		return nil
	}
	items := make([]Link, 0, u.entries.Len())
	for pair := u.entries.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, pair.Value)
	}
	return items
}

// Keys returns every pair with its scope lowercased, as used for deduplication and lookup.
func (u *UIDs) Keys() []Link {
	items := u.Items()
	for i := range items {
		items[i] = items[i].Key()
	}
	return items
}

// Attributes returns the pairs as an ordered scope to id view.
func (u *UIDs) Attributes() *Attributes {
	attrs := NewAttributes()
	for _, l := range u.Items() {
		attrs.Set(l.Scope, l.ID)
	}
	return attrs
}

// Clone returns an independent copy.
func (u *UIDs) Clone() *UIDs {
	out := NewUIDs()
	for _, l := range u.Items() {
		out.Set(l.Scope, l.ID)
	}
	return out
}
