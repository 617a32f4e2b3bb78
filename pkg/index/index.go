// Package index keeps entities addressable by any of their identifiers.
package index

import (
	"strings"
	"sync"

	"github.com/aretw0/lineage/pkg/domain"
)

// Index maps (scope, id) pairs to entities. Scopes are stored lowercased.
// It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	byKey    map[domain.Link]domain.Entity
	entities []domain.Entity
}

// New creates an empty index.
func New() *Index {
	return &Index{
		byKey: make(map[domain.Link]domain.Entity),
	}
}

// Add registers e under every identifier it carries. A later entity claiming a pair
// already taken replaces the earlier one for that pair.
func (x *Index) Add(e domain.Entity) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, k := range e.UIDs().Keys() {
		x.byKey[k] = e
	}
	x.entities = append(x.entities, e)
}

// Get returns the entity registered for (scope, id).
func (x *Index) Get(scope, id string) (domain.Entity, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	e, ok := x.byKey[domain.Link{Scope: strings.ToLower(scope), ID: id}]
	return e, ok
}

// Len returns the number of entities added.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entities)
}

// Entities returns the entities in the order they were added.
func (x *Index) Entities() []domain.Entity {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]domain.Entity, len(x.entities))
	copy(out, x.entities)
	return out
}
