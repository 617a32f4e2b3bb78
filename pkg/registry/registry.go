// Package registry maps type tags to record prototypes so generic attribute
// documents can be rebuilt into concrete kinds.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/lineage/pkg/domain"
)

// Registry manages the known record kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]domain.Record
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]domain.Record),
	}
}

// Register adds prototypes under their type tag.
// If a kind with the same tag exists, it is overwritten.
func (r *Registry) Register(protos ...domain.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range protos {
		r.kinds[p.Type()] = p
	}
}

// Lookup returns the prototype registered for typ.
func (r *Registry) Lookup(typ string) (domain.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.kinds[typ]
	return p, ok
}

// Build rebuilds a record of kind typ from attrs.
// Returns domain.ErrUnknownKind if typ is not registered.
func (r *Registry) Build(typ string, attrs *domain.Attributes) (domain.Record, error) {
	proto, ok := r.Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, typ)
	}
	rec, err := proto.Build(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", typ, err)
	}
	return rec, nil
}

// Kinds returns the registered type tags, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
