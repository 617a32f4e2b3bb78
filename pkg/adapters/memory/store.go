package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/registry"
)

// Store implements ports.ListingStore in memory.
// Listings are kept encoded, so callers never share entities with the store.
// Safe for concurrent use.
type Store struct {
	reg  *registry.Registry
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store that rebuilds entities through reg.
func NewStore(reg *registry.Registry) *Store {
	return &Store{
		reg:  reg,
		data: make(map[string][]byte),
	}
}

// Save persists the listing in memory.
func (s *Store) Save(ctx context.Context, key string, listing []domain.Entity) error {
	data, err := codec.MarshalListing(listing, codec.JSON)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

// Load retrieves a fresh copy of the listing.
func (s *Store) Load(ctx context.Context, key string) ([]domain.Entity, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return codec.UnmarshalListing(data, codec.JSON, s.reg)
}

// Delete removes the listing.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
