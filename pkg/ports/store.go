package ports

import (
	"context"

	"github.com/aretw0/lineage/pkg/domain"
)

// ListingStore persists flattened listings under a key.
type ListingStore interface {
	// Save stores the listing under key, replacing any previous one.
	Save(ctx context.Context, key string, listing []domain.Entity) error

	// Load retrieves the listing stored under key.
	// Returns domain.ErrListingNotFound if there is none.
	Load(ctx context.Context, key string) ([]domain.Entity, error)

	// Delete removes the listing stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all stored listings.
	List(ctx context.Context) ([]string, error)
}
