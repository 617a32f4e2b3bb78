// Package middleware decorates a ports.ListingStore with cross-cutting behavior.
package middleware

import "github.com/aretw0/lineage/pkg/ports"

// Middleware allows wrapping a ListingStore to add behavior.
type Middleware func(ports.ListingStore) ports.ListingStore

// Chain applies mws to store so that the first one is outermost.
func Chain(store ports.ListingStore, mws ...Middleware) ports.ListingStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
