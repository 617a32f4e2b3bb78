package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/domain"
	"github.com/aretw0/lineage/pkg/flatten"
	"github.com/aretw0/lineage/pkg/model"
	"github.com/aretw0/lineage/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Listing builds a small flattened history for store tests.
func Listing(t *testing.T) []domain.Entity {
	t.Helper()
	spec := &model.ProcessSpec{Object: model.Object{Name: "mix"}}
	run := &model.ProcessRun{Object: model.Object{Name: "mix #1"}, Spec: spec}
	out := &model.MaterialRun{Object: model.Object{Name: "batter"}}
	out.SetProcess(run)
	m := &model.MeasurementRun{Object: model.Object{Name: "viscosity"}}
	m.SetMaterial(out)

	n := 0
	listing, err := flatten.Flatten(m, flatten.WithGenerator(func() string {
		n++
		return fmt.Sprintf("uid-%d", n)
	}))
	require.NoError(t, err)
	return listing
}

// AssertSameListing compares two listings through their encoded documents.
func AssertSameListing(t *testing.T, want, got []domain.Entity) {
	t.Helper()
	require.Len(t, got, len(want))
	wantData, err := codec.MarshalListing(want, codec.JSON)
	require.NoError(t, err)
	gotData, err := codec.MarshalListing(got, codec.JSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantData), string(gotData))
}

// ListingStoreContractTest is a reusable test suite that verifies if an adapter
// complies with ports.ListingStore.
func ListingStoreContractTest(t *testing.T, store ports.ListingStore) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		listing := Listing(t)
		require.NoError(t, store.Save(ctx, key, listing))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		AssertSameListing(t, listing, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		listing := Listing(t)[:1]
		require.NoError(t, store.Save(ctx, key, listing))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		AssertSameListing(t, listing, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, Listing(t)))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		require.NoError(t, store.Save(ctx, k1, Listing(t)))
		require.NoError(t, store.Save(ctx, k2, Listing(t)))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
