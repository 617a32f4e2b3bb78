package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/lineage/pkg/adapters/memory"
	"github.com/aretw0/lineage/pkg/model"
	"github.com/aretw0/lineage/pkg/ports"
	"github.com/aretw0/lineage/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ListingStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore(model.NewRegistry())
	tests.ListingStoreContractTest(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(model.NewRegistry())
	listing := tests.Listing(t)
	require.NoError(t, store.Save(ctx, "k", listing))

	listing[0].AddUID("late", "x")

	a, err := store.Load(ctx, "k")
	require.NoError(t, err)
	b, err := store.Load(ctx, "k")
	require.NoError(t, err)

	assert.NotSame(t, a[0], b[0])
	_, ok := a[0].UIDs().Get("late")
	assert.False(t, ok)
}
