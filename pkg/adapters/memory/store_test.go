package memory

import (
	"context"
	"testing"

	"github.com/autograph-dev/autograph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunFlowStoreContract(t, New())
}

func TestMemoryStoreListIsSorted(t *testing.T) {
	ctx := context.Background()
	store := New()

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, store.Save(ctx, id, &ports.FlowRecord{ID: id}))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := &ports.FlowRecord{ID: "flow", Name: "original"}
	require.NoError(t, store.Save(ctx, "flow", rec))
	rec.Name = "mutated"

	loaded, err := store.Load(ctx, "flow")
	require.NoError(t, err)
	assert.Equal(t, "original", loaded.Name)
}

func TestMemoryStoreDeleteMissingIsNoop(t *testing.T) {
	store := New()
	assert.NoError(t, store.Delete(context.Background(), "never-saved"))
}
