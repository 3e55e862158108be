package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	ports.RunFlowStoreContract(t, New(mr.Addr(), "", 0))
}

func TestRedisStoreTTLExpiresRecords(t *testing.T) {
	mr := miniredis.RunT(t)
	store := New(mr.Addr(), "", 0, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ephemeral", &ports.FlowRecord{ID: "ephemeral"}))

	_, err := store.Load(ctx, "ephemeral")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "ephemeral")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}

func TestRedisStoreCustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	store := New(mr.Addr(), "", 0, WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "flow-1", &ports.FlowRecord{ID: "flow-1", Name: "Porch"}))

	assert.True(t, mr.Exists("custom:flow-1"))

	loaded, err := store.Load(ctx, "flow-1")
	require.NoError(t, err)
	assert.Equal(t, "Porch", loaded.Name)
}

func TestRedisStoreDeleteRemovesIndexEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := New(mr.Addr(), "", 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "flow-1", &ports.FlowRecord{ID: "flow-1"}))
	require.NoError(t, store.Delete(ctx, "flow-1"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "flow-1")
}
