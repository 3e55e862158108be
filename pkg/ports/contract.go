package ports

import (
	"context"
	"testing"
	"time"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFlowStoreContract verifies that a FlowStore implementation adheres to
// the interface contract. Adapter tests call this with a fresh store.
func RunFlowStoreContract(t *testing.T, store FlowStore) {
	ctx := context.Background()
	flowID := "contract-test-flow-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := &FlowRecord{
			ID:              flowID,
			Name:            "Porch light",
			SerializedGraph: `{"nodes":{}}`,
			Result: &domain.CompilationResult{
				Automations: []domain.Automation{{
					ID:      "rule-1",
					Name:    "Porch light: Node comes online → Send notification",
					Enabled: true,
					Trigger: domain.Trigger{Type: domain.TriggerNodeOnline},
					Actions: []domain.Action{{Type: domain.ActionNotify}},
				}},
			},
			UpdatedAt: time.Now().UTC(),
		}

		err := store.Save(ctx, flowID, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, flowID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Name, loaded.Name)
		assert.Equal(t, rec.SerializedGraph, loaded.SerializedGraph)
		require.NotNil(t, loaded.Result)
		require.Len(t, loaded.Result.Automations, 1)
		assert.Equal(t, domain.TriggerNodeOnline, loaded.Result.Automations[0].Trigger.Type)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, flowID, &FlowRecord{ID: flowID, Name: "temp"})
		require.NoError(t, err)

		err = store.Delete(ctx, flowID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound, "Load after Delete should return ErrFlowNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := flowID + "-1"
		id2 := flowID + "-2"
		_ = store.Save(ctx, id1, &FlowRecord{ID: id1})
		_ = store.Save(ctx, id2, &FlowRecord{ID: id2})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
