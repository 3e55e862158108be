package ports

import (
	"context"
	"time"

	"github.com/autograph-dev/autograph/pkg/domain"
)

// FlowRecord is what the host persists per flow: the editor's serialized
// graph plus the latest compilation result, enough to re-open the flow and
// to hand rules to the execution engine.
type FlowRecord struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name,omitempty"`
	SerializedGraph string                    `json:"serialized_graph,omitempty"`
	Result          *domain.CompilationResult `json:"result,omitempty"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// FlowStore persists flow records for editor round trips.
type FlowStore interface {
	// Save stores the record under the given flow ID, replacing any
	// previous version.
	Save(ctx context.Context, id string, rec *FlowRecord) error

	// Load retrieves the record for a flow ID.
	// Returns domain.ErrFlowNotFound if no record exists.
	Load(ctx context.Context, id string) (*FlowRecord, error)

	// Delete removes the record for a flow ID.
	Delete(ctx context.Context, id string) error

	// List returns the stored flow IDs.
	List(ctx context.Context) ([]string, error)
}
