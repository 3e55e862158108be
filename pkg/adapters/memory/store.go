// Package memory provides an in-process FlowStore, the default for tests
// and single-binary deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/ports"
)

// Store implements ports.FlowStore with a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	records map[string]ports.FlowRecord
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string]ports.FlowRecord)}
}

// Save stores a copy of the record, so later caller mutations don't leak
// into the store.
func (s *Store) Save(ctx context.Context, id string, rec *ports.FlowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = *rec
	return nil
}

// Load returns a copy of the stored record.
func (s *Store) Load(ctx context.Context, id string) (*ports.FlowRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	out := rec
	return &out, nil
}

// Delete removes a record. Deleting a missing ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// List returns the stored flow IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
