package planstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freightworks/loadplan/core/model"
)

// MemoryStore keeps load plans in memory. It is the default backend and the
// one used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]LoadPlan
	now  func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]LoadPlan{}, now: time.Now}
}

// Save stores a deep snapshot of the layout under a fresh id.
func (s *MemoryStore) Save(_ context.Context, name, description string, layout model.TrailerLayout, deliveries []model.DeliveryItem) (LoadPlan, error) {
	lay, del := snapshot(layout, deliveries)
	plan := LoadPlan{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   s.now().UTC(),
		Layout:      lay,
		Deliveries:  del,
	}
	s.mu.Lock()
	s.data[plan.ID] = plan
	s.mu.Unlock()
	return plan, nil
}

// Load returns the plan stored under id.
func (s *MemoryStore) Load(_ context.Context, id string) (LoadPlan, error) {
	s.mu.RLock()
	plan, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return LoadPlan{}, model.UnknownItemError{Op: "load plan", ID: id}
	}
	lay, del := snapshot(plan.Layout, plan.Deliveries)
	plan.Layout, plan.Deliveries = lay, del
	return plan, nil
}

// List returns all stored plans, newest first.
func (s *MemoryStore) List(_ context.Context) ([]LoadPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]LoadPlan, 0, len(s.data))
	for _, p := range s.data {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }
