// Package jobtracker defines the boundary to the external job-tracking
// collaborator that receives delivery status callbacks.
package jobtracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/freightworks/loadplan/core/model"
)

// Tracker receives delivery status updates. Implementations are expected to
// be fire-and-forget from the engine's point of view: a failure is reported
// to the caller but never rolls back the in-memory state change.
type Tracker interface {
	ReportStatus(ctx context.Context, jobID string, status model.DeliveryStatus) error
	Close() error
}

// MockTracker records reported statuses for tests.
type MockTracker struct {
	mu       sync.Mutex
	Reported map[string]model.DeliveryStatus
	FailIDs  map[string]bool
}

// NewMockTracker creates an empty MockTracker.
func NewMockTracker() *MockTracker {
	return &MockTracker{
		Reported: make(map[string]model.DeliveryStatus),
		FailIDs:  make(map[string]bool),
	}
}

// ReportStatus records the update or fails if the job id is marked to fail.
func (m *MockTracker) ReportStatus(_ context.Context, jobID string, status model.DeliveryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[jobID] {
		return fmt.Errorf("report failed")
	}
	m.Reported[jobID] = status
	return nil
}

// Close is a no-op.
func (m *MockTracker) Close() error { return nil }

// Last returns the last reported status for the job.
func (m *MockTracker) Last(jobID string) (model.DeliveryStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.Reported[jobID]
	return st, ok
}
