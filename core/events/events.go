// Package events defines the typed events published on the planning event
// bus. Subscribers include the metrics sinks and the status propagation to
// the external job tracker.
package events

import (
	"time"

	"github.com/freightworks/loadplan/core/capacity"
	"github.com/freightworks/loadplan/core/model"
)

// AllocationEvent is published after cargo items were placed into a layout.
type AllocationEvent struct {
	LayoutID string
	Placed   int
	Skipped  int
	Summary  capacity.Summary
}

// SequenceEvent is published after the delivery order of a load map changed.
type SequenceEvent struct {
	LoadMapID string
	Op        string // "optimize" or "swap"
	Items     int
}

// StatusEvent is published after a delivery status change, for propagation to
// the external job tracker.
type StatusEvent struct {
	JobID  string
	Status model.DeliveryStatus
	Time   time.Time
}

// PlacementEvent is published when an operator accepts, rejects or moves a
// consignment.
type PlacementEvent struct {
	ItemID string
	State  model.PlacementState
}

// SyncFailureEvent is published when propagating a status change to a
// collaborator failed. The in-memory state stays authoritative.
type SyncFailureEvent struct {
	JobID string
	Err   error
}
