package sequencing

import (
	"time"

	"github.com/freightworks/loadplan/core/model"
)

// ValidTransition reports whether a delivery status change is allowed. The
// progression is linear: pending -> in_progress -> completed, with the
// shortcut pending -> completed for drops finished in the field before being
// started. Nothing leaves completed.
func ValidTransition(from, to model.DeliveryStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case model.StatusPending:
		return to == model.StatusInProgress || to == model.StatusCompleted
	case model.StatusInProgress:
		return to == model.StatusCompleted
	default:
		return false
	}
}

// UpdateStatus transitions the status of one drop. Completion stamps the
// actual delivery time with now when it was not already set. The returned
// count is the recomputed number of completed drops, so the caller can update
// the owning load map in the same step.
func UpdateStatus(items []model.DeliveryItem, id string, status model.DeliveryStatus, now time.Time) ([]model.DeliveryItem, int, error) {
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, 0, model.UnknownItemError{Op: "update status", ID: id}
	}
	if !ValidTransition(items[idx].Status, status) {
		return nil, 0, model.TransitionError{ID: id, From: items[idx].Status, To: status}
	}
	out := append([]model.DeliveryItem(nil), items...)
	out[idx].Status = status
	if status == model.StatusCompleted && out[idx].ActualTime == nil {
		ts := now
		out[idx].ActualTime = &ts
	}
	return out, CompletedCount(out), nil
}
