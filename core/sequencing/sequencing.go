// Package sequencing assigns and repairs the delivery order of a vehicle
// load map. Every function is a pure transformation: the input slice is never
// mutated and derived fields (sequence numbers, position classes) are always
// recomputed together before the result is returned.
package sequencing

import (
	"sort"

	"github.com/freightworks/loadplan/core/model"
)

// DerivePositions recomputes the position class of every item from the
// current sequence numbers: the first drop rides at the tail (first off), the
// last against the bulkhead (last off), everything else in the middle. A
// single-item map is classed tail, matching the first-off convention.
func DerivePositions(items []model.DeliveryItem) []model.DeliveryItem {
	out := append([]model.DeliveryItem(nil), items...)
	if len(out) == 0 {
		return out
	}
	order := seqOrder(out)
	for rank, idx := range order {
		switch {
		case rank == 0:
			out[idx].Position = model.PositionTail
		case rank == len(order)-1:
			out[idx].Position = model.PositionBulkhead
		default:
			out[idx].Position = model.PositionMiddle
		}
	}
	return out
}

// Renumber rewrites the sequence numbers to a contiguous 1..N following the
// current sequence order, then re-derives position classes.
func Renumber(items []model.DeliveryItem) []model.DeliveryItem {
	out := append([]model.DeliveryItem(nil), items...)
	for rank, idx := range seqOrder(out) {
		out[idx].DeliverySequence = rank + 1
	}
	return DerivePositions(out)
}

// OptimizeByTime stable-sorts the items by estimated delivery time, assigns
// fresh sequence numbers 1..N and re-derives position classes. The caller
// marks the owning load map as optimized.
func OptimizeByTime(items []model.DeliveryItem) []model.DeliveryItem {
	out := append([]model.DeliveryItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedTime.Before(out[j].EstimatedTime)
	})
	for i := range out {
		out[i].DeliverySequence = i + 1
	}
	return DerivePositions(out)
}

// Swap exchanges the sequence numbers of the two named items and re-derives
// position classes for the whole set. Naming an absent id is a validation
// error and leaves the input untouched.
func Swap(items []model.DeliveryItem, idA, idB string) ([]model.DeliveryItem, error) {
	if idA == idB {
		for _, it := range items {
			if it.ID == idA {
				return append([]model.DeliveryItem(nil), items...), nil
			}
		}
		return nil, model.UnknownItemError{Op: "swap", ID: idA}
	}
	ia, ib := -1, -1
	for i := range items {
		switch items[i].ID {
		case idA:
			ia = i
		case idB:
			ib = i
		}
	}
	if ia < 0 {
		return nil, model.UnknownItemError{Op: "swap", ID: idA}
	}
	if ib < 0 {
		return nil, model.UnknownItemError{Op: "swap", ID: idB}
	}
	out := append([]model.DeliveryItem(nil), items...)
	out[ia].DeliverySequence, out[ib].DeliverySequence = out[ib].DeliverySequence, out[ia].DeliverySequence
	return DerivePositions(out), nil
}

// CompletedCount returns the number of completed drops.
func CompletedCount(items []model.DeliveryItem) int {
	n := 0
	for _, it := range items {
		if it.Status == model.StatusCompleted {
			n++
		}
	}
	return n
}

// seqOrder returns item indices sorted by delivery sequence. Ties keep input
// order so derivation stays deterministic on malformed input.
func seqOrder(items []model.DeliveryItem) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return items[order[i]].DeliverySequence < items[order[j]].DeliverySequence
	})
	return order
}
