// Package placement tracks operator acceptance of placed consignments:
// allocated, rejected or manually modified. Acceptance is orthogonal to
// delivery sequencing; none of these transitions touch sequence numbers.
package placement

import "github.com/freightworks/loadplan/core/model"

// Reject marks the consignment as rejected. Rejection is always permitted.
func Reject(items []model.CargoItem, id string) ([]model.CargoItem, error) {
	idx, err := find(items, id, "reject")
	if err != nil {
		return nil, err
	}
	out := append([]model.CargoItem(nil), items...)
	out[idx].State = model.PlacementRejected
	return out, nil
}

// Accept returns a rejected consignment to the allocated state. On any other
// state it is a no-op.
func Accept(items []model.CargoItem, id string) ([]model.CargoItem, error) {
	idx, err := find(items, id, "accept")
	if err != nil {
		return nil, err
	}
	out := append([]model.CargoItem(nil), items...)
	if out[idx].State == model.PlacementRejected {
		out[idx].State = model.PlacementAllocated
	}
	return out, nil
}

// Move repositions the consignment and marks it modified regardless of its
// prior state. The new coordinate is persisted on the item.
func Move(items []model.CargoItem, id string, pos model.Position) ([]model.CargoItem, error) {
	idx, err := find(items, id, "move")
	if err != nil {
		return nil, err
	}
	out := append([]model.CargoItem(nil), items...)
	out[idx].Position = pos
	out[idx].Placed = true
	out[idx].State = model.PlacementModified
	return out, nil
}

func find(items []model.CargoItem, id, op string) (int, error) {
	for i := range items {
		if items[i].ID == id {
			return i, nil
		}
	}
	return -1, model.UnknownItemError{Op: op, ID: id}
}
