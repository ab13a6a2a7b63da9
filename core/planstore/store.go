// Package planstore persists named, versioned snapshots of a trailer layout
// for later recall.
package planstore

import (
	"context"
	"time"

	"github.com/freightworks/loadplan/core/model"
)

// LoadPlan is one saved snapshot. The layout and delivery items are deep
// copies: edits to the live planning session never reach a saved plan.
type LoadPlan struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
	Layout      model.TrailerLayout  `json:"layout"`
	Deliveries  []model.DeliveryItem `json:"deliveries"`
}

// Store persists load plans and supports recall by id.
type Store interface {
	Save(ctx context.Context, name, description string, layout model.TrailerLayout, deliveries []model.DeliveryItem) (LoadPlan, error)
	Load(ctx context.Context, id string) (LoadPlan, error)
	List(ctx context.Context) ([]LoadPlan, error)
	Close() error
}

// snapshot deep-copies the stored value.
func snapshot(layout model.TrailerLayout, deliveries []model.DeliveryItem) (model.TrailerLayout, []model.DeliveryItem) {
	return layout.Clone(), append([]model.DeliveryItem(nil), deliveries...)
}
