package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobCargoItem(t *testing.T) {
	job := Job{
		ID:           "job-1",
		Title:        "Pallets",
		CustomerName: "Acme",
		LoadDimensions: LoadDimensions{
			Length: 120, Width: 100, Height: 150, Weight: 300,
			Volume: 99, // ignored, recomputed from dimensions
		},
		CargoType: "fragile",
		Priority:  PriorityHigh,
	}

	item := job.CargoItem()
	assert.Equal(t, "job-1", item.ID)
	assert.Equal(t, "job-1", item.JobID)
	assert.Equal(t, "Acme", item.Customer)
	assert.Equal(t, FragilityFragile, item.Fragility)
	assert.Equal(t, PriorityHigh, item.Priority)
	assert.InDelta(t, 1.8, item.Volume(), 1e-9)
	assert.False(t, item.Placed)
}

func TestJobCargoItemFragilityMapping(t *testing.T) {
	cases := map[string]Fragility{
		"fragile": FragilityFragile,
		"heavy":   FragilityHeavy,
		"general": FragilityStandard,
		"":        FragilityStandard,
	}
	for cargoType, want := range cases {
		job := Job{ID: "j", CargoType: cargoType}
		assert.Equal(t, want, job.CargoItem().Fragility, cargoType)
	}
}
