package model

import "fmt"

// Priority classifies how urgently a consignment must be delivered.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Fragility classifies how a consignment must be handled during loading.
type Fragility int

const (
	FragilityStandard Fragility = iota
	FragilityFragile
	FragilityHeavy
)

// String returns a human-readable representation of the fragility class.
func (f Fragility) String() string {
	switch f {
	case FragilityFragile:
		return "fragile"
	case FragilityStandard:
		return "standard"
	case FragilityHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// PlacementState tracks operator acceptance of a placed consignment. It is
// orthogonal to the delivery status carried by DeliveryItem.
type PlacementState int

const (
	PlacementAllocated PlacementState = iota
	PlacementRejected
	PlacementModified
)

// String returns a human-readable representation of the placement state.
func (s PlacementState) String() string {
	switch s {
	case PlacementAllocated:
		return "allocated"
	case PlacementRejected:
		return "rejected"
	case PlacementModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Position is a coordinate inside the trailer load footprint, in centimeters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// CargoItem represents one consignment tied to a job, with its physical
// dimensions and its placement inside a trailer layout.
type CargoItem struct {
	ID       string `json:"id"`
	JobID    string `json:"job_id"`
	Title    string `json:"title"`
	Customer string `json:"customer"`

	Length float64 `json:"length"` // cm
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
	Weight float64 `json:"weight"` // kg

	Priority  Priority  `json:"priority"`
	Fragility Fragility `json:"fragility"`

	// Placed is true once the allocation engine assigned a position.
	Placed   bool           `json:"placed"`
	Position Position       `json:"position"`
	PlotID   string         `json:"plot_id,omitempty"`
	State    PlacementState `json:"state"`
}

// Volume returns the item volume in cubic meters, always derived from the
// current dimensions.
func (c CargoItem) Volume() float64 {
	return c.Length * c.Width * c.Height / 1e6
}

// Placeable reports whether the item can be given a spot in the load
// footprint. Items with a zero dimension carry no usable volume and are
// skipped by the allocation engine.
func (c CargoItem) Placeable() bool {
	return c.Length > 0 && c.Width > 0 && c.Height > 0
}

// Validate checks that the item dimensions are sound.
func (c CargoItem) Validate() error {
	if c.Length < 0 || c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("cargo item %s: dimensions must be non-negative", c.ID)
	}
	if c.Weight < 0 {
		return fmt.Errorf("cargo item %s: weight must be non-negative", c.ID)
	}
	return nil
}

// TrailerLayout is the capacity envelope and placed cargo items for one
// vehicle. Totals and utilization are always derived from Items by the
// capacity tracker, never stored here.
type TrailerLayout struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicle_id"`

	Length float64 `json:"length"` // cm
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm

	MaxWeight float64 `json:"max_weight"` // kg
	MaxVolume float64 `json:"max_volume"` // m³

	Items []CargoItem `json:"items"`
}

// Clone returns a deep copy of the layout. Saved load plans rely on this to
// stay unaffected by later edits of the live layout.
func (t TrailerLayout) Clone() TrailerLayout {
	cp := t
	cp.Items = append([]CargoItem(nil), t.Items...)
	return cp
}
