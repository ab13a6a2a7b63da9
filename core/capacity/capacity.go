// Package capacity derives weight, volume and utilization figures for a
// trailer layout. All functions are pure; callers own the item collections.
package capacity

import "github.com/freightworks/loadplan/core/model"

// Summary aggregates a cargo collection against the trailer ceilings.
type Summary struct {
	TotalWeight    float64 `json:"total_weight"`    // kg
	TotalVolume    float64 `json:"total_volume"`    // m³
	UtilizationPct float64 `json:"utilization_pct"` // true value, may exceed 100
	OverWeight     bool    `json:"over_weight"`
	OverVolume     bool    `json:"over_volume"`
}

// Overloaded reports whether either capacity ceiling is exceeded. Overload is
// a planning signal, not a fault; operators may deliberately proceed.
func (s Summary) Overloaded() bool {
	return s.OverWeight || s.OverVolume
}

// Recompute aggregates the cargo items against the given ceilings. The
// utilization percentage is exact and is not clamped; use
// DisplayUtilization for rendering. A zero maxVolume or an empty item list
// yields zero utilization.
func Recompute(items []model.CargoItem, maxWeight, maxVolume float64) Summary {
	var s Summary
	for _, it := range items {
		s.TotalWeight += it.Weight
		s.TotalVolume += it.Volume()
	}
	if maxVolume > 0 && len(items) > 0 {
		s.UtilizationPct = s.TotalVolume / maxVolume * 100
	}
	s.OverWeight = maxWeight > 0 && s.TotalWeight > maxWeight
	s.OverVolume = maxVolume > 0 && s.TotalVolume > maxVolume
	return s
}

// ForLayout aggregates a layout's items against its own ceilings.
func ForLayout(t model.TrailerLayout) Summary {
	return Recompute(t.Items, t.MaxWeight, t.MaxVolume)
}

// DisplayUtilization clamps the utilization percentage to 100 for display
// purposes. The true value stays available on the summary.
func DisplayUtilization(s Summary) float64 {
	if s.UtilizationPct > 100 {
		return 100
	}
	return s.UtilizationPct
}
