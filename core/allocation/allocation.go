// Package allocation places cargo items into a trailer's 2-D load footprint
// using a left-to-right shelf-packing heuristic. Placement is deterministic:
// the same item list in the same order always yields the same positions.
package allocation

import (
	"fmt"

	"github.com/freightworks/loadplan/core/model"
)

// Envelope is the usable 2-D load footprint of a trailer, in centimeters.
type Envelope struct {
	Width  float64
	Height float64
}

// maxWidthFrac and maxHeightFrac cap a single footprint so no item can
// dominate the plot; this keeps the heuristic stable for outsized loads.
const (
	maxWidthFrac  = 1.0 / 3.0
	maxHeightFrac = 1.0 / 2.0
)

// Engine packs cargo items into an envelope.
type Engine struct {
	cfg Config
}

// New creates an Engine. Zero config fields are replaced with defaults.
func New(cfg Config) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// footprint derives the plotted size of one item: width grows with volume,
// height with weight, both capped to a fraction of the envelope.
func (e *Engine) footprint(it model.CargoItem, env Envelope) (w, h float64) {
	w = it.Volume() * e.cfg.WidthPerCubicMeter
	if w < e.cfg.MinWidth {
		w = e.cfg.MinWidth
	}
	if maxW := env.Width * maxWidthFrac; w > maxW {
		w = maxW
	}
	h = it.Weight * e.cfg.HeightPerKg
	if h < e.cfg.MinHeight {
		h = e.cfg.MinHeight
	}
	if maxH := env.Height * maxHeightFrac; h > maxH {
		h = maxH
	}
	return w, h
}

// Allocate places the items in input order and returns a new slice with
// positions and plot identifiers assigned. Items with a zero dimension are
// returned unplaced. Input order is preserved, never reordered, so re-running
// Allocate on an unchanged list reproduces the exact same layout.
func (e *Engine) Allocate(items []model.CargoItem, env Envelope) ([]model.CargoItem, error) {
	if env.Width <= 0 || env.Height <= 0 {
		return nil, fmt.Errorf("allocation: envelope must be positive, got %gx%g", env.Width, env.Height)
	}
	out := append([]model.CargoItem(nil), items...)

	var (
		cursorX, cursorY float64
		rowMaxH          float64 // tallest footprint in the current row
		colMaxW          float64 // widest footprint in the current column
		colStartX        float64
		plot             int
	)
	for i := range out {
		it := &out[i]
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if !it.Placeable() {
			it.Placed = false
			it.PlotID = ""
			continue
		}
		w, h := e.footprint(*it, env)
		if cursorX+w > env.Width {
			// Wrap to the next row below the tallest item in this one.
			cursorY += rowMaxH + e.cfg.Gap
			cursorX = colStartX
			rowMaxH = 0
			if cursorY+h > env.Height {
				// Row would overflow the envelope: open a new column
				// past the widest footprint placed so far.
				colStartX += colMaxW + e.cfg.Gap
				cursorX = colStartX
				cursorY = 0
				colMaxW = 0
			}
		}
		plot++
		it.Placed = true
		it.Position = model.Position{X: cursorX, Y: cursorY}
		it.PlotID = fmt.Sprintf("P%d", plot)
		it.State = model.PlacementAllocated
		cursorX += w + e.cfg.Gap
		if h > rowMaxH {
			rowMaxH = h
		}
		if w > colMaxW {
			colMaxW = w
		}
	}
	return out, nil
}
