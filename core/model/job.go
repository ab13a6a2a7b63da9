package model

// LoadDimensions carries the physical envelope of a job's cargo as supplied
// by the job source.
type LoadDimensions struct {
	Length float64 `json:"length"` // cm
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
	Weight float64 `json:"weight"` // kg
	Volume float64 `json:"volume"` // m³, informational only
}

// Job is a record consumed from the external job source. The engine never
// mutates job records; it derives cargo items from them.
type Job struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	CustomerName   string         `json:"customer_name"`
	LoadDimensions LoadDimensions `json:"load_dimensions"`
	CargoType      string         `json:"cargo_type"`
	Priority       Priority       `json:"priority"`
}

// CargoItem derives a cargo item from the job record. The volume field of
// LoadDimensions is ignored; volume is always recomputed from dimensions.
func (j Job) CargoItem() CargoItem {
	item := CargoItem{
		ID:       j.ID,
		JobID:    j.ID,
		Title:    j.Title,
		Customer: j.CustomerName,
		Length:   j.LoadDimensions.Length,
		Width:    j.LoadDimensions.Width,
		Height:   j.LoadDimensions.Height,
		Weight:   j.LoadDimensions.Weight,
		Priority: j.Priority,
	}
	switch j.CargoType {
	case "fragile":
		item.Fragility = FragilityFragile
	case "heavy":
		item.Fragility = FragilityHeavy
	default:
		item.Fragility = FragilityStandard
	}
	return item
}

// Vehicle is a record consumed from the external vehicle source, used only to
// label layouts and load maps.
type Vehicle struct {
	ID            string `json:"id"`
	Registration  string `json:"registration"`
	Status        string `json:"status"`
	CurrentDriver string `json:"current_driver"`
}
