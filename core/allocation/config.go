package allocation

import "fmt"

// Config defines the footprint scaling used by the shelf packer. All linear
// values are centimeters.
type Config struct {
	// WidthPerCubicMeter scales an item's volume into a footprint width.
	WidthPerCubicMeter float64 `json:"width_per_cubic_meter" yaml:"width_per_cubic_meter"`
	// HeightPerKg scales an item's weight into a footprint height.
	HeightPerKg float64 `json:"height_per_kg" yaml:"height_per_kg"`
	// MinWidth and MinHeight keep very small consignments selectable.
	MinWidth  float64 `json:"min_width" yaml:"min_width"`
	MinHeight float64 `json:"min_height" yaml:"min_height"`
	// Gap is the spacing kept between footprints.
	Gap float64 `json:"gap" yaml:"gap"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.WidthPerCubicMeter == 0 {
		c.WidthPerCubicMeter = 10
	}
	if c.HeightPerKg == 0 {
		c.HeightPerKg = 0.05
	}
	if c.MinWidth == 0 {
		c.MinWidth = 20
	}
	if c.MinHeight == 0 {
		c.MinHeight = 15
	}
	if c.Gap == 0 {
		c.Gap = 5
	}
}

// Validate checks the scaling parameters.
func (c Config) Validate() error {
	if c.WidthPerCubicMeter < 0 || c.HeightPerKg < 0 {
		return fmt.Errorf("allocation: scale factors must be non-negative")
	}
	if c.MinWidth < 0 || c.MinHeight < 0 || c.Gap < 0 {
		return fmt.Errorf("allocation: sizes must be non-negative")
	}
	return nil
}
