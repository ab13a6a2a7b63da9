package config

import "fmt"

// TrailerConfig declares the physical envelope and capacity ceilings of the
// trailer being planned. Dimensions are centimeters, weight kilograms,
// volume cubic meters.
type TrailerConfig struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MaxWeight float64 `json:"max_weight"`
	MaxVolume float64 `json:"max_volume"`
}

// SetDefaults applies the envelope of a standard 13.5m curtain-sider.
func (c *TrailerConfig) SetDefaults() {
	if c.Length == 0 {
		c.Length = 1350
	}
	if c.Width == 0 {
		c.Width = 255
	}
	if c.Height == 0 {
		c.Height = 270
	}
	if c.MaxWeight == 0 {
		c.MaxWeight = 26000
	}
	if c.MaxVolume == 0 {
		c.MaxVolume = 92.5
	}
}

// Validate checks the envelope is usable.
func (c TrailerConfig) Validate() error {
	if c.Length <= 0 || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("trailer envelope must be positive")
	}
	if c.MaxWeight <= 0 || c.MaxVolume <= 0 {
		return fmt.Errorf("trailer capacity ceilings must be positive")
	}
	return nil
}
