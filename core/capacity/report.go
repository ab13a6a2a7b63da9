package capacity

import (
	"gonum.org/v1/gonum/stat"

	"github.com/freightworks/loadplan/core/model"
)

// Distribution describes how item volumes and weights are spread across a
// load. Fleet reports use it to spot unbalanced trailers.
type Distribution struct {
	Items        int     `json:"items"`
	MeanVolume   float64 `json:"mean_volume"`
	StdDevVolume float64 `json:"std_dev_volume"`
	MaxVolume    float64 `json:"max_volume"`
	MeanWeight   float64 `json:"mean_weight"`
	StdDevWeight float64 `json:"std_dev_weight"`
	MaxWeight    float64 `json:"max_weight"`
}

// Stats computes the volume and weight distribution of the given items.
func Stats(items []model.CargoItem) Distribution {
	d := Distribution{Items: len(items)}
	if len(items) == 0 {
		return d
	}
	volumes := make([]float64, len(items))
	weights := make([]float64, len(items))
	for i, it := range items {
		volumes[i] = it.Volume()
		weights[i] = it.Weight
		if volumes[i] > d.MaxVolume {
			d.MaxVolume = volumes[i]
		}
		if weights[i] > d.MaxWeight {
			d.MaxWeight = weights[i]
		}
	}
	d.MeanVolume, d.StdDevVolume = stat.MeanStdDev(volumes, nil)
	d.MeanWeight, d.StdDevWeight = stat.MeanStdDev(weights, nil)
	if len(items) == 1 {
		// MeanStdDev returns NaN for a single sample.
		d.StdDevVolume, d.StdDevWeight = 0, 0
	}
	return d
}
