package capacity

import (
	"math"
	"testing"

	"github.com/freightworks/loadplan/core/model"
)

// item builds a cargo item whose volume in m³ equals vol and whose weight is w.
func item(id string, vol, w float64) model.CargoItem {
	// 100x100 cm base, height chosen so L*W*H/1e6 == vol.
	return model.CargoItem{ID: id, Length: 100, Width: 100, Height: vol * 100, Weight: w}
}

func TestRecompute_WorkedExample(t *testing.T) {
	items := []model.CargoItem{
		item("c1", 9.0, 2500),
		item("c2", 5.4, 1800),
		item("c3", 20.0, 3200),
	}
	s := Recompute(items, 26000, 92.5)
	if math.Abs(s.TotalVolume-34.4) > 1e-9 {
		t.Fatalf("total volume = %v, want 34.4", s.TotalVolume)
	}
	if math.Abs(s.TotalWeight-7500) > 1e-9 {
		t.Fatalf("total weight = %v, want 7500", s.TotalWeight)
	}
	want := 34.4 / 92.5 * 100
	if math.Abs(s.UtilizationPct-want) > 1e-9 {
		t.Fatalf("utilization = %v, want %v", s.UtilizationPct, want)
	}
	if s.Overloaded() {
		t.Fatalf("unexpected overload flag: %+v", s)
	}
}

func TestRecompute_UtilizationIdentity(t *testing.T) {
	items := []model.CargoItem{item("a", 1.5, 10), item("b", 2.25, 20), item("c", 0.75, 5)}
	s := Recompute(items, 1000, 10)
	var sum float64
	for _, it := range items {
		sum += it.Volume()
	}
	if s.TotalVolume != sum {
		t.Fatalf("total volume %v != sum of item volumes %v", s.TotalVolume, sum)
	}
	if s.UtilizationPct != s.TotalVolume/10*100 {
		t.Fatalf("utilization %v violates identity", s.UtilizationPct)
	}
}

func TestRecompute_ZeroCeilingAndEmpty(t *testing.T) {
	if s := Recompute(nil, 100, 100); s.UtilizationPct != 0 {
		t.Fatalf("empty list utilization = %v", s.UtilizationPct)
	}
	if s := Recompute([]model.CargoItem{item("a", 2, 1)}, 100, 0); s.UtilizationPct != 0 {
		t.Fatalf("zero maxVolume utilization = %v", s.UtilizationPct)
	}
}

func TestRecompute_OverloadFlaggedNotClamped(t *testing.T) {
	s := Recompute([]model.CargoItem{item("a", 12, 500)}, 26000, 10)
	if !s.OverVolume {
		t.Fatal("expected over-volume flag")
	}
	if s.UtilizationPct <= 100 {
		t.Fatalf("utilization %v should exceed 100", s.UtilizationPct)
	}
	if got := DisplayUtilization(s); got != 100 {
		t.Fatalf("display utilization = %v, want 100", got)
	}
}

func TestRecompute_OverWeight(t *testing.T) {
	s := Recompute([]model.CargoItem{item("a", 1, 30000)}, 26000, 92.5)
	if !s.OverWeight || s.OverVolume {
		t.Fatalf("flags = %+v, want over-weight only", s)
	}
}

func TestStats(t *testing.T) {
	items := []model.CargoItem{item("a", 2, 100), item("b", 4, 300)}
	d := Stats(items)
	if d.Items != 2 {
		t.Fatalf("items = %d", d.Items)
	}
	if math.Abs(d.MeanVolume-3) > 1e-9 || math.Abs(d.MeanWeight-200) > 1e-9 {
		t.Fatalf("means = %v / %v", d.MeanVolume, d.MeanWeight)
	}
	if d.MaxVolume != 4 || d.MaxWeight != 300 {
		t.Fatalf("maxes = %v / %v", d.MaxVolume, d.MaxWeight)
	}
}

func TestStats_SingleItem(t *testing.T) {
	d := Stats([]model.CargoItem{item("a", 2, 100)})
	if d.StdDevVolume != 0 || d.StdDevWeight != 0 {
		t.Fatalf("single-item std dev should be zero: %+v", d)
	}
}
