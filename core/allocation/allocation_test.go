package allocation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freightworks/loadplan/core/model"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{})
	require.NoError(t, err)
	return e
}

func smallItem(id string) model.CargoItem {
	// Tiny volume and weight: footprint falls back to the configured minimums
	// (20x15 with defaults).
	return model.CargoItem{ID: id, Length: 10, Width: 10, Height: 10, Weight: 1}
}

func TestAllocate_RowWrap(t *testing.T) {
	e := newEngine(t)
	items := []model.CargoItem{
		smallItem("a"), smallItem("b"), smallItem("c"), smallItem("d"), smallItem("e"),
	}
	out, err := e.Allocate(items, Envelope{Width: 100, Height: 255})
	require.NoError(t, err)

	// 20 wide + 5 gap: four fit on the first row, the fifth wraps.
	wantX := []float64{0, 25, 50, 75, 0}
	wantY := []float64{0, 0, 0, 0, 20}
	for i, it := range out {
		require.True(t, it.Placed, "item %d", i)
		require.Equal(t, wantX[i], it.Position.X, "item %d x", i)
		require.Equal(t, wantY[i], it.Position.Y, "item %d y", i)
	}
}

func TestAllocate_ColumnWrap(t *testing.T) {
	e := newEngine(t)
	var items []model.CargoItem
	for i := 0; i < 5; i++ {
		items = append(items, smallItem(string(rune('a'+i))))
	}
	// Height 30 leaves room for a single row; the wrap opens a new column.
	out, err := e.Allocate(items, Envelope{Width: 100, Height: 30})
	require.NoError(t, err)
	last := out[4]
	require.Equal(t, 25.0, last.Position.X)
	require.Equal(t, 0.0, last.Position.Y)
}

func TestAllocate_Idempotent(t *testing.T) {
	e := newEngine(t)
	items := []model.CargoItem{
		{ID: "a", Length: 200, Width: 150, Height: 300, Weight: 2500},
		{ID: "b", Length: 180, Width: 120, Height: 250, Weight: 1800},
		{ID: "c", Length: 400, Width: 250, Height: 200, Weight: 3200},
	}
	env := Envelope{Width: 1350, Height: 255}
	first, err := e.Allocate(items, env)
	require.NoError(t, err)
	second, err := e.Allocate(items, env)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAllocate_SkipsZeroDimension(t *testing.T) {
	e := newEngine(t)
	items := []model.CargoItem{
		smallItem("a"),
		{ID: "flat", Length: 100, Width: 0, Height: 50, Weight: 10},
		smallItem("b"),
	}
	out, err := e.Allocate(items, Envelope{Width: 1350, Height: 255})
	require.NoError(t, err)
	require.False(t, out[1].Placed)
	require.Empty(t, out[1].PlotID)
	// Plot identifiers stay contiguous across the skip.
	require.Equal(t, "P1", out[0].PlotID)
	require.Equal(t, "P2", out[2].PlotID)
}

func TestAllocate_FootprintCaps(t *testing.T) {
	e := newEngine(t)
	huge := model.CargoItem{ID: "huge", Length: 1000, Width: 1000, Height: 1000, Weight: 50000}
	env := Envelope{Width: 900, Height: 200}
	w, h := e.footprint(huge, env)
	require.Equal(t, env.Width/3, w)
	require.Equal(t, env.Height/2, h)
}

func TestAllocate_Errors(t *testing.T) {
	e := newEngine(t)
	_, err := e.Allocate(nil, Envelope{})
	require.Error(t, err)

	_, err = e.Allocate([]model.CargoItem{{ID: "neg", Length: -1, Width: 10, Height: 10}}, Envelope{Width: 100, Height: 100})
	require.Error(t, err)
}

func TestAllocate_PreservesInputOrder(t *testing.T) {
	e := newEngine(t)
	items := []model.CargoItem{smallItem("z"), smallItem("a"), smallItem("m")}
	out, err := e.Allocate(items, Envelope{Width: 1350, Height: 255})
	require.NoError(t, err)
	require.Equal(t, "z", out[0].ID)
	require.Equal(t, "a", out[1].ID)
	require.Equal(t, "m", out[2].ID)
}
