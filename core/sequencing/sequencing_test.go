package sequencing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freightworks/loadplan/core/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func drops(n int) []model.DeliveryItem {
	items := make([]model.DeliveryItem, n)
	for i := range items {
		items[i] = model.DeliveryItem{
			ID:               string(rune('a' + i)),
			JobID:            string(rune('a' + i)),
			DeliverySequence: i + 1,
			EstimatedTime:    at(8+i, 0),
		}
	}
	return items
}

func assertContiguous(t *testing.T, items []model.DeliveryItem) {
	t.Helper()
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		require.False(t, seen[it.DeliverySequence], "duplicate sequence %d", it.DeliverySequence)
		require.GreaterOrEqual(t, it.DeliverySequence, 1)
		require.LessOrEqual(t, it.DeliverySequence, len(items))
		seen[it.DeliverySequence] = true
	}
}

func assertPositions(t *testing.T, items []model.DeliveryItem) {
	t.Helper()
	for _, it := range items {
		switch it.DeliverySequence {
		case 1:
			require.Equal(t, model.PositionTail, it.Position, "item %s", it.ID)
		case len(items):
			if len(items) >= 2 {
				require.Equal(t, model.PositionBulkhead, it.Position, "item %s", it.ID)
			}
		default:
			require.Equal(t, model.PositionMiddle, it.Position, "item %s", it.ID)
		}
	}
}

func TestOptimizeByTime(t *testing.T) {
	items := []model.DeliveryItem{
		{ID: "noon", DeliverySequence: 1, EstimatedTime: at(12, 0)},
		{ID: "morning", DeliverySequence: 2, EstimatedTime: at(9, 0)},
	}
	out := OptimizeByTime(items)
	require.Equal(t, "morning", out[0].ID)
	require.Equal(t, 1, out[0].DeliverySequence)
	require.Equal(t, model.PositionTail, out[0].Position)
	require.Equal(t, "noon", out[1].ID)
	require.Equal(t, 2, out[1].DeliverySequence)
	require.Equal(t, model.PositionBulkhead, out[1].Position)
	// Input untouched.
	require.Equal(t, "noon", items[0].ID)
	require.Equal(t, 1, items[0].DeliverySequence)
}

func TestOptimizeByTime_StableOnTies(t *testing.T) {
	items := []model.DeliveryItem{
		{ID: "first", DeliverySequence: 1, EstimatedTime: at(9, 0)},
		{ID: "second", DeliverySequence: 2, EstimatedTime: at(9, 0)},
	}
	out := OptimizeByTime(items)
	require.Equal(t, "first", out[0].ID)
	require.Equal(t, "second", out[1].ID)
}

func TestSwap(t *testing.T) {
	items := drops(4)
	out, err := Swap(items, "a", "c")
	require.NoError(t, err)
	assertContiguous(t, out)
	assertPositions(t, out)
	for _, it := range out {
		switch it.ID {
		case "a":
			require.Equal(t, 3, it.DeliverySequence)
		case "c":
			require.Equal(t, 1, it.DeliverySequence)
			require.Equal(t, model.PositionTail, it.Position)
		}
	}
}

func TestSwap_UnknownID(t *testing.T) {
	items := drops(2)
	_, err := Swap(items, "a", "zz")
	var unknown model.UnknownItemError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "zz", unknown.ID)
}

func TestDerivePositions_SingleItem(t *testing.T) {
	out := DerivePositions(drops(1))
	require.Equal(t, model.PositionTail, out[0].Position)
}

func TestRenumber_RepairsGaps(t *testing.T) {
	items := []model.DeliveryItem{
		{ID: "a", DeliverySequence: 4},
		{ID: "b", DeliverySequence: 9},
		{ID: "c", DeliverySequence: 2},
	}
	out := Renumber(items)
	assertContiguous(t, out)
	assertPositions(t, out)
	for _, it := range out {
		switch it.ID {
		case "c":
			require.Equal(t, 1, it.DeliverySequence)
		case "a":
			require.Equal(t, 2, it.DeliverySequence)
		case "b":
			require.Equal(t, 3, it.DeliverySequence)
		}
	}
}

func TestUpdateStatus_CompletionStampsActualTime(t *testing.T) {
	items := drops(2)
	now := at(14, 30)
	out, completed, err := UpdateStatus(items, "a", model.StatusCompleted, now)
	require.NoError(t, err)
	require.Equal(t, 1, completed)
	require.NotNil(t, out[0].ActualTime)
	require.Equal(t, now, *out[0].ActualTime)
	// Input untouched.
	require.Nil(t, items[0].ActualTime)
}

func TestUpdateStatus_KeepsExistingActualTime(t *testing.T) {
	stamped := at(10, 0)
	items := drops(1)
	items[0].Status = model.StatusInProgress
	items[0].ActualTime = &stamped
	out, _, err := UpdateStatus(items, "a", model.StatusCompleted, at(11, 0))
	require.NoError(t, err)
	require.Equal(t, stamped, *out[0].ActualTime)
}

func TestUpdateStatus_RejectsLeavingCompleted(t *testing.T) {
	items := drops(1)
	items[0].Status = model.StatusCompleted
	_, _, err := UpdateStatus(items, "a", model.StatusPending, at(9, 0))
	var tr model.TransitionError
	require.ErrorAs(t, err, &tr)
	require.Equal(t, model.StatusCompleted, tr.From)
}

func TestUpdateStatus_PendingShortcut(t *testing.T) {
	items := drops(1)
	_, completed, err := UpdateStatus(items, "a", model.StatusCompleted, at(9, 0))
	require.NoError(t, err)
	require.Equal(t, 1, completed)
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	_, _, err := UpdateStatus(drops(1), "nope", model.StatusCompleted, at(9, 0))
	var unknown model.UnknownItemError
	require.ErrorAs(t, err, &unknown)
}
