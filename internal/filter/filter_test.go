package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmbp/sitedeck/internal/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func sampleRows() []models.TaskRow {
	return []models.TaskRow{
		{Activity: "Construction", Item: "Walls", Task: "Paint bedroom", Room: "Bedroom",
			Status: models.StatusInProgress, OrderStatus: models.OrderStatusOrdered,
			Start: date(2025, 3, 1), End: date(2025, 3, 10), Progress: 40},
		{Activity: "Construction", Item: "Floors", Task: "Lay parquet", Room: "Living Room",
			Status: models.StatusFinished, OrderStatus: models.OrderStatusOrdered,
			Start: date(2025, 3, 5), End: date(2025, 3, 20), Progress: 100},
		{Activity: "Procurement", Item: "Fixtures", Task: "Order lamps", Room: "Bedroom",
			Status: models.StatusDelivered, OrderStatus: models.OrderStatusOrdered,
			Start: date(2025, 2, 20), End: date(2025, 3, 2), Progress: 100},
		{Activity: "Procurement", Item: "Fixtures", Task: "Order tiles", Room: "Bathroom",
			Status: models.StatusNotStarted, OrderStatus: models.OrderStatusNotOrdered,
			Start: nil, End: nil, Progress: 0},
	}
}

func TestApplyEmptySelectionKeepsEverything(t *testing.T) {
	rows := sampleRows()
	got := Apply(rows, NewSelection())
	assert.Len(t, got, len(rows))
}

func TestApplyConjunction(t *testing.T) {
	rows := sampleRows()

	sel := NewSelection()
	sel.Activities = []string{"procurement"}
	sel.Rooms = []string{"bedroom"}

	got := Apply(rows, sel)
	require.Len(t, got, 1)
	assert.Equal(t, "Order lamps", got[0].Task)
}

func TestApplyNormalizesBothSides(t *testing.T) {
	rows := sampleRows()

	sel := NewSelection()
	sel.Activities = []string{"  CONSTRUCTION  "}

	got := Apply(rows, sel)
	assert.Len(t, got, 2)
}

func TestApplyHideFinished(t *testing.T) {
	rows := sampleRows()

	sel := NewSelection()
	sel.ShowFinished = false

	got := Apply(rows, sel)
	require.Len(t, got, 2)
	for _, row := range got {
		assert.False(t, row.IsDeliveredOrFinished(), "task %q should have been hidden", row.Task)
	}
}

func TestApplyDateRange(t *testing.T) {
	rows := sampleRows()

	sel := NewSelection()
	sel.From = date(2025, 3, 1)
	sel.To = date(2025, 3, 31)

	got := Apply(rows, sel)
	require.Len(t, got, 2)
	assert.Equal(t, "Paint bedroom", got[0].Task)
	assert.Equal(t, "Lay parquet", got[1].Task)
}

func TestApplyDateRangeExcludesMissingDates(t *testing.T) {
	rows := sampleRows()

	sel := NewSelection()
	sel.From = date(2025, 1, 1)
	sel.To = date(2025, 12, 31)

	got := Apply(rows, sel)
	for _, row := range got {
		require.NotNil(t, row.Start)
		require.NotNil(t, row.End)
	}
	assert.Len(t, got, 3)
}

func TestSelectAllEqualsSelectNone(t *testing.T) {
	rows := sampleRows()

	all := NewSelection()
	for _, d := range Dimensions {
		all.SetValues(d, Options(rows, d))
	}
	none := NewSelection()

	assert.Equal(t, Apply(rows, none), Apply(rows, all))
}

func TestOptionsSortedUniqueNormalized(t *testing.T) {
	rows := sampleRows()
	rows = append(rows, models.TaskRow{Activity: " construction ", Task: "Duplicate casing"})

	got := Options(rows, DimActivity)
	assert.Equal(t, []string{"construction", "procurement"}, got)
}

func TestOptionsSkipsBlanks(t *testing.T) {
	rows := []models.TaskRow{{Room: "  "}, {Room: "Kitchen"}}
	assert.Equal(t, []string{"kitchen"}, Options(rows, DimRoom))
}

func TestDefaultRange(t *testing.T) {
	rows := sampleRows()
	from, to := DefaultRange(rows)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, *date(2025, 2, 20), *from)
	assert.Equal(t, *date(2025, 3, 20), *to)
}

func TestDefaultRangeNoDates(t *testing.T) {
	rows := []models.TaskRow{{Task: "No schedule"}}
	from, to := DefaultRange(rows)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestSummary(t *testing.T) {
	sel := NewSelection()
	assert.Equal(t, "No filters applied.", sel.Summary())

	sel.Activities = []string{"construction"}
	sel.Statuses = []string{models.StatusInProgress}
	sel.From = date(2025, 3, 1)
	sel.To = date(2025, 3, 31)

	got := sel.Summary()
	assert.Equal(t, "Activities: Construction; Status: In Progress; Date Range: 2025-03-01 to 2025-03-31", got)
}

func TestClear(t *testing.T) {
	sel := NewSelection()
	sel.Activities = []string{"construction"}
	sel.ShowFinished = false
	sel.From = date(2025, 3, 1)

	sel.Clear()
	assert.Empty(t, sel.Activities)
	assert.True(t, sel.ShowFinished)
	assert.Nil(t, sel.From)
}
