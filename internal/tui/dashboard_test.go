package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/sheet"
)

func testStore(t *testing.T) *sheet.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timeline.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Activity", "Item", "Task", "Room", "Status", "Order Status", "Start Date", "End Date", "Progress"},
		{"Construction", "Walls", "Paint bedroom", "Bedroom", "In Progress", "Ordered", "2025-03-01", "2025-03-10", "40"},
		{"Construction", "Floors", "Lay parquet", "Living Room", "Finished", "Ordered", "2025-03-05", "2025-03-20", "100"},
		{"Procurement", "Fixtures", "Order lamps", "Bedroom", "Delivered", "Ordered", "2025-02-20", "2025-03-02", "100"},
		{"Procurement", "Fixtures", "Order tiles", "Bathroom", "Not Started", "Not Ordered", "", "", "0"},
	}
	for i := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, ref, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))

	store, err := sheet.Load(path)
	require.NoError(t, err)
	return store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m DashboardModel, keys ...string) DashboardModel {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		var ok bool
		m, ok = updated.(DashboardModel)
		require.True(t, ok)
	}
	return m
}

func TestNewDashboardModel(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	assert.Equal(t, PanelOverview, m.panel)
	assert.Equal(t, FocusMain, m.focus)
	assert.Len(t, m.rows, 4)
	assert.Len(t, m.visible, 4)
	assert.Equal(t, 4, m.summary.Total)
	assert.True(t, m.selection.ShowFinished)
	assert.Empty(t, m.missing)
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	_, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd) // Should return tea.Quit
}

func TestPanelSwitch(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "2")
	assert.Equal(t, PanelTimeline, m.panel)

	m = press(t, m, "4")
	assert.Equal(t, PanelGallery, m.panel)
}

func TestHideFinishedFiltersDeliveredToo(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "f")
	assert.False(t, m.selection.ShowFinished)
	assert.Len(t, m.visible, 2)

	m = press(t, m, "f")
	assert.Len(t, m.visible, 4)
}

func TestSidebarToggleValue(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "tab")
	assert.Equal(t, FocusSidebar, m.focus)

	// First Activity option is "construction"
	m = press(t, m, "enter")
	assert.Equal(t, []string{"construction"}, m.selection.Activities)
	assert.Len(t, m.visible, 2)

	m = press(t, m, "enter")
	assert.Empty(t, m.selection.Activities)
	assert.Len(t, m.visible, 4)
}

func TestGroupingToggleRebuildsSegments(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)
	base := len(m.segments)

	m = press(t, m, "R")
	assert.True(t, m.grouping.ByRoom)
	assert.Greater(t, len(m.segments), base)
}

func TestStatusColorToggle(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)
	require.True(t, m.colorByStatus)

	m = press(t, m, "s")
	assert.False(t, m.colorByStatus)

	m = press(t, m, "s")
	assert.True(t, m.colorByStatus)
}

func TestClearFilters(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)
	m = press(t, m, "tab", "enter", "f")
	require.Less(t, len(m.visible), 4)

	m = press(t, m, "c")
	assert.Len(t, m.visible, 4)
	assert.True(t, m.selection.ShowFinished)
}

func TestCellEditThroughPrompt(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "enter")
	require.True(t, m.prompt.active)
	assert.Equal(t, FocusPrompt, m.focus)
	assert.Equal(t, "Construction", m.prompt.input.Value())

	m.prompt.input.SetValue("Renovation")
	m = press(t, m, "enter")

	assert.False(t, m.prompt.active)
	assert.True(t, m.dirty)
	assert.Equal(t, "Renovation", m.store.Table.Cell(0, sheet.ColActivity))
	assert.Equal(t, "Renovation", m.rows[0].Activity)
}

func TestCellEditOptionCycling(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	// Move to the Status column and open the editor.
	m = press(t, m, "3", "l", "l", "l", "l", "enter")
	require.True(t, m.prompt.active)
	require.Equal(t, models.StatusOptions, m.prompt.options)
	assert.Equal(t, models.StatusInProgress, m.prompt.input.Value())

	m = press(t, m, "down")
	assert.Equal(t, models.StatusNotStarted, m.prompt.input.Value())

	m = press(t, m, "enter")
	assert.Equal(t, models.StatusNotStarted, m.store.Table.Cell(0, sheet.ColStatus))
}

func TestCellEditRejectsBadDate(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	// Move to the Start Date column.
	m = press(t, m, "3", "l", "l", "l", "l", "l", "l", "enter")
	require.True(t, m.prompt.active)

	m.prompt.input.SetValue("not a date")
	m = press(t, m, "enter")

	assert.NotEmpty(t, m.errMsg)
	assert.Equal(t, "2025-03-01", m.store.Table.Cell(0, sheet.ColStartDate))
}

func TestPromptEscape(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "enter")
	require.True(t, m.prompt.active)

	m = press(t, m, "esc")
	assert.False(t, m.prompt.active)
	assert.Equal(t, FocusMain, m.focus)
	assert.False(t, m.dirty)
}

func TestAddRowAndSave(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "a")
	assert.True(t, m.dirty)
	assert.Len(t, m.store.Table.Rows, 5)
	assert.Equal(t, models.StatusNotStarted, m.store.Table.Cell(4, sheet.ColStatus))

	m = press(t, m, "S")
	assert.False(t, m.dirty)

	reloaded, err := sheet.Load(m.store.Path)
	require.NoError(t, err)
	assert.Len(t, reloaded.Table.Rows, 5)
}

func TestDeleteRowConfirmation(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "x")
	require.True(t, m.prompt.active)

	// Anything but y cancels.
	m = press(t, m, "enter")
	assert.Len(t, m.store.Table.Rows, 4)

	m = press(t, m, "x")
	m.prompt.input.SetValue("y")
	m = press(t, m, "enter")
	assert.Len(t, m.store.Table.Rows, 3)

	reloaded, err := sheet.Load(m.store.Path)
	require.NoError(t, err)
	assert.Len(t, reloaded.Table.Rows, 3)
}

func TestDateRangePrompt(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "d")
	require.True(t, m.prompt.active)
	assert.Equal(t, "2025-02-20 2025-03-20", m.prompt.input.Value())

	m.prompt.input.SetValue("2025-03-01 2025-03-31")
	m = press(t, m, "enter")

	require.NotNil(t, m.selection.From)
	require.NotNil(t, m.selection.To)
	assert.Len(t, m.visible, 2)
}

func TestAddColumnPrompt(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "C")
	require.True(t, m.prompt.active)

	m.prompt.input.SetValue("Cost:float")
	m = press(t, m, "enter")

	assert.True(t, m.store.Table.HasColumn("Cost"))
	assert.Equal(t, "0", m.store.Table.Cell(0, "Cost"))
}

func TestMissingColumnGate(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)

	m = press(t, m, "3", "X")
	require.True(t, m.prompt.active)
	m.prompt.input.SetValue(sheet.ColProgress)
	m = press(t, m, "enter")

	assert.Equal(t, []string{sheet.ColProgress}, m.missing)

	m.width, m.height = 120, 40
	view := press(t, m, "2").View()
	assert.Contains(t, view, "Missing required columns: Progress")
}

func TestViewSmoke(t *testing.T) {
	m := NewDashboardModel(testStore(t), nil)
	m = press(t, m, "tab")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	m = updated.(DashboardModel)

	view := m.View()
	assert.Contains(t, view, "SITEDECK")
	assert.Contains(t, view, "Total Tasks")
	assert.Contains(t, view, "Filters")
	assert.Contains(t, view, "No filters applied.")
}
