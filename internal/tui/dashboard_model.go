package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmbp/sitedeck/internal/db"
	"github.com/cmbp/sitedeck/internal/filter"
	"github.com/cmbp/sitedeck/internal/gantt"
	"github.com/cmbp/sitedeck/internal/images"
	"github.com/cmbp/sitedeck/internal/metrics"
	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/parser"
	"github.com/cmbp/sitedeck/internal/sheet"
)

// Panel identifies the main content panel
type Panel int

const (
	PanelOverview Panel = iota
	PanelTimeline
	PanelTable
	PanelGallery
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusMain Focus = iota
	FocusSidebar
	FocusPrompt
)

// promptKind identifies what a committed prompt value applies to
type promptKind int

const (
	promptEditCell promptKind = iota
	promptDateRange
	promptDeleteRow
	promptAddColumn
	promptDeleteColumn
	promptUpload
)

// promptState is the bottom-line input overlay. options, when present, are
// cycled with up/down and replace the typed value.
type promptState struct {
	active  bool
	kind    promptKind
	title   string
	input   textinput.Model
	options []string
	optIdx  int
	row     int
	column  string
}

// DashboardModel represents the TUI model for the project dashboard
type DashboardModel struct {
	width  int
	height int

	store  *sheet.Store
	images *images.Service

	// Derived data, rebuilt by recompute after every change
	rows       []models.TaskRow
	visible    []models.TaskRow
	visibleIdx []int
	segments   []gantt.Segment
	summary    metrics.Summary
	missing    []string

	// Filter and grouping state
	selection     filter.Selection
	grouping      gantt.Grouping
	colorByStatus bool

	// UI state
	panel     Panel
	focus     Focus
	prevFocus Focus

	// Sidebar cursor
	sidebarDim  int
	sidebarItem int

	// Grid cursor
	cursorRow   int
	cursorCol   int
	rowsPerPage int

	// Gallery
	galleryTask  int
	taskOptions  []string
	gallery      []models.ImageRecord
	galleryTotal int64

	// Prompt overlay
	prompt promptState

	// Overall completion bar
	completion progress.Model

	statusMsg string
	errMsg    string
	dirty     bool
}

// NewDashboardModel creates the dashboard over a loaded store. The images
// service may be nil; the gallery panel then reports uploads as unavailable.
func NewDashboardModel(store *sheet.Store, svc *images.Service) DashboardModel {
	model := DashboardModel{
		store:         store,
		images:        svc,
		selection:     filter.NewSelection(),
		colorByStatus: true,
		panel:         PanelOverview,
		focus:         FocusMain,
		rowsPerPage:   10,
		completion: progress.New(
			progress.WithGradient(ColorAccentMain, ColorSuccess),
			progress.WithWidth(30),
		),
	}
	return model.recompute()
}

// Init initializes the model
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Height - header(6) - panel chrome(8) - footer(3) = grid rows
		rows := m.height - 17
		if rows < 3 {
			rows = 3
		}
		m.rowsPerPage = rows
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusPrompt {
			return m.handlePromptKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Escape leaves the sidebar first, then quits like the rest
			if msg.String() == "esc" && m.focus == FocusSidebar {
				m.focus = FocusMain
				return m, nil
			}
			return m, tea.Quit

		case "tab":
			if m.focus == FocusSidebar {
				m.focus = FocusMain
			} else {
				m.focus = FocusSidebar
			}
			return m, nil

		case "1":
			m.panel = PanelOverview
			m.focus = FocusMain
			return m, nil
		case "2":
			m.panel = PanelTimeline
			m.focus = FocusMain
			return m, nil
		case "3":
			m.panel = PanelTable
			m.focus = FocusMain
			return m, nil
		case "4":
			m.panel = PanelGallery
			m.focus = FocusMain
			return m, nil

		case "R":
			m.grouping.ByRoom = !m.grouping.ByRoom
			return m.recompute(), nil
		case "I":
			m.grouping.ByItem = !m.grouping.ByItem
			return m.recompute(), nil
		case "T":
			m.grouping.ByTask = !m.grouping.ByTask
			return m.recompute(), nil

		case "f":
			m.selection.ShowFinished = !m.selection.ShowFinished
			return m.recompute(), nil
		case "s":
			m.colorByStatus = !m.colorByStatus
			return m, nil
		case "c":
			m.selection.Clear()
			m.statusMsg = "Filters cleared"
			return m.recompute(), nil
		case "d":
			return m.openDateRangePrompt()
		}

		if m.focus == FocusSidebar {
			return m.handleSidebarKeys(msg)
		}

		switch m.panel {
		case PanelTable:
			return m.handleTableKeys(msg)
		case PanelGallery:
			return m.handleGalleryKeys(msg)
		}
	}

	return m, nil
}

// handleSidebarKeys handles key input while the filter sidebar has focus
func (m DashboardModel) handleSidebarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.sidebarOptions()

	switch msg.String() {
	case "up", "k":
		if m.sidebarItem > 0 {
			m.sidebarItem--
		}
	case "down", "j":
		if m.sidebarItem < len(opts)-1 {
			m.sidebarItem++
		}
	case "left", "h":
		m.sidebarDim--
		if m.sidebarDim < 0 {
			m.sidebarDim = len(filter.Dimensions) - 1
		}
		m.sidebarItem = 0
	case "right", "l":
		m.sidebarDim++
		if m.sidebarDim >= len(filter.Dimensions) {
			m.sidebarDim = 0
		}
		m.sidebarItem = 0
	case "enter", " ":
		return m.toggleSidebarValue(), nil
	}
	return m, nil
}

// handleTableKeys handles key input while the grid panel has focus
func (m DashboardModel) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		return m.moveCursor(-1, 0), nil
	case "down", "j":
		return m.moveCursor(1, 0), nil
	case "left", "h":
		return m.moveCursor(0, -1), nil
	case "right", "l":
		return m.moveCursor(0, 1), nil
	case "[":
		return m.moveCursor(-m.rowsPerPage, 0), nil
	case "]":
		return m.moveCursor(m.rowsPerPage, 0), nil
	case "enter":
		return m.openCellPrompt()
	case "a":
		return m.addRow(), nil
	case "x":
		return m.openDeleteRowPrompt()
	case "C":
		return m.openPrompt(promptAddColumn, "Add column (name or name:type)", "", nil)
	case "X":
		return m.openDeleteColumnPrompt()
	case "S":
		return m.save(), nil
	}
	return m, nil
}

// handleGalleryKeys handles key input while the gallery panel has focus
func (m DashboardModel) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.galleryTask > 0 {
			m.galleryTask--
			return m.loadGallery(), nil
		}
	case "down", "j":
		if m.galleryTask < len(m.taskOptions)-1 {
			m.galleryTask++
			return m.loadGallery(), nil
		}
	case "u":
		if len(m.taskOptions) == 0 {
			m.errMsg = "no tasks to attach images to"
			return m, nil
		}
		return m.openPrompt(promptUpload, "Upload images (space-separated paths)", "", nil)
	}
	return m, nil
}

// handlePromptKeys handles key input while the prompt overlay is open
func (m DashboardModel) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if (key == "up" || key == "down") && len(m.prompt.options) > 0 {
		if key == "up" {
			m.prompt.optIdx--
		} else {
			m.prompt.optIdx++
		}
		if m.prompt.optIdx < 0 {
			m.prompt.optIdx = len(m.prompt.options) - 1
		}
		if m.prompt.optIdx >= len(m.prompt.options) {
			m.prompt.optIdx = 0
		}
		m.prompt.input.SetValue(m.prompt.options[m.prompt.optIdx])
		m.prompt.input.CursorEnd()
		return m, nil
	}

	switch key {
	case "esc":
		m.prompt = promptState{}
		m.focus = m.prevFocus
		return m, nil
	case "enter":
		return m.commitPrompt()
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

// openPrompt opens the bottom-line input overlay
func (m DashboardModel) openPrompt(kind promptKind, title, initial string, options []string) (DashboardModel, tea.Cmd) {
	input := textinput.New()
	input.Width = 48
	input.CharLimit = 300
	input.PromptStyle = accentTextStyle
	input.SetValue(initial)
	input.CursorEnd()
	input.Focus()

	optIdx := 0
	for i, opt := range options {
		if opt == initial {
			optIdx = i
			break
		}
	}

	m.prompt = promptState{
		active:  true,
		kind:    kind,
		title:   title,
		input:   input,
		options: options,
		optIdx:  optIdx,
	}
	m.prevFocus = m.focus
	m.focus = FocusPrompt
	return m, textinput.Blink
}

// openCellPrompt opens the editor for the cell under the cursor
func (m DashboardModel) openCellPrompt() (DashboardModel, tea.Cmd) {
	if len(m.visible) == 0 || len(m.store.Table.Columns) == 0 {
		return m, nil
	}
	tableIdx := m.visibleIdx[m.cursorRow]
	col := m.store.Table.Columns[m.cursorCol]

	title := fmt.Sprintf("Edit %s (row %d)", col.Name, tableIdx+1)
	if col.Type == sheet.TypeDate {
		title = fmt.Sprintf("Edit %s (row %d, %s)", col.Name, tableIdx+1, parser.DateLayout)
	}

	next, cmd := m.openPrompt(promptEditCell, title,
		m.store.Table.Cell(tableIdx, col.Name), columnOptions(m.rows, col.Name))
	next.prompt.row = tableIdx
	next.prompt.column = col.Name
	return next, cmd
}

// openDeleteRowPrompt asks for confirmation before removing the row under
// the cursor
func (m DashboardModel) openDeleteRowPrompt() (DashboardModel, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	tableIdx := m.visibleIdx[m.cursorRow]
	task := m.visible[m.cursorRow].Task
	if task == "" {
		task = "(untitled)"
	}

	next, cmd := m.openPrompt(promptDeleteRow,
		fmt.Sprintf("Delete row %d %q? Type y to confirm", tableIdx+1, task), "", nil)
	next.prompt.row = tableIdx
	return next, cmd
}

// openDeleteColumnPrompt asks which column to remove, prefilled with the
// column under the cursor
func (m DashboardModel) openDeleteColumnPrompt() (DashboardModel, tea.Cmd) {
	if len(m.store.Table.Columns) == 0 {
		return m, nil
	}
	return m.openPrompt(promptDeleteColumn, "Delete column (name)",
		m.store.Table.Columns[m.cursorCol].Name, nil)
}

// openDateRangePrompt opens the date-range input, prefilled with the active
// range or the table's natural bounds
func (m DashboardModel) openDateRangePrompt() (DashboardModel, tea.Cmd) {
	initial := ""
	switch {
	case m.selection.From != nil && m.selection.To != nil:
		initial = parser.FormatDate(m.selection.From) + " " + parser.FormatDate(m.selection.To)
	default:
		if from, to := filter.DefaultRange(m.rows); from != nil && to != nil {
			initial = parser.FormatDate(from) + " " + parser.FormatDate(to)
		} else {
			today := parser.Today()
			initial = parser.FormatDate(&today) + " " + parser.FormatDate(&today)
		}
	}
	return m.openPrompt(promptDateRange, "Date range (start end, blank clears)", initial, nil)
}

// commitPrompt applies the prompt value and closes the overlay
func (m DashboardModel) commitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.prompt.input.Value())
	kind, row := m.prompt.kind, m.prompt.row
	column := m.prompt.column
	m.prompt = promptState{}
	m.focus = m.prevFocus
	m.errMsg = ""

	switch kind {
	case promptEditCell:
		if err := m.store.SetCell(row, column, value); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.dirty = true
		m.statusMsg = fmt.Sprintf("Updated %s (press S to save)", column)
		return m.recompute(), nil

	case promptDateRange:
		return m.applyDateRange(value), nil

	case promptDeleteRow:
		if norm := models.Normalize(value); norm != "y" && norm != "yes" {
			m.statusMsg = "Delete cancelled"
			return m, nil
		}
		if err := m.store.DeleteRow(row); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.dirty = false
		m.statusMsg = fmt.Sprintf("Deleted row %d", row+1)
		return m.recompute(), nil

	case promptAddColumn:
		name, typ, err := parseColumnSpec(value)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if err := m.store.AddColumn(name, typ); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.dirty = false
		m.statusMsg = fmt.Sprintf("Added column %q", name)
		return m.recompute(), nil

	case promptDeleteColumn:
		if err := m.store.DeleteColumn(value); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.dirty = false
		m.statusMsg = fmt.Sprintf("Deleted column %q", value)
		return m.recompute(), nil

	case promptUpload:
		return m.runUpload(value), nil
	}
	return m, nil
}

// applyDateRange parses and applies the "start end" range input
func (m DashboardModel) applyDateRange(value string) DashboardModel {
	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		m.selection.From, m.selection.To = nil, nil
		m.statusMsg = "Date range cleared"
		return m.recompute()
	case 2:
		from, err := parser.ParseDate(fields[0])
		if err != nil {
			m.errMsg = err.Error()
			return m
		}
		to, err := parser.ParseDate(fields[1])
		if err != nil {
			m.errMsg = err.Error()
			return m
		}
		m.selection.From, m.selection.To = from, to
		m.statusMsg = "Date range applied"
		return m.recompute()
	}
	m.errMsg = "enter two dates (start end) or leave blank to clear"
	return m
}

// runUpload uploads the given paths for the selected gallery task
func (m DashboardModel) runUpload(value string) DashboardModel {
	if m.images == nil {
		m.errMsg = "image storage is not available"
		return m
	}
	paths := strings.Fields(value)
	if len(paths) == 0 || len(m.taskOptions) == 0 {
		m.errMsg = "give at least one file path"
		return m
	}

	task := m.taskOptions[m.galleryTask]
	results := m.images.UploadForTask(context.Background(), task, paths)

	uploaded, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			m.errMsg = r.Err.Error()
		} else {
			uploaded++
		}
	}
	m.statusMsg = fmt.Sprintf("Uploaded %d image(s), %d failed", uploaded, failed)
	return m.loadGallery()
}

// toggleSidebarValue flips membership of the highlighted value in the
// current dimension's selection
func (m DashboardModel) toggleSidebarValue() DashboardModel {
	opts := m.sidebarOptions()
	if len(opts) == 0 || m.sidebarItem >= len(opts) {
		return m
	}
	value := opts[m.sidebarItem]
	dim := filter.Dimensions[m.sidebarDim]

	current := m.selection.Set(dim)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}
	m.selection.SetValues(dim, next)
	return m.recompute()
}

// moveCursor moves the grid cursor, clamped to the visible rows and the
// table's columns
func (m DashboardModel) moveCursor(dr, dc int) DashboardModel {
	if len(m.visible) > 0 {
		m.cursorRow = clamp(m.cursorRow+dr, 0, len(m.visible)-1)
	}
	if n := len(m.store.Table.Columns); n > 0 {
		m.cursorCol = clamp(m.cursorCol+dc, 0, n-1)
	}
	return m
}

// addRow appends a defaulted row and moves the cursor to it when visible
func (m DashboardModel) addRow() DashboardModel {
	idx := m.store.AddRow()
	m.dirty = true
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Added row %d (press S to save)", idx+1)
	m = m.recompute()
	for vi, ti := range m.visibleIdx {
		if ti == idx {
			m.cursorRow = vi
			break
		}
	}
	return m
}

// save persists the table to its backing file
func (m DashboardModel) save() DashboardModel {
	if err := m.store.Save(); err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.dirty = false
	m.errMsg = ""
	m.statusMsg = "Saved " + m.store.Path
	return m
}

// recompute rebuilds every derived view from the table. All panels render
// from this state, so one pass after each change keeps them agreed.
func (m DashboardModel) recompute() DashboardModel {
	table := m.store.Table
	m.missing = table.MissingColumns(sheet.RequiredColumns...)
	m.rows = table.Snapshot()

	m.visible = nil
	m.visibleIdx = nil
	for i, row := range m.rows {
		if m.selection.Matches(row) {
			m.visible = append(m.visible, row)
			m.visibleIdx = append(m.visibleIdx, i)
		}
	}

	today := parser.Today()
	m.segments = gantt.Build(m.visible, m.grouping, today)
	m.summary = metrics.Summarize(m.rows, m.visible, today)
	m.taskOptions = uniqueTasks(m.rows)

	if len(m.visible) > 0 {
		m.cursorRow = clamp(m.cursorRow, 0, len(m.visible)-1)
	} else {
		m.cursorRow = 0
	}
	if n := len(table.Columns); n > 0 {
		m.cursorCol = clamp(m.cursorCol, 0, n-1)
	} else {
		m.cursorCol = 0
	}
	if opts := m.sidebarOptions(); len(opts) > 0 {
		m.sidebarItem = clamp(m.sidebarItem, 0, len(opts)-1)
	} else {
		m.sidebarItem = 0
	}
	if len(m.taskOptions) > 0 {
		m.galleryTask = clamp(m.galleryTask, 0, len(m.taskOptions)-1)
	} else {
		m.galleryTask = 0
	}

	return m.loadGallery()
}

// loadGallery refreshes the image list for the selected gallery task
func (m DashboardModel) loadGallery() DashboardModel {
	m.gallery = nil
	m.galleryTotal = 0
	if m.images == nil || len(m.taskOptions) == 0 {
		return m
	}

	records, err := m.images.Gallery(m.taskOptions[m.galleryTask])
	if err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.gallery = records
	if count, err := db.CountImages(); err == nil {
		m.galleryTotal = count
	}
	return m
}

// sidebarOptions returns the value list of the sidebar's current dimension
func (m DashboardModel) sidebarOptions() []string {
	return filter.Options(m.rows, filter.Dimensions[m.sidebarDim])
}

// uniqueTasks returns the non-blank Task values in first-appearance order
func uniqueTasks(rows []models.TaskRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		v := strings.TrimSpace(r.Task)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// columnOptions returns the editor's suggestion list for a column: the fixed
// vocabularies for the status columns, existing values for the grouping
// columns, nothing otherwise
func columnOptions(rows []models.TaskRow, column string) []string {
	switch column {
	case sheet.ColStatus:
		return models.StatusOptions
	case sheet.ColOrderStatus:
		return models.OrderStatusOptions
	case sheet.ColActivity, sheet.ColItem, sheet.ColTask, sheet.ColRoom:
		seen := make(map[string]struct{})
		var out []string
		for _, r := range rows {
			var v string
			switch column {
			case sheet.ColActivity:
				v = r.Activity
			case sheet.ColItem:
				v = r.Item
			case sheet.ColTask:
				v = r.Task
			case sheet.ColRoom:
				v = r.Room
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		sort.Strings(out)
		return out
	}
	return nil
}

// parseColumnSpec splits "Name" or "Name:type" into a column definition
func parseColumnSpec(value string) (string, sheet.ColumnType, error) {
	name, typeName, found := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", sheet.TypeText, errors.New("column name must not be empty")
	}
	if !found {
		return name, sheet.TypeText, nil
	}
	typ, err := sheet.ParseColumnType(typeName)
	if err != nil {
		return "", sheet.TypeText, err
	}
	return name, typ, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
