package sheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/parser"
)

// Well-known column names of the task table. Anything else is a passthrough
// column that is kept verbatim and written back on save.
const (
	ColActivity    = "Activity"
	ColItem        = "Item"
	ColTask        = "Task"
	ColRoom        = "Room"
	ColStatus      = "Status"
	ColOrderStatus = "Order Status"
	ColStartDate   = "Start Date"
	ColEndDate     = "End Date"
	ColProgress    = "Progress"
)

// RequiredColumns must be present for the timeline and metrics panels to
// render. Their absence is reported as a warning for that render pass.
var RequiredColumns = []string{ColStartDate, ColEndDate, ColStatus, ColOrderStatus, ColProgress}

// ColumnType describes how cells of a column are coerced and saved.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeFloat
	TypeDate
)

// ParseColumnType parses a user-supplied column type name.
func ParseColumnType(s string) (ColumnType, error) {
	switch models.Normalize(s) {
	case "text", "string":
		return TypeText, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "number":
		return TypeFloat, nil
	case "date", "datetime":
		return TypeDate, nil
	}
	return TypeText, fmt.Errorf("unknown column type %q (use text, integer, float or date)", s)
}

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeDate:
		return "date"
	default:
		return "text"
	}
}

// defaultCell is the value a new cell of this type starts with.
func (t ColumnType) defaultCell() string {
	switch t {
	case TypeInteger:
		return "0"
	case TypeFloat:
		return "0"
	default:
		return ""
	}
}

// Column is one spreadsheet column: a trimmed header name plus the type used
// for coercion.
type Column struct {
	Name string
	Type ColumnType
}

// Table is the canonical in-memory task table. Cells are strings in their
// canonical form: dates as 2006-01-02, Progress as a number in [0,100].
// Every derived view (filtering, timeline, metrics) is recomputed from it.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// columnTypeFor assigns types to the well-known columns; everything else
// loads as text.
func columnTypeFor(name string) ColumnType {
	switch name {
	case ColStartDate, ColEndDate:
		return TypeDate
	case ColProgress:
		return TypeFloat
	default:
		return TypeText
	}
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// MissingColumns returns which of the given columns are absent, in the order
// asked for.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the cell value at a row for a named column, or "" when either
// does not exist.
func (t *Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// Date parses a date cell; nil when blank, unparseable or absent.
func (t *Table) Date(row int, column string) *time.Time {
	d, err := parser.ParseDate(t.Cell(row, column))
	if err != nil {
		return nil
	}
	return d
}

// Snapshot projects every row to a TaskRow for filtering and aggregation.
// Missing columns project to zero values; the caller decides whether that is
// acceptable via MissingColumns.
func (t *Table) Snapshot() []models.TaskRow {
	rows := make([]models.TaskRow, 0, len(t.Rows))
	for i := range t.Rows {
		rows = append(rows, models.TaskRow{
			Activity:    t.Cell(i, ColActivity),
			Item:        t.Cell(i, ColItem),
			Task:        t.Cell(i, ColTask),
			Room:        t.Cell(i, ColRoom),
			Status:      t.Cell(i, ColStatus),
			OrderStatus: t.Cell(i, ColOrderStatus),
			Start:       t.Date(i, ColStartDate),
			End:         t.Date(i, ColEndDate),
			Progress:    parser.ParseProgress(t.Cell(i, ColProgress)),
		})
	}
	return rows
}

// coerceCell rewrites a raw cell into canonical form for its column.
func coerceCell(col Column, raw string) string {
	switch {
	case col.Type == TypeDate:
		d, err := parser.ParseDate(raw)
		if err != nil {
			return ""
		}
		return parser.FormatDate(d)
	case col.Name == ColProgress:
		return parser.FormatProgress(parser.ParseProgress(raw))
	case col.Name == ColStatus:
		if strings.TrimSpace(raw) == "" {
			return models.StatusNotStarted
		}
	case col.Name == ColOrderStatus:
		if strings.TrimSpace(raw) == "" {
			return models.OrderStatusNotOrdered
		}
	}
	return raw
}
