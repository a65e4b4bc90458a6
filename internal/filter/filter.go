// Package filter narrows the task table by the user's sidebar selections.
// All text matching happens on normalized (trimmed, lowercased) values, so
// the stored display casing never affects results.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/cmbp/sitedeck/internal/models"
	"github.com/cmbp/sitedeck/internal/parser"
)

// Dimension identifies one filterable column.
type Dimension int

const (
	DimActivity Dimension = iota
	DimItem
	DimTask
	DimRoom
	DimStatus
	DimOrderStatus
)

// Dimensions lists every filterable dimension in sidebar order.
var Dimensions = []Dimension{DimActivity, DimItem, DimTask, DimRoom, DimStatus, DimOrderStatus}

func (d Dimension) String() string {
	switch d {
	case DimActivity:
		return "Activity"
	case DimItem:
		return "Item"
	case DimTask:
		return "Task"
	case DimRoom:
		return "Room"
	case DimStatus:
		return "Status"
	case DimOrderStatus:
		return "Order Status"
	}
	return "Unknown"
}

// value extracts the dimension's field from a row.
func (d Dimension) value(t models.TaskRow) string {
	switch d {
	case DimActivity:
		return t.Activity
	case DimItem:
		return t.Item
	case DimTask:
		return t.Task
	case DimRoom:
		return t.Room
	case DimStatus:
		return t.Status
	case DimOrderStatus:
		return t.OrderStatus
	}
	return ""
}

// Selection is the explicit, request-scoped filter state. A nil or empty set
// for a dimension means "no restriction"; From/To bound the date range when
// set. The zero value hides finished tasks; use NewSelection for the
// dashboard default.
type Selection struct {
	Activities    []string
	Items         []string
	Tasks         []string
	Rooms         []string
	Statuses      []string
	OrderStatuses []string
	ShowFinished  bool
	From          *time.Time
	To            *time.Time
}

// NewSelection returns the dashboard's initial filter state: nothing
// selected, finished tasks visible.
func NewSelection() Selection {
	return Selection{ShowFinished: true}
}

// Set returns the selected set for a dimension.
func (s *Selection) Set(d Dimension) []string {
	switch d {
	case DimActivity:
		return s.Activities
	case DimItem:
		return s.Items
	case DimTask:
		return s.Tasks
	case DimRoom:
		return s.Rooms
	case DimStatus:
		return s.Statuses
	case DimOrderStatus:
		return s.OrderStatuses
	}
	return nil
}

// SetValues replaces the selected set for a dimension.
func (s *Selection) SetValues(d Dimension, values []string) {
	switch d {
	case DimActivity:
		s.Activities = values
	case DimItem:
		s.Items = values
	case DimTask:
		s.Tasks = values
	case DimRoom:
		s.Rooms = values
	case DimStatus:
		s.Statuses = values
	case DimOrderStatus:
		s.OrderStatuses = values
	}
}

// Clear resets every selection and the date range, keeping finished tasks
// visible.
func (s *Selection) Clear() {
	*s = NewSelection()
}

// member reports normalized membership; an empty set admits everything.
func member(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	norm := models.Normalize(value)
	for _, candidate := range set {
		if models.Normalize(candidate) == norm {
			return true
		}
	}
	return false
}

// Matches reports whether a single row satisfies the whole conjunction.
func (s Selection) Matches(t models.TaskRow) bool {
	for _, d := range Dimensions {
		if !member(s.Set(d), d.value(t)) {
			return false
		}
	}
	if !s.ShowFinished && t.IsDeliveredOrFinished() {
		return false
	}
	if s.From != nil && (t.Start == nil || t.Start.Before(*s.From)) {
		return false
	}
	if s.To != nil && (t.End == nil || t.End.After(*s.To)) {
		return false
	}
	return true
}

// Apply returns the rows satisfying the selection, preserving input order.
func Apply(rows []models.TaskRow, sel Selection) []models.TaskRow {
	out := make([]models.TaskRow, 0, len(rows))
	for _, row := range rows {
		if sel.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// Options returns the sorted unique normalized values present for a
// dimension, skipping blanks. These feed the multi-select lists and the
// editor's value cycling.
func Options(rows []models.TaskRow, d Dimension) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		v := models.Normalize(d.value(row))
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DefaultRange returns the earliest Start and latest End across the rows,
// the natural initial date range for the picker. Either bound is nil when no
// row carries a parseable date for it.
func DefaultRange(rows []models.TaskRow) (*time.Time, *time.Time) {
	var from, to *time.Time
	for _, row := range rows {
		if row.Start != nil && (from == nil || row.Start.Before(*from)) {
			start := *row.Start
			from = &start
		}
		if row.End != nil && (to == nil || row.End.After(*to)) {
			end := *row.End
			to = &end
		}
	}
	return from, to
}

// titleCase capitalizes each space-separated word of a normalized value for
// display in the active-filter summary.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func titleCaseAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = titleCase(v)
	}
	return out
}

// Summary renders the active filters as one line for the dashboard footer,
// or "No filters applied." when nothing is set.
func (s Selection) Summary() string {
	var parts []string
	if len(s.Activities) > 0 {
		parts = append(parts, "Activities: "+strings.Join(titleCaseAll(s.Activities), ", "))
	}
	if len(s.Items) > 0 {
		parts = append(parts, "Items: "+strings.Join(titleCaseAll(s.Items), ", "))
	}
	if len(s.Tasks) > 0 {
		parts = append(parts, "Tasks: "+strings.Join(titleCaseAll(s.Tasks), ", "))
	}
	if len(s.Rooms) > 0 {
		parts = append(parts, "Rooms: "+strings.Join(titleCaseAll(s.Rooms), ", "))
	}
	if len(s.Statuses) > 0 {
		parts = append(parts, "Status: "+strings.Join(s.Statuses, ", "))
	}
	if len(s.OrderStatuses) > 0 {
		parts = append(parts, "Order Status: "+strings.Join(s.OrderStatuses, ", "))
	}
	if s.From != nil && s.To != nil {
		parts = append(parts, "Date Range: "+parser.FormatDate(s.From)+" to "+parser.FormatDate(s.To))
	} else if s.From != nil {
		parts = append(parts, "Date Range: from "+parser.FormatDate(s.From))
	} else if s.To != nil {
		parts = append(parts, "Date Range: until "+parser.FormatDate(s.To))
	}
	if len(parts) == 0 {
		return "No filters applied."
	}
	return strings.Join(parts, "; ")
}
