package models

import (
	"strings"
	"time"
)

// Canonical display values for the Status column.
const (
	StatusFinished     = "Finished"
	StatusInProgress   = "In Progress"
	StatusNotStarted   = "Not Started"
	StatusDelivered    = "Delivered"
	StatusNotDelivered = "Not Delivered"
)

// Canonical display values for the Order Status column.
const (
	OrderStatusOrdered    = "Ordered"
	OrderStatusNotOrdered = "Not Ordered"
)

// StatusOptions lists the selectable Status values in editor order.
var StatusOptions = []string{
	StatusFinished,
	StatusInProgress,
	StatusNotStarted,
	StatusDelivered,
	StatusNotDelivered,
}

// OrderStatusOptions lists the selectable Order Status values.
var OrderStatusOptions = []string{
	OrderStatusOrdered,
	OrderStatusNotOrdered,
}

// TaskRow is one record of the project task table, projected from the
// spreadsheet for filtering, timeline grouping and metrics. The stored
// display casing is kept as-is; comparisons go through Normalize.
type TaskRow struct {
	Activity    string
	Item        string
	Task        string // used as the identifier for image association
	Room        string
	Status      string
	OrderStatus string
	Start       *time.Time // nil when the cell was blank or unparseable
	End         *time.Time
	Progress    float64 // always within [0,100] after load
}

// Normalize lowercases and trims a text value for comparison. Status and
// dimension matching is always done on normalized values so that "  Finished "
// and "finished" are the same thing.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsFinished reports whether the status normalizes to "finished".
func (t TaskRow) IsFinished() bool {
	return Normalize(t.Status) == Normalize(StatusFinished)
}

// IsInProgress reports whether the status normalizes to "in progress".
func (t TaskRow) IsInProgress() bool {
	return Normalize(t.Status) == Normalize(StatusInProgress)
}

// IsDeliveredOrFinished reports whether the row counts as closed for the
// show-finished filter toggle.
func (t TaskRow) IsDeliveredOrFinished() bool {
	n := Normalize(t.Status)
	return n == Normalize(StatusFinished) || n == Normalize(StatusDelivered)
}
