package parser

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical cell format for date columns. Cells are
// rewritten to this layout on load so later parses are cheap and stable.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when coercing a date cell. Day-first
// slash dates win over month-first ones, matching how dates are entered
// throughout the app (dd/mm/yyyy).
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01-02-06",
	"1-2-06",
	time.RFC3339,
}

// ParseDate parses a date cell value.
// Supported formats:
// - 2006-01-02 (canonical), optionally with a time part
// - dd/mm/yyyy and d/m/yyyy
// - dd-mm-yyyy, and the short mm-dd-yy form xlsx viewers render by default
// - RFC3339
// Returns nil with no error for a blank cell.
func ParseDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
			return &d, nil
		}
	}

	return nil, fmt.Errorf("unrecognized date %q", input)
}

// FormatDate renders a date in the canonical cell layout. Nil becomes the
// empty cell.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// Today returns the current date truncated to midnight in local time. All
// "overdue"/"upcoming" comparisons are done against this value.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
