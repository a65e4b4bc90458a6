// Package gantt turns task rows into renderable timeline segments. Rows are
// grouped, each group is aggregated to one bar, and in-progress bars are
// split into a completed and a remaining part sized by average progress.
package gantt

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cmbp/sitedeck/internal/models"
)

// Display statuses carried by segments. These drive bar colors and the
// chart legend.
const (
	DisplayFinished      = "Finished"
	DisplayDelayed       = "Delayed"
	DisplayInProgress    = "In Progress"
	DisplayCompletedPart = "In Progress (Completed part)"
	DisplayRemainingPart = "In Progress (Remaining part)"
	DisplayNeutral       = "Not Started / Delivered / Not Delivered"
)

// LegendStatuses lists the display statuses in legend order.
var LegendStatuses = []string{
	DisplayFinished,
	DisplayDelayed,
	DisplayCompletedPart,
	DisplayRemainingPart,
	DisplayNeutral,
}

// Grouping selects which columns, beyond Activity, define a bar.
type Grouping struct {
	ByRoom bool
	ByItem bool
	ByTask bool
}

// Label renders the grouping for the dashboard header.
func (g Grouping) Label() string {
	parts := []string{"Activity"}
	if g.ByRoom {
		parts = append(parts, "Room")
	}
	if g.ByItem {
		parts = append(parts, "Item")
	}
	if g.ByTask {
		parts = append(parts, "Task")
	}
	return strings.Join(parts, " + ")
}

// Segment is one renderable bar piece. Start or End may be nil when no row
// in the group carries the corresponding date.
type Segment struct {
	Label  string
	Start  *time.Time
	End    *time.Time
	Status string
	Text   string
}

type group struct {
	keys []string
	rows []models.TaskRow
}

func keyValues(t models.TaskRow, g Grouping) []string {
	keys := []string{t.Activity}
	if g.ByRoom {
		keys = append(keys, t.Room)
	}
	if g.ByItem {
		keys = append(keys, t.Item)
	}
	if g.ByTask {
		keys = append(keys, t.Task)
	}
	return keys
}

// aggregatedStatus applies the precedence Finished, Delayed, In Progress,
// then the neutral bucket. A group counts as finished when every row's
// status is Finished or the average progress reaches 100.
func aggregatedStatus(rows []models.TaskRow, avg float64, end *time.Time, today time.Time) string {
	allFinished := len(rows) > 0
	for _, t := range rows {
		if models.Normalize(t.Status) != models.Normalize(models.StatusFinished) {
			allFinished = false
			break
		}
	}
	if allFinished || avg >= 100 {
		return DisplayFinished
	}
	if end != nil && end.Before(today) && avg < 100 {
		return DisplayDelayed
	}
	for _, t := range rows {
		if t.IsInProgress() {
			return DisplayInProgress
		}
	}
	return DisplayNeutral
}

func progressText(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + "%"
}

// Build aggregates rows into sorted segments. Groups are ordered by their
// key values; today decides delay, so callers pass a midnight-truncated
// time.
func Build(rows []models.TaskRow, g Grouping, today time.Time) []Segment {
	if len(rows) == 0 {
		return nil
	}

	index := make(map[string]int)
	var groups []group
	for _, row := range rows {
		keys := keyValues(row, g)
		k := strings.Join(keys, "\x1f")
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{keys: keys})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].keys, groups[j].keys
		for x := range a {
			if a[x] != b[x] {
				return a[x] < b[x]
			}
		}
		return false
	})

	var segments []Segment
	for _, grp := range groups {
		var start, end *time.Time
		var sum float64
		for _, t := range grp.rows {
			if t.Start != nil && (start == nil || t.Start.Before(*start)) {
				s := *t.Start
				start = &s
			}
			if t.End != nil && (end == nil || t.End.After(*end)) {
				e := *t.End
				end = &e
			}
			sum += t.Progress
		}
		avg := sum / float64(len(grp.rows))
		status := aggregatedStatus(grp.rows, avg, end, today)
		label := strings.Join(grp.keys, " | ")

		if status == DisplayInProgress && avg > 0 && avg < 100 && start != nil && end != nil {
			split := start.Add(time.Duration(float64(end.Sub(*start)) * avg / 100))
			segments = append(segments,
				Segment{Label: label, Start: start, End: &split, Status: DisplayCompletedPart, Text: progressText(avg)},
				Segment{Label: label, Start: &split, End: end, Status: DisplayRemainingPart, Text: progressText(100 - avg)},
			)
			continue
		}
		segments = append(segments, Segment{Label: label, Start: start, End: end, Status: status, Text: progressText(avg)})
	}
	return segments
}

// Range returns the earliest start and latest end across segments, nil when
// no segment carries the bound.
func Range(segments []Segment) (*time.Time, *time.Time) {
	var from, to *time.Time
	for _, s := range segments {
		if s.Start != nil && (from == nil || s.Start.Before(*from)) {
			v := *s.Start
			from = &v
		}
		if s.End != nil && (to == nil || s.End.After(*to)) {
			v := *s.End
			to = &v
		}
	}
	return from, to
}

// ColorFor maps a display status to its bar color.
func ColorFor(status string) lipgloss.Color {
	switch status {
	case DisplayFinished:
		return lipgloss.Color("#008000")
	case DisplayDelayed:
		return lipgloss.Color("#FF0000")
	case DisplayCompletedPart, DisplayInProgress:
		return lipgloss.Color("#00008B")
	default:
		return lipgloss.Color("#D3D3D3")
	}
}
