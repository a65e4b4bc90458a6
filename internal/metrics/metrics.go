// Package metrics computes the dashboard's KPI numbers and insight lists.
// Counts and completion run over the whole table; overdue, upcoming and the
// per-activity distribution run over the filtered view.
package metrics

import (
	"sort"
	"strconv"
	"time"

	"github.com/cmbp/sitedeck/internal/models"
)

// declaredStatuses are the statuses counted as declared; anything else
// lands in the Not Declared bucket.
var declaredStatuses = map[string]struct{}{
	"finished":    {},
	"in progress": {},
	"delivered":   {},
	"not started": {},
}

// ActivityCount is one bar of the distribution chart.
type ActivityCount struct {
	Activity string
	Count    int
}

// Summary carries everything the overview panels display.
type Summary struct {
	Total         int
	Finished      int
	InProgress    int
	NotDeclared   int
	CompletionPct float64

	Overdue      []models.TaskRow
	Upcoming     []models.TaskRow
	Distribution []ActivityCount
}

// CompletionLabel renders the completion percentage with one decimal.
func (s Summary) CompletionLabel() string {
	return strconv.FormatFloat(s.CompletionPct, 'f', 1, 64) + "%"
}

// Summarize computes the dashboard summary. all is the full table, filtered
// the current view; today must be midnight-truncated. A task is overdue when
// its end date lies before today and it is not finished, upcoming when it
// starts within the next seven days. Tasks without the relevant date are
// excluded from both.
func Summarize(all, filtered []models.TaskRow, today time.Time) Summary {
	var s Summary
	s.Total = len(all)
	for _, t := range all {
		norm := models.Normalize(t.Status)
		switch norm {
		case "finished":
			s.Finished++
		case "in progress":
			s.InProgress++
		}
		if _, ok := declaredStatuses[norm]; !ok {
			s.NotDeclared++
		}
	}
	if s.Total > 0 {
		s.CompletionPct = float64(s.Finished) / float64(s.Total) * 100
	}

	horizon := today.AddDate(0, 0, 7)
	counts := make(map[string]int)
	for _, t := range filtered {
		if t.End != nil && t.End.Before(today) && !t.IsFinished() {
			s.Overdue = append(s.Overdue, t)
		}
		if t.Start != nil && !t.Start.Before(today) && !t.Start.After(horizon) {
			s.Upcoming = append(s.Upcoming, t)
		}
		if models.Normalize(t.Activity) != "" {
			counts[t.Activity]++
		}
	}
	for activity, count := range counts {
		s.Distribution = append(s.Distribution, ActivityCount{Activity: activity, Count: count})
	}
	sort.Slice(s.Distribution, func(i, j int) bool {
		return s.Distribution[i].Activity < s.Distribution[j].Activity
	})
	return s
}
