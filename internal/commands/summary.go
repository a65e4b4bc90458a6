package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/filter"
	"github.com/cmbp/sitedeck/internal/metrics"
	"github.com/cmbp/sitedeck/internal/parser"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show project metrics",
	Long: `Show the dashboard metrics: overall counts and completion for the whole
spreadsheet, plus overdue tasks, upcoming tasks, and the per-activity
distribution for the filtered rows.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sel, err := selectionFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		rows := store.Table.Snapshot()
		visible := filter.Apply(rows, sel)
		summary := metrics.Summarize(rows, visible, parser.Today())

		fmt.Printf("Total Tasks:    %d\n", summary.Total)
		fmt.Printf("Finished:       %d\n", summary.Finished)
		fmt.Printf("In Progress:    %d\n", summary.InProgress)
		fmt.Printf("Not Declared:   %d\n", summary.NotDeclared)
		fmt.Printf("Completion:     %s\n", summary.CompletionLabel())

		fmt.Printf("\nOverdue (%d):\n", len(summary.Overdue))
		if len(summary.Overdue) == 0 {
			fmt.Println("  none")
		}
		for _, t := range summary.Overdue {
			fmt.Printf("  %-30s due %s (%s)\n", clip(t.Task, 30), parser.FormatDate(t.End), t.Status)
		}

		fmt.Printf("\nUpcoming in the next 7 days (%d):\n", len(summary.Upcoming))
		if len(summary.Upcoming) == 0 {
			fmt.Println("  none")
		}
		for _, t := range summary.Upcoming {
			fmt.Printf("  %-30s starts %s\n", clip(t.Task, 30), parser.FormatDate(t.Start))
		}

		fmt.Println("\nTask distribution by activity:")
		if len(summary.Distribution) == 0 {
			fmt.Println("  none")
		}
		for _, d := range summary.Distribution {
			fmt.Printf("  %-20s %-4d %s\n", clip(d.Activity, 20), d.Count, strings.Repeat("▪", d.Count))
		}

		fmt.Printf("\nActive Filters: %s\n", sel.Summary())
	},
}

func init() {
	addFilterFlags(summaryCmd)
}
