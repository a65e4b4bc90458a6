package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/filter"
	"github.com/cmbp/sitedeck/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks from the timeline spreadsheet",
	Long:    "List task rows with optional filters for activity, item, task, room, statuses, and date ranges",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		rows := store.Table.Snapshot()
		if len(rows) == 0 {
			fmt.Println("No rows in " + store.Path + ". Use 'sitedeck add' to create the first task.")
			return
		}

		sel, err := selectionFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		visible := filter.Apply(rows, sel)
		if len(visible) == 0 {
			fmt.Println("No tasks match the current filters.")
			return
		}

		fmt.Printf("%-4s %-14s %-14s %-26s %-12s %-13s %-12s %-11s %-11s %s\n",
			"#", "ACTIVITY", "ITEM", "TASK", "ROOM", "STATUS", "ORDER", "START", "END", "PROG")
		fmt.Println(strings.Repeat("-", 126))

		for i, t := range visible {
			fmt.Printf("%-4d %-14s %-14s %-26s %-12s %-13s %-12s %-11s %-11s %s%%\n",
				i+1,
				clip(t.Activity, 14),
				clip(t.Item, 14),
				clip(t.Task, 26),
				clip(t.Room, 12),
				clip(t.Status, 13),
				clip(t.OrderStatus, 12),
				parser.FormatDate(t.Start),
				parser.FormatDate(t.End),
				parser.FormatProgress(t.Progress))
		}

		fmt.Println()
		fmt.Printf("%d of %d rows • %s\n", len(visible), len(rows), sel.Summary())
	},
}

// addFilterFlags registers the shared row filter flags
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("activity", nil, "Filter by activity (repeatable)")
	cmd.Flags().StringSlice("item", nil, "Filter by item (repeatable)")
	cmd.Flags().StringSlice("task", nil, "Filter by task (repeatable)")
	cmd.Flags().StringSlice("room", nil, "Filter by room (repeatable)")
	cmd.Flags().StringSlice("status", nil, "Filter by status (repeatable)")
	cmd.Flags().StringSlice("order-status", nil, "Filter by order status (repeatable)")
	cmd.Flags().String("from", "", "Keep rows starting on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Keep rows ending on or before this date (YYYY-MM-DD)")
	cmd.Flags().Bool("hide-finished", false, "Hide finished and delivered rows")
}

// selectionFromFlags builds a row filter from the shared flags
func selectionFromFlags(cmd *cobra.Command) (filter.Selection, error) {
	sel := filter.NewSelection()

	activities, _ := cmd.Flags().GetStringSlice("activity")
	sel.SetValues(filter.DimActivity, activities)
	items, _ := cmd.Flags().GetStringSlice("item")
	sel.SetValues(filter.DimItem, items)
	tasks, _ := cmd.Flags().GetStringSlice("task")
	sel.SetValues(filter.DimTask, tasks)
	rooms, _ := cmd.Flags().GetStringSlice("room")
	sel.SetValues(filter.DimRoom, rooms)
	statuses, _ := cmd.Flags().GetStringSlice("status")
	sel.SetValues(filter.DimStatus, statuses)
	orderStatuses, _ := cmd.Flags().GetStringSlice("order-status")
	sel.SetValues(filter.DimOrderStatus, orderStatuses)

	hide, _ := cmd.Flags().GetBool("hide-finished")
	sel.ShowFinished = !hide

	if s, _ := cmd.Flags().GetString("from"); s != "" {
		from, err := parser.ParseDate(s)
		if err != nil {
			return sel, fmt.Errorf("invalid --from date: %w", err)
		}
		sel.From = from
	}
	if s, _ := cmd.Flags().GetString("to"); s != "" {
		to, err := parser.ParseDate(s)
		if err != nil {
			return sel, fmt.Errorf("invalid --to date: %w", err)
		}
		sel.To = to
	}

	return sel, nil
}

// clip truncates a value for fixed-width table output
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func init() {
	addFilterFlags(listCmd)
}
