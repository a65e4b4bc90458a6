package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/filter"
	"github.com/cmbp/sitedeck/internal/gantt"
	"github.com/cmbp/sitedeck/internal/parser"
	"github.com/cmbp/sitedeck/internal/sheet"
)

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Print the grouped project timeline",
	Long: `Print the aggregated timeline rows the dashboard draws as Gantt bars.
Rows group by Activity; add rooms, items, or tasks to the grouping with flags.
In-progress groups split into a completed and a remaining part.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if missing := store.Table.MissingColumns(sheet.RequiredColumns...); len(missing) > 0 {
			fmt.Printf("Error: missing required columns: %s\n", strings.Join(missing, ", "))
			return
		}

		sel, err := selectionFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		grouping := gantt.Grouping{}
		grouping.ByRoom, _ = cmd.Flags().GetBool("by-room")
		grouping.ByItem, _ = cmd.Flags().GetBool("by-item")
		grouping.ByTask, _ = cmd.Flags().GetBool("by-task")

		visible := filter.Apply(store.Table.Snapshot(), sel)
		segments := gantt.Build(visible, grouping, parser.Today())
		if len(segments) == 0 {
			fmt.Println("No data to display for Gantt")
			return
		}

		fmt.Printf("Grouped by %s\n\n", grouping.Label())
		fmt.Printf("%-44s %-11s %-11s %-32s %s\n", "GROUP", "START", "END", "STATUS", "PROG")
		fmt.Println(strings.Repeat("-", 108))
		for _, s := range segments {
			fmt.Printf("%-44s %-11s %-11s %-32s %s\n",
				clip(s.Label, 44),
				parser.FormatDate(s.Start),
				parser.FormatDate(s.End),
				clip(s.Status, 32),
				s.Text)
		}
	},
}

func init() {
	ganttCmd.Flags().Bool("by-room", false, "Group by room as well")
	ganttCmd.Flags().Bool("by-item", false, "Group by item as well")
	ganttCmd.Flags().Bool("by-task", false, "Group by task as well")
	addFilterFlags(ganttCmd)
}
