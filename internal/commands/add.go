package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/sheet"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a task row and save",
	Long: `Append a row to the timeline spreadsheet and save it. Unset columns get
their defaults: status "Not Started", order status "Not Ordered", progress 0.

Example:
  sitedeck add --activity Construction --task "Paint bedroom" --room Bedroom \
    --status "In Progress" --start 2025-03-01 --end 2025-03-10 --progress 40`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		idx := store.AddRow()
		cells := []struct {
			flag   string
			column string
		}{
			{"activity", sheet.ColActivity},
			{"item", sheet.ColItem},
			{"task", sheet.ColTask},
			{"room", sheet.ColRoom},
			{"status", sheet.ColStatus},
			{"order-status", sheet.ColOrderStatus},
			{"start", sheet.ColStartDate},
			{"end", sheet.ColEndDate},
			{"progress", sheet.ColProgress},
		}
		for _, c := range cells {
			value, _ := cmd.Flags().GetString(c.flag)
			if value == "" {
				continue
			}
			if err := store.SetCell(idx, c.column, value); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		if err := store.Save(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task := store.Table.Cell(idx, sheet.ColTask)
		if task == "" {
			task = "(no task name)"
		}
		fmt.Printf("✅ Added row %d: %s\n", idx+1, task)
	},
}

func init() {
	addCmd.Flags().String("activity", "", "Activity the task belongs to")
	addCmd.Flags().String("item", "", "Item being worked on")
	addCmd.Flags().String("task", "", "Task name")
	addCmd.Flags().String("room", "", "Room the task applies to")
	addCmd.Flags().String("status", "", "Status: Finished, In Progress, Not Started, Delivered, Not Delivered")
	addCmd.Flags().String("order-status", "", "Order status: Ordered or Not Ordered")
	addCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	addCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	addCmd.Flags().String("progress", "", "Progress percent 0-100")
}
