package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set [row] [column] [value]",
	Short: "Edit one cell and save",
	Long: `Edit a single cell addressed by its 1-based row number (as printed by
'sitedeck ls' without filters) and column name, then save the spreadsheet.

Examples:
  sitedeck set 3 Status "In Progress"
  sitedeck set 3 "End Date" 2025-04-30
  sitedeck set 3 Progress 60`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		row, err := strconv.Atoi(args[0])
		if err != nil || row < 1 {
			fmt.Printf("Error: invalid row number '%s'\n", args[0])
			return
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.SetCell(row-1, args[1], args[2]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.Save(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Updated %s in row %d: %s\n", args[1], row, store.Table.Cell(row-1, args[1]))
	},
}
