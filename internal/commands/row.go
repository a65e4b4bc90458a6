package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/sheet"
)

var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Remove spreadsheet rows",
}

var rowRmCmd = &cobra.Command{
	Use:   "rm [row]",
	Short: "Remove a row by its 1-based number and save",
	Args:  cobra.ExactArgs(1),
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

		task := store.Table.Cell(row-1, sheet.ColTask)
		if err := store.DeleteRow(row - 1); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if task == "" {
			task = "(no task name)"
		}
		fmt.Printf("✅ Removed row %d: %s\n", row, task)
	},
}

func init() {
	rowCmd.AddCommand(rowRmCmd)
}
