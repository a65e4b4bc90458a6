package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/sheet"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Add or remove spreadsheet columns",
}

var columnAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a column and save",
	Long: `Add a column to the spreadsheet. Existing rows get the type's default
value: empty for text, 0 for integer and float, blank for date.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		typeName, _ := cmd.Flags().GetString("type")
		typ, err := sheet.ParseColumnType(typeName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.AddColumn(args[0], typ); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Added %s column %q\n", typ, args[0])
	},
}

var columnRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a column and save",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.DeleteColumn(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Removed column %q\n", args[0])
	},
}

func init() {
	columnAddCmd.Flags().String("type", "text", "Column type: text, integer, float, or date")
	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnRmCmd)
}
