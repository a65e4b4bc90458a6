package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive project dashboard",
	Long: `Open the full-screen dashboard with the project timeline, metrics,
the editable task grid, and the per-task image gallery.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		svc, err := imageService(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := tui.RunDashboard(store, svc); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
