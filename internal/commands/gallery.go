package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery [task]",
	Short: "List uploaded image URLs for a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := imageService(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		records, err := svc.Gallery(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(records) == 0 {
			fmt.Printf("No images found for task %q\n", args[0])
			return
		}

		fmt.Printf("Images for task %q:\n", args[0])
		for i, rec := range records {
			fmt.Printf("%3d. %s  (uploaded %s)\n", i+1, rec.ImageURL, rec.UploadedAt.Format("2006-01-02 15:04"))
		}
	},
}
