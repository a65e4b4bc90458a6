package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [task] [file...]",
	Short: "Upload task images to S3",
	Long: `Upload one or more images (png, jpg, jpeg) for a task. Each uploaded
image is stored under a unique key and recorded for the task's gallery.

Requires S3_BUCKET, and credentials via AWS_ACCESS_KEY_ID and
AWS_SECRET_ACCESS_KEY or the default AWS credential chain.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
		if cfg.S3.Bucket == "" {
			fmt.Println("Error: image storage is not configured (set S3_BUCKET)")
			return
		}

		ctx := context.Background()
		svc, err := imageService(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		results := svc.UploadForTask(ctx, args[0], args[1:])
		uploaded := 0
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("✗ %s: %v\n", r.Filename, r.Err)
				continue
			}
			uploaded++
			fmt.Printf("✅ %s → %s\n", r.Filename, r.URL)
		}

		fmt.Printf("\nUploaded %d of %d image(s) for task %q\n", uploaded, len(results), args[0])
	},
}
