package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmbp/sitedeck/internal/config"
	"github.com/cmbp/sitedeck/internal/db"
	"github.com/cmbp/sitedeck/internal/images"
	"github.com/cmbp/sitedeck/internal/logging"
	"github.com/cmbp/sitedeck/internal/sheet"
	"github.com/cmbp/sitedeck/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sitedeck",
	Short: "A construction project dashboard in the terminal",
	Long: `sitedeck turns a shared construction timeline spreadsheet into a live
dashboard: a Gantt timeline, project metrics, an editable task grid, and an
image gallery per task. Run 'sitedeck dashboard' for the interactive view or
use the subcommands for scripting.`,
}

// initConfig loads configuration and logging once; panics on failure
func initConfig() {
	if cfg != nil {
		return
	}
	c, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(c.Log); err != nil {
		panic(err)
	}
	cfg = c
}

// openStore loads the timeline spreadsheet named by the configuration
func openStore() (*sheet.Store, error) {
	initConfig()
	return sheet.Load(cfg.DataFile)
}

// imageService wires the gallery database and the S3 uploader. Without S3
// credentials the service still serves the gallery; uploads report that
// storage is not configured.
func imageService(ctx context.Context) (*images.Service, error) {
	initConfig()
	if err := db.Initialize(cfg.DatabasePath); err != nil {
		return nil, err
	}
	uploader, err := storage.NewS3Uploader(ctx, cfg.S3)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return images.NewService(nil), nil
		}
		return nil, err
	}
	return images.NewService(uploader), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitedeck %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(ganttCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(rowCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
