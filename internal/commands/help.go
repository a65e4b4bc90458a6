package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for sitedeck",
	Long:  `Display detailed help for all sitedeck commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███████╗██╗████████╗███████╗██████╗ ███████╗ ██████╗██╗  ██╗
██╔════╝██║╚══██╔══╝██╔════╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
███████╗██║   ██║   █████╗  ██║  ██║█████╗  ██║     █████╔╝
╚════██║██║   ██║   ██╔══╝  ██║  ██║██╔══╝  ██║     ██╔═██╗
███████║██║   ██║   ███████╗██████╔╝███████╗╚██████╗██║  ██╗
╚══════╝╚═╝   ╚═╝   ╚══════╝╚═════╝ ╚══════╝ ╚═════╝╚═╝  ╚═╝

sitedeck - Construction Project Dashboard

COMMANDS:

  dashboard               Open the interactive dashboard (alias: ui)

    Keys:
      1-4           Switch panel: overview, timeline, table, gallery
      tab           Toggle the filter sidebar
      ↑↓←→ / hjkl   Navigate
      enter         Toggle a filter value / edit the selected cell
      f             Show or hide finished tasks
      d             Set the date range filter
      c             Clear all filters
      R / I / T     Group timeline by room / item / task
      s             Toggle status colors on the timeline
      a / x         Add / delete a row
      C / X         Add / delete a column
      [ / ]         Page the task grid
      S             Save pending cell edits
      u             Upload images for the selected task
      esc/q         Quit

  ls                      List task rows (alias: list)
    --activity            Filter by activity (repeatable)
    --item                Filter by item
    --task                Filter by task
    --room                Filter by room
    --status              Filter by status
    --order-status        Filter by order status
    --from                Keep rows starting on or after YYYY-MM-DD
    --to                  Keep rows ending on or before YYYY-MM-DD
    --hide-finished       Hide finished and delivered rows

  gantt                   Print the grouped timeline
    --by-room             Group by room as well
    --by-item             Group by item as well
    --by-task             Group by task as well
    (plus all ls filters)

  summary                 Show project metrics: counts, completion,
                          overdue, upcoming, per-activity distribution
    (plus all ls filters)

  add                     Append a task row and save
    --activity --item --task --room --status --order-status
    --start --end --progress

  set <row> <col> <val>   Edit one cell and save

  column add <name>       Add a column (--type text|integer|float|date)
  column rm <name>        Remove a column
  row rm <row>            Remove a row

  upload <task> <file..>  Upload task images to S3
  gallery <task>          List uploaded image URLs for a task

  version                 Show version information
  help                    Show this help

ENVIRONMENT:

  SITEDECK_DATA_FILE      Spreadsheet path (default construction_timeline.xlsx)
  SITEDECK_DB_PATH        Image metadata database (default images.db)
  SITEDECK_LOG_FILE       Log file path (default sitedeck.log)
  SITEDECK_LOG_LEVEL      Log level (default info)
  S3_BUCKET, S3_REGION    Image upload destination
  AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
                          Static credentials (optional; the default AWS
                          credential chain is used when unset)

`)
}
