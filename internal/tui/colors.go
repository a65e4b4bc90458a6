package tui

import "github.com/cmbp/sitedeck/internal/models"

// Color constants for the sitedeck TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#141A26" // Dark slate
	ColorBorder         = "#3A4254" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E8ECF4" // Primary text (headers, cell values, titles)
	ColorSecondaryText = "#AAB3C5" // Secondary text - muted slate grey
	ColorDisabledText  = "#6A7184" // Disabled/muted text
	ColorPlaceholder   = "#AAB3C5" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Amber hard-hat theme)
	ColorAccentMain   = "#F59E0B" // Title, accent elements, active borders
	ColorAccentBright = "#FBBF24" // Highlights, selected cells, current panel

	// State Colors
	ColorError   = "#EF4444" // Validation errors, overdue tasks
	ColorSuccess = "#22C55E" // Success, finished tasks
	ColorWarning = "#F59E0B" // Warnings, unsaved changes
)

// statusColor returns the text color for a task status in the grid
func statusColor(status string) string {
	switch models.Normalize(status) {
	case "finished", "delivered":
		return ColorSuccess
	case "in progress":
		return ColorAccentBright
	case "not delivered":
		return ColorError
	case "not started":
		return ColorSecondaryText
	default:
		return ColorPrimaryText
	}
}
