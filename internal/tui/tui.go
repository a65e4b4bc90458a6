package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmbp/sitedeck/internal/images"
	"github.com/cmbp/sitedeck/internal/sheet"
)

// RunDashboard starts the interactive dashboard TUI
func RunDashboard(store *sheet.Store, svc *images.Service) error {
	model := NewDashboardModel(store, svc)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	if m, ok := finalModel.(DashboardModel); ok && m.dirty {
		fmt.Printf("⚠ Unsaved changes were not written to %s\n", store.Path)
	}

	return nil
}
