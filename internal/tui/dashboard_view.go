package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmbp/sitedeck/internal/filter"
	"github.com/cmbp/sitedeck/internal/gantt"
	"github.com/cmbp/sitedeck/internal/parser"
	"github.com/cmbp/sitedeck/internal/sheet"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain))
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	accentTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain))

	selectedCellStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorCardBackground)).
				Background(lipgloss.Color(ColorAccentBright))
)

// panelBorder returns the outer border style, highlighted when focused
func panelBorder(width int, focused bool) lipgloss.Style {
	color := ColorBorder
	if focused {
		color = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Width(width)
}

// View renders the TUI
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sidebarWidth := 26
	mainWidth := m.width - sidebarWidth - 3
	if mainWidth < 40 {
		mainWidth = 40
	}

	var main string
	switch m.panel {
	case PanelTimeline:
		main = m.renderTimeline(mainWidth)
	case PanelTable:
		main = m.renderTable(mainWidth)
	case PanelGallery:
		main = m.renderGallery(mainWidth)
	default:
		main = m.renderOverview(mainWidth)
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSidebar(sidebarWidth),
		" ",
		main,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)
}

// renderHeader renders the title line, the KPI strip and the completion bar
func (m DashboardModel) renderHeader() string {
	var b strings.Builder

	tabs := []string{"1 Overview", "2 Timeline", "3 Table", "4 Gallery"}
	for i := range tabs {
		if Panel(i) == m.panel {
			tabs[i] = panelTitleStyle.Render("[" + tabs[i] + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + tabs[i] + " ")
		}
	}

	b.WriteString(titleStyle.Render("SITEDECK"))
	b.WriteString(dimStyle.Render("  " + m.store.Path + "  "))
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	s := m.summary
	b.WriteString(labelStyle.Render("Total Tasks "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", s.Total)))
	b.WriteString(labelStyle.Render("   In Progress "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", s.InProgress)))
	b.WriteString(labelStyle.Render("   Finished "))
	b.WriteString(successStyle.Render(fmt.Sprintf("%d", s.Finished)))
	b.WriteString(labelStyle.Render("   Not Declared "))
	b.WriteString(warnStyle.Render(fmt.Sprintf("%d", s.NotDeclared)))
	b.WriteString("\n")

	pct := s.CompletionPct / 100
	if pct > 1 {
		pct = 1
	}
	b.WriteString(labelStyle.Render("Overall Completion "))
	b.WriteString(m.completion.ViewAs(pct))
	b.WriteString(" " + valueStyle.Render(s.CompletionLabel()))
	b.WriteString("\n")

	return b.String()
}

// renderSidebar renders the filter sidebar
func (m DashboardModel) renderSidebar(width int) string {
	var b strings.Builder
	inner := width - 4

	b.WriteString(panelTitleStyle.Render("Filters"))
	b.WriteString("\n\n")

	dim := filter.Dimensions[m.sidebarDim]
	b.WriteString(labelStyle.Render("◀ ") + valueStyle.Render(dim.String()) + labelStyle.Render(" ▶"))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d", m.sidebarDim+1, len(filter.Dimensions))))
	b.WriteString("\n")

	opts := m.sidebarOptions()
	selected := m.selection.Set(dim)
	if len(opts) == 0 {
		b.WriteString(dimStyle.Render("(no values)"))
		b.WriteString("\n")
	} else {
		maxRows := 10
		start := 0
		if len(opts) > maxRows {
			start = clamp(m.sidebarItem-maxRows/2, 0, len(opts)-maxRows)
		}
		end := start + maxRows
		if end > len(opts) {
			end = len(opts)
		}
		if start > 0 {
			b.WriteString(dimStyle.Render("  ↑ more"))
			b.WriteString("\n")
		}
		for i := start; i < end; i++ {
			mark := "[ ]"
			if contains(selected, opts[i]) {
				mark = "[x]"
			}
			line := mark + " " + truncate(opts[i], inner-6)
			switch {
			case i == m.sidebarItem && m.focus == FocusSidebar:
				b.WriteString(accentTextStyle.Render("▸ " + line))
			case contains(selected, opts[i]):
				b.WriteString("  " + successStyle.Render(line))
			default:
				b.WriteString("  " + labelStyle.Render(line))
			}
			b.WriteString("\n")
		}
		if end < len(opts) {
			b.WriteString(dimStyle.Render("  ↓ more"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.selection.ShowFinished {
		b.WriteString(labelStyle.Render("finished: ") + valueStyle.Render("shown") + dimStyle.Render(" (f)"))
	} else {
		b.WriteString(labelStyle.Render("finished: ") + warnStyle.Render("hidden") + dimStyle.Render(" (f)"))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("group: ") + valueStyle.Render(truncate(m.grouping.Label(), inner-10)) + dimStyle.Render(" (R/I/T)"))
	b.WriteString("\n")

	if m.colorByStatus {
		b.WriteString(labelStyle.Render("colors: ") + valueStyle.Render("by status") + dimStyle.Render(" (s)"))
	} else {
		b.WriteString(labelStyle.Render("colors: ") + dimStyle.Render("off (s)"))
	}
	b.WriteString("\n")

	switch {
	case m.selection.From != nil && m.selection.To != nil:
		b.WriteString(labelStyle.Render("range: ") + valueStyle.Render(
			parser.FormatDate(m.selection.From)+" → "+parser.FormatDate(m.selection.To)))
	case m.selection.From != nil || m.selection.To != nil:
		b.WriteString(labelStyle.Render("range: ") + valueStyle.Render("partial"))
	default:
		b.WriteString(dimStyle.Render("range: all dates (d)"))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("(c) clear filters"))

	return panelBorder(width, m.focus == FocusSidebar).Render(b.String())
}

// contains reports exact membership; sidebar options and selections share
// normalized values, so plain equality is enough here
func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// renderOverview renders the insights panel: overdue, distribution, upcoming
func (m DashboardModel) renderOverview(width int) string {
	if len(m.missing) > 0 {
		return m.renderMissingWarning(width)
	}

	var b strings.Builder
	inner := width - 4
	s := m.summary

	b.WriteString(panelTitleStyle.Render("Overdue Tasks: "))
	if len(s.Overdue) == 0 {
		b.WriteString(successStyle.Render("0"))
		b.WriteString("\n")
	} else {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d", len(s.Overdue))))
		b.WriteString("\n")
		for i, t := range s.Overdue {
			if i == 6 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  +%d more", len(s.Overdue)-i)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("  %s  %s  %s", parser.FormatDate(t.End), truncate(t.Task, 32), t.Status)
			b.WriteString(errorStyle.Render(truncate(line, inner)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(panelTitleStyle.Render("Task Distribution by Activity"))
	b.WriteString("\n")
	b.WriteString(m.renderDistribution(inner))
	b.WriteString("\n\n")

	b.WriteString(panelTitleStyle.Render("Upcoming Tasks (Next 7 Days)"))
	b.WriteString("\n")
	if len(s.Upcoming) == 0 {
		b.WriteString(dimStyle.Render("No upcoming tasks in the next 7 days."))
		b.WriteString("\n")
	} else {
		for i, t := range s.Upcoming {
			if i == 6 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  +%d more", len(s.Upcoming)-i)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("  %s  %s  %s", parser.FormatDate(t.Start), truncate(t.Task, 32), t.Activity)
			b.WriteString(labelStyle.Render(truncate(line, inner)))
			b.WriteString("\n")
		}
	}

	return panelBorder(width, m.focus == FocusMain && m.panel == PanelOverview).Render(b.String())
}

// renderDistribution renders the per-activity bar chart
func (m DashboardModel) renderDistribution(width int) string {
	if len(m.summary.Distribution) == 0 {
		return dimStyle.Render("No activity data.")
	}

	bc := barchart.New(width, 8)
	for _, d := range m.summary.Distribution {
		bc.Push(barchart.BarData{
			Label: truncate(d.Activity, 12),
			Values: []barchart.BarValue{
				{Name: d.Activity, Value: float64(d.Count), Style: barStyle},
			},
		})
	}
	bc.Draw()
	return bc.View()
}

// renderTimeline renders the Gantt panel
func (m DashboardModel) renderTimeline(width int) string {
	if len(m.missing) > 0 {
		return m.renderMissingWarning(width)
	}

	var b strings.Builder
	inner := width - 4

	b.WriteString(panelTitleStyle.Render("Project Timeline"))
	b.WriteString(dimStyle.Render("  grouped by " + m.grouping.Label()))
	b.WriteString("\n\n")

	if len(m.segments) == 0 {
		b.WriteString(dimStyle.Render("No data to display for Gantt"))
		return panelBorder(width, m.focus == FocusMain && m.panel == PanelTimeline).Render(b.String())
	}

	from, to := gantt.Range(m.segments)

	labelWidth := 24
	noteWidth := 26
	chartWidth := inner - labelWidth - noteWidth - 2
	if chartWidth < 10 {
		chartWidth = 10
	}

	// Group consecutive segments by bar label; split bars arrive adjacent.
	type barLine struct {
		label string
		segs  []gantt.Segment
	}
	var lines []barLine
	for _, s := range m.segments {
		if n := len(lines); n > 0 && lines[n-1].label == s.Label {
			lines[n-1].segs = append(lines[n-1].segs, s)
			continue
		}
		lines = append(lines, barLine{label: s.Label, segs: []gantt.Segment{s}})
	}

	maxLines := m.rowsPerPage + 4
	shown := lines
	if len(shown) > maxLines {
		shown = shown[:maxLines]
	}

	for _, line := range shown {
		b.WriteString(labelStyle.Render(pad(line.label, labelWidth)))
		b.WriteString(" ")
		b.WriteString(m.renderBar(line.segs, from, to, chartWidth))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(barNote(line.segs)))
		b.WriteString("\n")
	}
	if len(lines) > len(shown) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("+%d more groups", len(lines)-len(shown))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.colorByStatus {
		legend := make([]string, 0, len(gantt.LegendStatuses))
		for _, status := range gantt.LegendStatuses {
			swatch := lipgloss.NewStyle().Foreground(gantt.ColorFor(status)).Render("■")
			legend = append(legend, swatch+" "+status)
		}
		b.WriteString(helpStyle.Render(strings.Join(legend, "  ")))
	} else {
		b.WriteString(helpStyle.Render("status colors off (s restores)"))
	}

	return panelBorder(width, m.focus == FocusMain && m.panel == PanelTimeline).Render(b.String())
}

// renderBar renders one group's segments as scaled block runs
func (m DashboardModel) renderBar(segs []gantt.Segment, from, to *time.Time, width int) string {
	if from == nil || to == nil {
		return dimStyle.Render("(no schedule)")
	}
	span := to.Sub(*from)
	if span <= 0 {
		span = 24 * time.Hour
	}

	var b strings.Builder
	pos := 0
	for _, s := range segs {
		if s.Start == nil || s.End == nil {
			continue
		}
		startCell := scaleCell(s.Start.Sub(*from), span, width)
		endCell := scaleCell(s.End.Sub(*from), span, width)
		if endCell <= startCell {
			endCell = startCell + 1
		}
		if startCell > pos {
			b.WriteString(strings.Repeat(" ", startCell-pos))
			pos = startCell
		}
		if run := endCell - pos; run > 0 {
			color := lipgloss.Color(ColorAccentMain)
			if m.colorByStatus {
				color = gantt.ColorFor(s.Status)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", run)))
			pos = endCell
		}
	}
	if pos == 0 {
		return dimStyle.Render("(no schedule)")
	}
	return b.String()
}

// barNote renders the dates and progress text shown next to a bar
func barNote(segs []gantt.Segment) string {
	var start, end *time.Time
	for _, s := range segs {
		if s.Start != nil && (start == nil || s.Start.Before(*start)) {
			start = s.Start
		}
		if s.End != nil && (end == nil || s.End.After(*end)) {
			end = s.End
		}
	}
	if start == nil || end == nil {
		return segs[0].Text
	}
	return fmt.Sprintf("%s → %s %s", start.Format("01-02"), end.Format("01-02"), segs[0].Text)
}

func scaleCell(d, span time.Duration, width int) int {
	c := int(float64(width) * float64(d) / float64(span))
	return clamp(c, 0, width)
}

// renderTable renders the editable grid
func (m DashboardModel) renderTable(width int) string {
	var b strings.Builder
	inner := width - 4
	table := m.store.Table

	b.WriteString(panelTitleStyle.Render("Current Tasks Snapshot"))
	if m.dirty {
		b.WriteString(warnStyle.Render("  ● unsaved changes (S saves)"))
	}
	b.WriteString("\n\n")

	if len(table.Columns) == 0 {
		b.WriteString(dimStyle.Render("The table has no columns."))
		return panelBorder(width, m.focus == FocusMain && m.panel == PanelTable).Render(b.String())
	}

	numWidth := 4
	colWidth := clamp((inner-numWidth)/len(table.Columns)-1, 6, 18)

	b.WriteString(strings.Repeat(" ", numWidth+1))
	for ci, col := range table.Columns {
		header := pad(col.Name, colWidth)
		if ci == m.cursorCol && m.panel == PanelTable {
			b.WriteString(panelTitleStyle.Render(header))
		} else {
			b.WriteString(labelStyle.Bold(true).Render(header))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("No rows match the current filters."))
		b.WriteString("\n")
	}

	page := 0
	if m.rowsPerPage > 0 {
		page = m.cursorRow / m.rowsPerPage
	}
	start := page * m.rowsPerPage
	end := start + m.rowsPerPage
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for vi := start; vi < end; vi++ {
		tableIdx := m.visibleIdx[vi]
		b.WriteString(dimStyle.Render(pad(fmt.Sprintf("%d", tableIdx+1), numWidth)))
		b.WriteString(" ")
		for ci, col := range table.Columns {
			cell := pad(table.Cell(tableIdx, col.Name), colWidth)
			switch {
			case vi == m.cursorRow && ci == m.cursorCol && m.panel == PanelTable && m.focus == FocusMain:
				b.WriteString(selectedCellStyle.Render(cell))
			case col.Name == sheet.ColStatus:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(table.Cell(tableIdx, col.Name)))).Render(cell))
			default:
				b.WriteString(valueStyle.Bold(false).Render(cell))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if len(m.visible) > 0 {
		totalPages := (len(m.visible) + m.rowsPerPage - 1) / m.rowsPerPage
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("Page %d/%d (%d of %d rows)",
			page+1, totalPages, len(m.visible), len(m.rows))))
	}

	return panelBorder(width, m.focus == FocusMain && m.panel == PanelTable).Render(b.String())
}

// renderGallery renders the task image gallery
func (m DashboardModel) renderGallery(width int) string {
	var b strings.Builder
	inner := width - 4

	b.WriteString(panelTitleStyle.Render("Image Upload & Gallery"))
	b.WriteString("\n\n")

	if m.images == nil {
		b.WriteString(dimStyle.Render("Image storage is not available."))
		return panelBorder(width, m.focus == FocusMain && m.panel == PanelGallery).Render(b.String())
	}
	if len(m.taskOptions) == 0 {
		b.WriteString(dimStyle.Render("No tasks to associate images with."))
		return panelBorder(width, m.focus == FocusMain && m.panel == PanelGallery).Render(b.String())
	}

	b.WriteString(labelStyle.Render("Task:"))
	b.WriteString("\n")
	maxRows := 6
	start := 0
	if len(m.taskOptions) > maxRows {
		start = clamp(m.galleryTask-maxRows/2, 0, len(m.taskOptions)-maxRows)
	}
	end := start + maxRows
	if end > len(m.taskOptions) {
		end = len(m.taskOptions)
	}
	for i := start; i < end; i++ {
		name := truncate(m.taskOptions[i], inner-4)
		if i == m.galleryTask {
			b.WriteString(accentTextStyle.Render("▸ " + name))
		} else {
			b.WriteString(labelStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(panelTitleStyle.Render("Gallery for Selected Task"))
	b.WriteString("\n")
	if len(m.gallery) == 0 {
		b.WriteString(dimStyle.Render("No images found for the selected task."))
		b.WriteString("\n")
	} else {
		for i, record := range m.gallery {
			line := fmt.Sprintf("%2d. %s", i+1, truncate(record.ImageURL, inner-5))
			b.WriteString(valueStyle.Bold(false).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d image(s) for this task • %d stored in total", len(m.gallery), m.galleryTotal)))

	return panelBorder(width, m.focus == FocusMain && m.panel == PanelGallery).Render(b.String())
}

// renderMissingWarning renders the required-columns gate
func (m DashboardModel) renderMissingWarning(width int) string {
	msg := "Missing required columns: " + strings.Join(m.missing, ", ") +
		". The timeline and insights need them to render; re-add them in the table panel (C) or fix the file."
	return panelBorder(width, false).Render(warnStyle.Render(msg))
}

// renderFooter renders the filters line, feedback line and key help, or the
// prompt overlay while one is open
func (m DashboardModel) renderFooter() string {
	var b strings.Builder

	if m.prompt.active {
		b.WriteString(panelTitleStyle.Render(m.prompt.title))
		b.WriteString("\n")
		b.WriteString(m.prompt.input.View())
		b.WriteString("\n")
		hint := "enter apply • esc cancel"
		if len(m.prompt.options) > 0 {
			hint = "↑/↓ options • " + hint
		}
		b.WriteString(helpStyle.Render(hint))
		return b.String()
	}

	b.WriteString(labelStyle.Render("Active Filters: "))
	b.WriteString(dimStyle.Render(truncate(m.selection.Summary(), m.width-18)))
	b.WriteString("\n")

	switch {
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("✗ " + m.errMsg))
	case m.statusMsg != "":
		b.WriteString(successStyle.Render("✓ " + m.statusMsg))
	}
	b.WriteString("\n")

	var help string
	switch {
	case m.focus == FocusSidebar:
		help = "↑↓ value • ←→ dimension • enter toggle • tab table • esc back"
	case m.panel == PanelTable:
		help = "↑↓←→ cell • enter edit • a add row • x del row • C add col • X del col • [ ] page • S save"
	case m.panel == PanelGallery:
		help = "↑↓ task • u upload"
	case m.panel == PanelTimeline:
		help = "R/I/T grouping • s colors • f finished • d range • tab filters"
	default:
		help = "tab filters • 1-4 panels • f finished • d range • c clear • R/I/T grouping"
	}
	b.WriteString(helpStyle.Render(truncate(help+" • q quit", m.width-2)))

	return b.String()
}

// truncate cuts a string to max bytes, appending an ellipsis when it cuts
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// pad truncates and left-aligns a string into a fixed width
func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, truncate(s, width))
}
