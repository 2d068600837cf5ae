package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/hotel-booking-tui/internal/app"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/components"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/styles"
)

// View renders the store tab.
func (m *Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderReport(),
		"",
		m.renderTable(),
		"",
		m.renderExports(),
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Store")
	current := styles.InfoTextStyle.Bold(true).Render(m.Current()) +
		styles.HelpStyle.Render(fmt.Sprintf("  table %d/%d", m.index+1, len(m.tables)))
	return lipgloss.JoinVertical(lipgloss.Left, title, current)
}

// renderReport shows the outcome of the last persist for the current table.
func (m *Model) renderReport() string {
	if m.state.IsLoading(app.ResourcePersist) {
		return styles.InfoTextStyle.Render("Persisting views...")
	}

	last := m.state.GetLastPersisted()
	if last.IsZero() {
		return styles.HelpStyle.Render("Views not persisted in this session. Press p to persist.")
	}

	for _, r := range m.state.GetReports() {
		if r.Table != m.Current() {
			continue
		}
		line := styles.SuccessTextStyle.Render(fmt.Sprintf("%s rows stored %s", humanize.Comma(int64(r.Rows)), humanize.Time(last)))
		if r.Existed {
			line += "  " + styles.WarningTextStyle.Render("table already existed, rows were upserted")
		}
		return line
	}
	return styles.HelpStyle.Render("Last persisted " + humanize.Time(last))
}

func (m *Model) renderTable() string {
	height := max(m.height-12, 3)

	if m.spinner.Active() && m.loaded == nil {
		return components.RenderSpinnerCentered(m.spinner, max(m.width-8, 20), height)
	}

	var rows []string
	if m.err != nil {
		rows = append(rows, styles.ErrorTextStyle.Render(fmt.Sprintf("Cannot read %s: %v", m.Current(), m.err)))
	}
	if m.spinner.Active() {
		rows = append(rows, m.spinner.View())
	}

	switch {
	case m.loaded == nil || m.loaded.Name != m.Current():
		if m.err == nil && !m.spinner.Active() {
			rows = append(rows, styles.HelpStyle.Render("No rows loaded"))
		}
	case len(m.loaded.Rows) == 0:
		rows = append(rows, styles.HelpStyle.Render("Table is empty"))
	default:
		rows = append(rows,
			m.table.View(),
			styles.HelpStyle.Render(fmt.Sprintf("%d/%d", m.table.Cursor()+1, len(m.loaded.Rows))),
		)
	}

	return styles.BlurredBorderStyle.Width(max(m.width-8, 20)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderExports() string {
	exports := m.state.GetExports()
	if len(exports) == 0 {
		return styles.HelpStyle.Render("p persist · e export · [ ] switch table")
	}

	dirs := make(map[string]bool)
	var files []string
	for _, e := range exports {
		dirs[filepath.Dir(e.Path)] = true
		files = append(files, filepath.Base(e.Path))
	}
	dir := filepath.Dir(exports[0].Path)
	if len(dirs) > 1 {
		dir = "several directories"
	}
	return styles.InfoTextStyle.Render(fmt.Sprintf("Exported %d files to %s: %s", len(files), dir, strings.Join(files, ", ")))
}
