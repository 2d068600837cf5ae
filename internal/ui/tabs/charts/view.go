package charts

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hotel-booking-tui/internal/ui/components"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/styles"
)

const sidebarWidth = 44

// View renders the charts tab.
func (m *Model) View() string {
	sidebar := m.renderSidebar()

	chartWidth := max(m.width-sidebarWidth-6, 30)
	chart := styles.BlurredBorderStyle.
		Width(chartWidth).
		Height(max(m.height-4, 6)).
		Render(m.renderChart(chartWidth-2, max(m.height-6, 6)))

	return styles.DocStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", chart))
}

func (m *Model) renderSidebar() string {
	rows := []string{styles.CardTitleStyle.Render("Views")}

	for i, t := range m.triggers {
		label := fmt.Sprintf("[%d] %s", i+1, t.Trigger)
		if i == m.cursor {
			rows = append(rows, styles.SelectedListItemStyle.Render(label))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(label))
		}
	}

	if len(m.monthly) > 0 {
		rows = append(rows, "",
			styles.HelpStyle.Render("Bookings per month"),
			styles.InfoTextStyle.Render(components.RenderSparkline(m.monthly, sidebarWidth-6)),
		)
	}

	rows = append(rows, "", styles.HelpStyle.Render("1-6 or enter to show a chart"))

	return styles.FocusedBorderStyle.Width(sidebarWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderChart(width, height int) string {
	if m.current == nil {
		return styles.CenterBoth(
			styles.HelpStyle.Render("No chart selected"),
			width, height,
		)
	}
	return components.RenderView(*m.current, width, height)
}
