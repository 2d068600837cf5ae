// Package styles holds the palette and the shared lipgloss styles of the UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Primary   = lipgloss.Color("73")  // teal
	Secondary = lipgloss.Color("179") // sand
	Subtle    = lipgloss.Color("240")

	Success = lipgloss.Color("42")
	Error   = lipgloss.Color("196")
	Warning = lipgloss.Color("214")
	Info    = lipgloss.Color("39")

	BgDark   = lipgloss.Color("235")
	BgAccent = lipgloss.Color("236")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// SeriesColors are assigned to chart series in plotting order. They
	// match the asciigraph colors used for line charts.
	SeriesColors = []lipgloss.Color{
		lipgloss.Color("42"),  // green
		lipgloss.Color("208"), // orange
		lipgloss.Color("39"),  // blue
		lipgloss.Color("170"), // orchid
		lipgloss.Color("220"), // gold
		lipgloss.Color("196"), // red
	}
)

// SeriesColor returns the color of the i-th chart series.
func SeriesColor(i int) lipgloss.Color {
	return SeriesColors[i%len(SeriesColors)]
}

// Layout.
var (
	DocStyle = lipgloss.NewStyle().
			Margin(1, 2).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	// FocusedBorderStyle frames the panel that takes keys.
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	BlurredBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Subtle).
				Padding(0, 1)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Charts.
var (
	// ChartAxisLabelStyle styles the axis captions under a chart.
	ChartAxisLabelStyle = lipgloss.NewStyle().
				Foreground(TextSecondary).
				Italic(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	BarLabelStyle = lipgloss.NewStyle().
			Foreground(TextPrimary)

	BarValueStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)
)

// Lists and tables.
var (
	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// SelectedListItemStyle prefixes the selected item with a cursor.
	SelectedListItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(Primary).
				Bold(true).
				SetString("> ")

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Subtle)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Background(BgAccent).
				Foreground(TextPrimary).
				Bold(true)
)

// Help.
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)

	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgDark)
)

// Status text.
var (
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// CenterBoth centers content horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
