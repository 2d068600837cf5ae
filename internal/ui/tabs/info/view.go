package info

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/hotel-booking-tui/internal/ui/styles"
	"github.com/j-veylop/hotel-booking-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	m.syncContent()

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// syncContent re-renders the cards into the viewport, keeping the scroll
// offset when possible.
func (m *Model) syncContent() {
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderDatasetCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	))
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Dataset, configuration and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderDatasetCard summarizes the loaded record set.
func (m *Model) renderDatasetCard() string {
	rows := []string{styles.CardTitleStyle.Render("Dataset"), ""}

	s := m.state.GetSummary()
	if !s.HasData() {
		rows = append(rows, styles.HelpStyle.Render("No bookings loaded"))
	} else {
		canceled := float64(s.Canceled) / float64(s.Records) * 100
		rows = append(rows,
			m.renderRow("Source", s.Source),
			m.renderRow("Run", s.RunID),
			m.renderRow("Bookings", humanize.Comma(int64(s.Records))),
			m.renderRow("Hotels", strings.Join(s.Hotels, ", ")),
			m.renderRow("Arrivals", s.FirstArrival.Format("2 Jan 2006")+" - "+s.LastArrival.Format("2 Jan 2006")),
			m.renderRow("Canceled", fmt.Sprintf("%s (%.1f%%)", humanize.Comma(int64(s.Canceled)), canceled)),
			m.renderRow("Loaded", fmt.Sprintf("%s in %s", humanize.Time(s.LoadedAt), s.LoadDuration.Round(time.Millisecond))),
		)
	}

	if last := m.state.GetLastPersisted(); !last.IsZero() {
		rows = append(rows, m.renderRow("Persisted", fmt.Sprintf("%d tables %s", len(m.state.GetReports()), humanize.Time(last))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigCard renders the effective configuration.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		workbook := m.config.ExportWorkbook
		if workbook == "" {
			workbook = "off"
		}
		rows = append(rows,
			m.renderRow("Bookings File", m.config.BookingsPath),
			m.renderRow("Store Driver", m.config.StoreDriver),
			m.renderRow("Database", redactDSN(m.config.DatabaseDSN)),
			m.renderRow("Export Dir", m.config.ExportDir),
			m.renderRow("Workbook", workbook),
			m.renderRow("Persist on Start", strconv.FormatBool(m.config.PersistOnStart)),
			m.renderRow("Log File", m.config.LogFile),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRow renders a key-value row.
func (m *Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About " + version.Name),
		"",
		m.renderRow("Version", version.GetVersion()),
		m.renderRow("Build Date", version.GetDate()),
		m.renderRow("Git Commit", version.GetCommit()),
		m.renderRow("Go Version", runtime.Version()),
		m.renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// redactDSN hides the password of a connection URL.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return dsn
	}
	return scheme + "://" + user + ":****@" + host
}
