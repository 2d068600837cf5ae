// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/ui/styles"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

// seriesAnsi mirrors styles.SeriesColors for asciigraph, which takes its own
// color type.
var seriesAnsi = []asciigraph.AnsiColor{
	asciigraph.Green,
	asciigraph.DarkOrange,
	asciigraph.DodgerBlue,
	asciigraph.Orchid,
	asciigraph.Gold,
	asciigraph.Red,
}

// Series is one named line of a line chart.
type Series struct {
	Label  string
	Values []float64
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	return RenderMultiLineChart([]Series{{Label: caption, Values: data}}, width, height, caption)
}

// RenderMultiLineChart plots several series over a shared x axis. Shorter
// series are padded with zeros.
func RenderMultiLineChart(series []Series, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s.Values))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs two points to draw a segment
	points := max(maxLen, 2)

	data := make([][]float64, len(series))
	colors := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		data[i] = make([]float64, points)
		copy(data[i], s.Values)
		if len(s.Values) == 1 {
			data[i][1] = s.Values[0]
		}
		colors[i] = seriesAnsi[i%len(seriesAnsi)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.Precision(0),
	)
}

// RenderBarChart creates a simple horizontal bar chart. format renders the
// value printed after each bar.
func RenderBarChart(values []float64, labels []string, width int, format func(float64) string) string {
	if len(values) == 0 {
		return ""
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Find max label length
	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := width - maxLabelLen - 12 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := fmt.Sprintf("%*s", maxLabelLen, label)

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		bar := styles.BarStyle.Render(strings.Repeat("█", barLen))
		line := styles.BarLabelStyle.Render(paddedLabel) + " │" + bar + styles.BarValueStyle.Render(" "+format(v))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// sparkChars are the block characters of a sparkline, low to high.
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// RenderView draws the chart of a registry view into a width x height area:
// a title, the chart body and the axis labels.
func RenderView(v views.View, width, height int) string {
	title := styles.TitleStyle.Render(v.Meta.Title)
	axes := styles.ChartAxisLabelStyle.Render(fmt.Sprintf("x: %s   y: %s", v.Meta.XLabel, v.Meta.YLabel))

	// title (2 lines), axes, legend and caption
	chartHeight := max(height-6, 3)

	body := renderViewBody(v, width, chartHeight)
	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", axes)
}

func renderViewBody(v views.View, width, height int) string {
	format := v.Meta.Format.Format
	// y axis labels take roughly ten columns
	plotWidth := max(width-12, 20)

	switch data := v.Data.(type) {
	case models.MeanNightsPerHotel:
		return renderCategoryValues(data.Values, width, format)

	case models.CancelPercentagePerHotel:
		return renderCategoryValues(data.Values, width, format)

	case models.RoomTypeDistribution:
		return renderCategoryValues(data.Percentages, width, format)

	case models.TravelerTypeBookings:
		return renderCategoryCounts(data.Counts, width, format)

	case models.MonthlySeasonalBookings:
		if len(data.Rows) == 0 {
			return styles.HelpStyle.Render("No data available")
		}
		series := make([]Series, 0, len(models.Seasons))
		for _, season := range models.Seasons {
			series = append(series, Series{Label: string(season), Values: data.Series(season)})
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderMultiLineChart(series, plotWidth, height, monthSpan(data.Rows[0].Month, data.Rows[len(data.Rows)-1].Month)),
			seriesLegend(series),
		)

	case models.TrendsOverTime:
		if len(data.Months) == 0 {
			return styles.HelpStyle.Render("No data available")
		}
		series := make([]Series, 0, 2*len(data.Hotels))
		for _, h := range data.Hotels {
			series = append(series,
				Series{Label: h.Hotel + " bookings", Values: intsToFloats(h.Bookings)},
				Series{Label: h.Hotel + " cancellations", Values: intsToFloats(h.Cancellations)},
			)
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			RenderMultiLineChart(series, plotWidth, height, monthSpan(data.Months[0], data.Months[len(data.Months)-1])),
			seriesLegend(series),
		)
	}

	return styles.ErrorTextStyle.Render(fmt.Sprintf("Cannot draw %T", v.Data))
}

func renderCategoryValues(values []models.CategoryValue, width int, format func(float64) string) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	nums := make([]float64, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		nums[i] = v.Value
		labels[i] = v.Category
	}
	return RenderBarChart(nums, labels, width, format)
}

func renderCategoryCounts(counts []models.CategoryCount, width int, format func(float64) string) string {
	if len(counts) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	nums := make([]float64, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		nums[i] = float64(c.Count)
		labels[i] = c.Category
	}
	return RenderBarChart(nums, labels, width, format)
}

func seriesLegend(series []Series) string {
	items := make([]LegendItem, len(series))
	for i, s := range series {
		items[i] = LegendItem{Label: s.Label, Color: styles.SeriesColor(i)}
	}
	return RenderLegend(items)
}

func monthSpan(first, last time.Time) string {
	return first.Format("Jan 2006") + " - " + last.Format("Jan 2006")
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
