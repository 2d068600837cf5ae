package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/hotel-booking-tui/internal/aggregate"
	"github.com/j-veylop/hotel-booking-tui/internal/classify"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
	"github.com/j-veylop/hotel-booking-tui/internal/views"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.Label() != "Loading" {
		t.Error("Spinner label mismatch")
	}
	if s.Active() {
		t.Error("New spinner should be stopped")
	}
	if s.View() != "" {
		t.Error("Stopped spinner should render nothing")
	}
}

func TestSpinner_StartStop(t *testing.T) {
	s := NewSpinner("Init")

	if cmd := s.Start("Loading table"); cmd == nil {
		t.Error("Start should return the first tick")
	}
	if cmd := s.Start("Still loading"); cmd != nil {
		t.Error("Start on a running spinner should not tick twice")
	}
	if s.Label() != "Still loading" {
		t.Errorf("Label = %q, want Still loading", s.Label())
	}
	if !strings.Contains(s.View(), "Still loading") {
		t.Error("View should include the label")
	}

	s.Stop()
	if _, cmd := s.Update(spinner.TickMsg{}); cmd != nil {
		t.Error("Stopped spinner should drop ticks")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	s.Start("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered should show the label")
	}
}

func TestRenderLineChart(t *testing.T) {
	if s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test"); !strings.Contains(s, "Test") {
		t.Error("RenderLineChart should include the caption")
	}
	if s := RenderLineChart([]float64{7}, 20, 5, "One"); s == "" {
		t.Error("Single point should still render")
	}
	if s := RenderLineChart(nil, 20, 5, "Empty"); !strings.Contains(s, "No data") {
		t.Error("Empty data should render placeholder")
	}
}

func TestRenderMultiLineChart(t *testing.T) {
	s := RenderMultiLineChart([]Series{
		{Label: "a", Values: []float64{1, 2, 3}},
		{Label: "b", Values: []float64{3, 2}},
	}, 20, 5, "Title")
	if s == "" {
		t.Error("RenderMultiLineChart returned empty")
	}
}

func TestRenderBarChart(t *testing.T) {
	s := RenderBarChart([]float64{10, 20}, []string{"A", "Bee"}, 40, nil)
	lines := strings.Split(ansi.Strip(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 bars, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "  A │") {
		t.Errorf("labels should be right-aligned, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " 20.0") {
		t.Errorf("default format should print one decimal, got %q", lines[1])
	}
	if RenderBarChart(nil, nil, 40, nil) != "" {
		t.Error("Empty bar chart should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if s := RenderSparkline([]float64{0, 7}, 10); s != "▁█" {
		t.Errorf("RenderSparkline = %q", s)
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("Empty sparkline should render nothing")
	}
}

func TestRenderLegend(t *testing.T) {
	s := RenderLegend([]LegendItem{{Label: "A", Color: lipgloss.Color("#ffffff")}})
	if !strings.Contains(s, "A") {
		t.Error("RenderLegend should include the label")
	}
}

func testViews(t *testing.T) map[models.ViewName]views.View {
	t.Helper()
	records, err := classify.Enrich([]models.Booking{
		{Hotel: "Resort Hotel", ArrivalYear: 2016, ArrivalMonth: "January", ArrivalDay: 3, WeekendNights: 1, Adults: 2, ReservedRoomType: "A"},
		{Hotel: "City Hotel", ArrivalYear: 2016, ArrivalMonth: "March", ArrivalDay: 9, WeekNights: 3, Adults: 2, Children: 1, ReservedRoomType: "D", IsCanceled: true},
	})
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	reg := views.NewRegistry(aggregate.Compute(records))
	out := make(map[models.ViewName]views.View)
	for _, v := range reg.All() {
		out[v.Meta.Name] = v
	}
	return out
}

func TestRenderView(t *testing.T) {
	all := testViews(t)

	tests := []struct {
		name models.ViewName
		want []string
	}{
		{models.ViewMeanNights, []string{"Mean number of nights per hotel", "Resort Hotel", "1.00", "3.00"}},
		{models.ViewCancelPercentage, []string{"Cancel percentage per hotel", "100.0%", "0.0%"}},
		{models.ViewMonthlySeasonal, []string{"Winter", "Spring", "Jan 2016 - Mar 2016"}},
		{models.ViewRoomTypes, []string{"Room Type", "50.0%"}},
		{models.ViewTravelerTypes, []string{"Couple", "Family"}},
		{models.ViewTrends, []string{"City Hotel cancellations", "Resort Hotel bookings"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			out := ansi.Strip(RenderView(all[tt.name], 80, 20))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("chart missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderView_Empty(t *testing.T) {
	reg := views.NewRegistry(aggregate.Compute(nil))
	for _, v := range reg.All() {
		if out := RenderView(v, 60, 12); !strings.Contains(ansi.Strip(out), v.Meta.Title) {
			t.Errorf("%s: empty view should still render its title", v.Meta.Name)
		}
	}
}

func TestMonthSpan(t *testing.T) {
	first := time.Date(2015, time.July, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2017, time.August, 1, 0, 0, 0, 0, time.UTC)
	if got := monthSpan(first, last); got != "Jul 2015 - Aug 2017" {
		t.Errorf("monthSpan = %q", got)
	}
}
