// Package views maps view names to computed aggregates and chart metadata.
package views

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/hotel-booking-tui/internal/aggregate"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// ErrUnknownView is returned for names outside the fixed view set.
var ErrUnknownView = errors.New("unknown view")

// ChartKind is the preferred chart style of a view.
type ChartKind int

// Chart kinds.
const (
	ChartBar ChartKind = iota
	ChartLine
)

// String returns the kind name.
func (k ChartKind) String() string {
	if k == ChartLine {
		return "line"
	}
	return "bar"
}

// ValueFormat controls how chart values are printed.
type ValueFormat int

// Value formats.
const (
	FormatDecimal ValueFormat = iota
	FormatPercent
	FormatCount
)

// Format renders v according to f.
func (f ValueFormat) Format(v float64) string {
	switch f {
	case FormatPercent:
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	case FormatCount:
		return humanize.Comma(int64(math.Round(v)))
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// Metadata is the static chart description of a view.
type Metadata struct {
	Name    models.ViewName
	Trigger string
	Title   string
	XLabel  string
	YLabel  string
	Kind    ChartKind
	Format  ValueFormat
}

var metadata = map[models.ViewName]Metadata{
	models.ViewMeanNights: {
		Name:    models.ViewMeanNights,
		Trigger: "Mean Number of Nights per Hotel",
		Title:   "Mean number of nights per hotel",
		XLabel:  "Hotel Type",
		YLabel:  "Mean number of nights",
		Kind:    ChartBar,
		Format:  FormatDecimal,
	},
	models.ViewCancelPercentage: {
		Name:    models.ViewCancelPercentage,
		Trigger: "Cancel Percentage per Hotel",
		Title:   "Cancel percentage per hotel",
		XLabel:  "Hotel Type",
		YLabel:  "Percentage",
		Kind:    ChartBar,
		Format:  FormatPercent,
	},
	models.ViewMonthlySeasonal: {
		Name:    models.ViewMonthlySeasonal,
		Trigger: "Monthly Seasonal Bookings",
		Title:   "Number of bookings per month and season",
		XLabel:  "Month",
		YLabel:  "Number of bookings",
		Kind:    ChartLine,
		Format:  FormatCount,
	},
	models.ViewRoomTypes: {
		Name:    models.ViewRoomTypes,
		Trigger: "Room Type Distribution",
		Title:   "Distribution of Room Reservations by Room Type",
		XLabel:  "Room Type",
		YLabel:  "Percentage of Reservations",
		Kind:    ChartBar,
		Format:  FormatPercent,
	},
	models.ViewTravelerTypes: {
		Name:    models.ViewTravelerTypes,
		Trigger: "Traveler Type Bookings",
		Title:   "Number of Bookings by Traveler Type",
		XLabel:  "Traveler Type",
		YLabel:  "Number of Bookings",
		Kind:    ChartBar,
		Format:  FormatCount,
	},
	models.ViewTrends: {
		Name:    models.ViewTrends,
		Trigger: "Trends Over Time",
		Title:   "Trends of Bookings and Cancellations Over Time",
		XLabel:  "Date",
		YLabel:  "Number of Bookings/Cancellations",
		Kind:    ChartLine,
		Format:  FormatCount,
	},
}

// MetadataFor returns the chart metadata of a view.
func MetadataFor(name models.ViewName) (Metadata, error) {
	m, ok := metadata[name]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return m, nil
}

// View pairs a computed aggregate with its chart metadata.
type View struct {
	Data models.ViewData
	Meta Metadata
}

// Registry serves the six views of one record set. It is built eagerly and
// never changes afterwards, so it is safe for concurrent readers.
type Registry struct {
	views map[models.ViewName]View
}

// NewRegistry builds a registry from precomputed views.
func NewRegistry(computed aggregate.Views) *Registry {
	r := &Registry{views: make(map[models.ViewName]View, len(models.ViewNames))}
	for _, data := range computed.All() {
		r.views[data.View()] = View{Data: data, Meta: metadata[data.View()]}
	}
	return r
}

// Get returns the named view.
func (r *Registry) Get(name models.ViewName) (View, error) {
	v, ok := r.views[name]
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Names lists the view names in trigger order.
func (r *Registry) Names() []models.ViewName {
	names := make([]models.ViewName, len(models.ViewNames))
	copy(names, models.ViewNames)
	return names
}

// All returns every view in trigger order.
func (r *Registry) All() []View {
	out := make([]View, 0, len(models.ViewNames))
	for _, name := range models.ViewNames {
		out = append(out, r.views[name])
	}
	return out
}
