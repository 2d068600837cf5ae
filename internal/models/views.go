package models

import "time"

// ViewName identifies one of the fixed aggregate views.
type ViewName string

// The six aggregate views. Each name doubles as its store table name.
const (
	ViewMeanNights       ViewName = "mean_nights_per_hotel"
	ViewCancelPercentage ViewName = "cancel_percentage_per_hotel"
	ViewMonthlySeasonal  ViewName = "monthly_seasonal_bookings"
	ViewRoomTypes        ViewName = "room_type_distribution"
	ViewTravelerTypes    ViewName = "traveler_type_bookings"
	ViewTrends           ViewName = "trends_over_time"
)

// ViewNames lists every view in trigger order.
var ViewNames = []ViewName{
	ViewMeanNights,
	ViewCancelPercentage,
	ViewMonthlySeasonal,
	ViewRoomTypes,
	ViewTravelerTypes,
	ViewTrends,
}

// String returns the view name.
func (v ViewName) String() string {
	return string(v)
}

// IsKnown reports whether v is one of the six fixed views.
func (v ViewName) IsKnown() bool {
	for _, name := range ViewNames {
		if name == v {
			return true
		}
	}
	return false
}

// ViewData is implemented by every aggregate view payload.
type ViewData interface {
	View() ViewName
}

// CategoryValue is a single keyed measure, e.g. one bar of a bar chart.
type CategoryValue struct {
	Category string
	Value    float64
}

// CategoryCount is a single keyed count.
type CategoryCount struct {
	Category string
	Count    int
}

// MeanNightsPerHotel holds the mean stay length per hotel, sorted by hotel.
type MeanNightsPerHotel struct {
	Values []CategoryValue
}

// View implements ViewData.
func (MeanNightsPerHotel) View() ViewName { return ViewMeanNights }

// Get returns the mean nights for a hotel.
func (m MeanNightsPerHotel) Get(hotel string) (float64, bool) {
	return lookupValue(m.Values, hotel)
}

// CancelPercentagePerHotel holds the cancellation rate (0-100) per hotel.
type CancelPercentagePerHotel struct {
	Values []CategoryValue
}

// View implements ViewData.
func (CancelPercentagePerHotel) View() ViewName { return ViewCancelPercentage }

// Get returns the cancellation percentage for a hotel.
func (c CancelPercentagePerHotel) Get(hotel string) (float64, bool) {
	return lookupValue(c.Values, hotel)
}

// SeasonalRow is one calendar month of the seasonal matrix. Counts always has
// an entry for every season.
type SeasonalRow struct {
	Month  time.Time
	Counts map[Season]int
}

// Total returns the number of bookings in the month across all seasons.
func (r SeasonalRow) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// MonthlySeasonalBookings is the month x season booking matrix.
type MonthlySeasonalBookings struct {
	Rows []SeasonalRow
}

// View implements ViewData.
func (MonthlySeasonalBookings) View() ViewName { return ViewMonthlySeasonal }

// Series returns the monthly counts of one season, in month order.
func (m MonthlySeasonalBookings) Series(season Season) []float64 {
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = float64(row.Counts[season])
	}
	return out
}

// RoomTypeDistribution holds room-type counts and their share of all bookings.
type RoomTypeDistribution struct {
	Counts      []CategoryCount
	Percentages []CategoryValue
	Total       int
}

// View implements ViewData.
func (RoomTypeDistribution) View() ViewName { return ViewRoomTypes }

// Count returns the number of bookings of a room type.
func (r RoomTypeDistribution) Count(roomType string) (int, bool) {
	for _, c := range r.Counts {
		if c.Category == roomType {
			return c.Count, true
		}
	}
	return 0, false
}

// Percentage returns the share (0-100) of a room type.
func (r RoomTypeDistribution) Percentage(roomType string) (float64, bool) {
	return lookupValue(r.Percentages, roomType)
}

// TravelerTypeBookings holds a count for each traveler type, in fixed order.
type TravelerTypeBookings struct {
	Counts []CategoryCount
}

// View implements ViewData.
func (TravelerTypeBookings) View() ViewName { return ViewTravelerTypes }

// Count returns the number of bookings of a traveler type.
func (t TravelerTypeBookings) Count(tt TravelerType) int {
	for _, c := range t.Counts {
		if c.Category == string(tt) {
			return c.Count
		}
	}
	return 0
}

// HotelTrend is the monthly booking and cancellation series of one hotel.
// Both slices are aligned with TrendsOverTime.Months.
type HotelTrend struct {
	Hotel         string
	Bookings      []int
	Cancellations []int
}

// TrendsOverTime holds per-hotel monthly series over a shared month axis.
type TrendsOverTime struct {
	Months []time.Time
	Hotels []HotelTrend
}

// View implements ViewData.
func (TrendsOverTime) View() ViewName { return ViewTrends }

// Hotel returns the trend of a single hotel.
func (t TrendsOverTime) Hotel(name string) (HotelTrend, bool) {
	for _, h := range t.Hotels {
		if h.Hotel == name {
			return h, true
		}
	}
	return HotelTrend{}, false
}

func lookupValue(values []CategoryValue, key string) (float64, bool) {
	for _, v := range values {
		if v.Category == key {
			return v.Value, true
		}
	}
	return 0, false
}

// DatasetSummary describes a loaded record set.
type DatasetSummary struct {
	RunID        string
	Source       string
	Records      int
	Hotels       []string
	FirstArrival time.Time
	LastArrival  time.Time
	Canceled     int
	LoadedAt     time.Time
	LoadDuration time.Duration
}

// HasData returns true if the summary describes at least one record.
func (s *DatasetSummary) HasData() bool {
	return s.Records > 0
}
