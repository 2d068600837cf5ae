// Package classify derives arrival dates, seasons and traveler types for
// raw bookings.
package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// InvalidDateError reports a booking whose year, month name and day do not
// form a real calendar date. Row is the 1-based data row index.
type InvalidDateError struct {
	Row    int
	Year   int
	Month  string
	Day    int
	Reason string
}

// Error implements the error interface.
func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid arrival date at row %d (%d %s %d): %s", e.Row, e.Year, e.Month, e.Day, e.Reason)
}

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for month := time.January; month <= time.December; month++ {
		m[strings.ToLower(month.String())] = month
	}
	return m
}()

// seasonByMonth is indexed by time.Month; index 0 is unused.
var seasonByMonth = [13]models.Season{
	time.January:   models.SeasonWinter,
	time.February:  models.SeasonWinter,
	time.March:     models.SeasonSpring,
	time.April:     models.SeasonSpring,
	time.May:       models.SeasonSpring,
	time.June:      models.SeasonSummer,
	time.July:      models.SeasonSummer,
	time.August:    models.SeasonSummer,
	time.September: models.SeasonAutumn,
	time.October:   models.SeasonAutumn,
	time.November:  models.SeasonAutumn,
	time.December:  models.SeasonWinter,
}

// ParseMonth maps a full English month name to its calendar month.
// Matching ignores case and surrounding whitespace.
func ParseMonth(name string) (time.Month, bool) {
	m, ok := monthsByName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// SeasonForMonth returns the season of a calendar month. It panics for
// months outside 1-12.
func SeasonForMonth(m time.Month) models.Season {
	if m < time.January || m > time.December {
		panic(fmt.Sprintf("classify: month %d out of range", m))
	}
	return seasonByMonth[m]
}

// ArrivalDate builds the UTC arrival date from its parts. Dates that do not
// exist are rejected instead of normalized.
func ArrivalDate(year int, monthName string, day int) (time.Time, error) {
	month, ok := ParseMonth(monthName)
	if !ok {
		return time.Time{}, &InvalidDateError{Year: year, Month: monthName, Day: day, Reason: "unknown month name"}
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, &InvalidDateError{Year: year, Month: monthName, Day: day, Reason: "no such calendar date"}
	}
	return t, nil
}

// travelerRule is one row of the traveler decision table.
type travelerRule struct {
	travelerType models.TravelerType
	matches      func(adults, children, babies int) bool
}

// travelerRules is evaluated top to bottom; the first match wins.
var travelerRules = []travelerRule{
	{models.TravelerFamily, func(_, c, b int) bool { return c >= 1 || b >= 1 }},
	{models.TravelerCouple, func(a, c, b int) bool { return a == 2 && c == 0 && b == 0 }},
	{models.TravelerSoloAdult, func(a, c, b int) bool { return a == 1 && c == 0 && b == 0 }},
}

// ClassifyTraveler returns the traveler segment of a party.
func ClassifyTraveler(adults, children, babies int) models.TravelerType {
	for _, rule := range travelerRules {
		if rule.matches(adults, children, babies) {
			return rule.travelerType
		}
	}
	return models.TravelerOther
}

// Record enriches a single booking. row is used for error reporting only.
func Record(row int, b models.Booking) (models.BookingRecord, error) {
	date, err := ArrivalDate(b.ArrivalYear, b.ArrivalMonth, b.ArrivalDay)
	if err != nil {
		if de, ok := err.(*InvalidDateError); ok {
			de.Row = row
		}
		return models.BookingRecord{}, err
	}

	return models.BookingRecord{
		Booking:      b,
		TotalNights:  b.WeekendNights + b.WeekNights,
		ArrivalDate:  date,
		Season:       SeasonForMonth(date.Month()),
		TravelerType: ClassifyTraveler(b.Adults, b.Children, b.Babies),
	}, nil
}

// Enrich classifies every booking in order. The first invalid date aborts
// the run and no partial result is returned.
func Enrich(bookings []models.Booking) ([]models.BookingRecord, error) {
	records := make([]models.BookingRecord, 0, len(bookings))
	for i, b := range bookings {
		r, err := Record(i+1, b)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
