// Package models defines data structures and domain types.
package models

import "time"

// Season is a fixed calendar bucket derived from the arrival month.
type Season string

// The four seasons, in display order.
const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// Seasons lists every season in column order for the seasonal matrix.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// TravelerType is an occupancy-based booking segment.
type TravelerType string

// The four traveler segments, in display order.
const (
	TravelerSoloAdult TravelerType = "Solo Adult"
	TravelerCouple    TravelerType = "Couple"
	TravelerFamily    TravelerType = "Family"
	TravelerOther     TravelerType = "Other"
)

// TravelerTypes lists every traveler segment in display order.
var TravelerTypes = []TravelerType{TravelerSoloAdult, TravelerCouple, TravelerFamily, TravelerOther}

// Booking is one raw reservation row as read from the input file.
type Booking struct {
	Hotel            string
	ArrivalYear      int
	ArrivalMonth     string // full month name, e.g. "July"
	ArrivalDay       int
	WeekendNights    int
	WeekNights       int
	Adults           int
	Children         int
	Babies           int
	ReservedRoomType string
	IsCanceled       bool

	// Extra holds passthrough columns keyed by header name.
	Extra map[string]string
}

// BookingRecord is a Booking enriched with the classifier-derived fields.
// Records are built once and must be treated as read-only afterwards.
type BookingRecord struct {
	Booking

	TotalNights  int
	ArrivalDate  time.Time // UTC midnight
	Season       Season
	TravelerType TravelerType
}

// ArrivalMonthStart returns the first day of the record's arrival month.
func (r *BookingRecord) ArrivalMonthStart() time.Time {
	return MonthStart(r.ArrivalDate)
}

// MonthStart truncates t to the first day of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
