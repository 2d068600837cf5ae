// Package aggregate computes the booking summary views from enriched records.
// Every function is pure: the same records always produce identical output.
package aggregate

import (
	"sort"
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// Views bundles all six aggregate views of one record set.
type Views struct {
	MeanNights       models.MeanNightsPerHotel
	CancelPercentage models.CancelPercentagePerHotel
	MonthlySeasonal  models.MonthlySeasonalBookings
	RoomTypes        models.RoomTypeDistribution
	TravelerTypes    models.TravelerTypeBookings
	Trends           models.TrendsOverTime
}

// Compute returns every view of records.
func Compute(records []models.BookingRecord) Views {
	return Views{
		MeanNights:       MeanNightsPerHotel(records),
		CancelPercentage: CancelPercentagePerHotel(records),
		MonthlySeasonal:  MonthlySeasonalBookings(records),
		RoomTypes:        RoomTypeDistribution(records),
		TravelerTypes:    TravelerTypeBookings(records),
		Trends:           TrendsOverTime(records),
	}
}

// All returns the views in trigger order.
func (v Views) All() []models.ViewData {
	return []models.ViewData{
		v.MeanNights,
		v.CancelPercentage,
		v.MonthlySeasonal,
		v.RoomTypes,
		v.TravelerTypes,
		v.Trends,
	}
}

// hotelGroup accumulates per-hotel sums.
type hotelGroup struct {
	count    int
	nights   int
	canceled int
}

// groupByHotel returns sorted hotel names and their accumulated sums.
func groupByHotel(records []models.BookingRecord) ([]string, map[string]*hotelGroup) {
	groups := make(map[string]*hotelGroup)
	for i := range records {
		r := &records[i]
		g, ok := groups[r.Hotel]
		if !ok {
			g = &hotelGroup{}
			groups[r.Hotel] = g
		}
		g.count++
		g.nights += r.TotalNights
		if r.IsCanceled {
			g.canceled++
		}
	}

	hotels := make([]string, 0, len(groups))
	for h := range groups {
		hotels = append(hotels, h)
	}
	sort.Strings(hotels)
	return hotels, groups
}

// MeanNightsPerHotel computes the average stay length of each hotel.
func MeanNightsPerHotel(records []models.BookingRecord) models.MeanNightsPerHotel {
	hotels, groups := groupByHotel(records)
	values := make([]models.CategoryValue, 0, len(hotels))
	for _, h := range hotels {
		g := groups[h]
		values = append(values, models.CategoryValue{
			Category: h,
			Value:    float64(g.nights) / float64(g.count),
		})
	}
	return models.MeanNightsPerHotel{Values: values}
}

// CancelPercentagePerHotel computes the share of canceled bookings of each
// hotel, against that hotel's own booking count.
func CancelPercentagePerHotel(records []models.BookingRecord) models.CancelPercentagePerHotel {
	hotels, groups := groupByHotel(records)
	values := make([]models.CategoryValue, 0, len(hotels))
	for _, h := range hotels {
		g := groups[h]
		values = append(values, models.CategoryValue{
			Category: h,
			Value:    100 * float64(g.canceled) / float64(g.count),
		})
	}
	return models.CancelPercentagePerHotel{Values: values}
}

// MonthlySeasonalBookings counts bookings per arrival month and season.
// Months without bookings inside the observed range get all-zero rows.
func MonthlySeasonalBookings(records []models.BookingRecord) models.MonthlySeasonalBookings {
	months := MonthRange(records)
	index := monthIndex(months)

	rows := make([]models.SeasonalRow, len(months))
	for i, m := range months {
		counts := make(map[models.Season]int, len(models.Seasons))
		for _, s := range models.Seasons {
			counts[s] = 0
		}
		rows[i] = models.SeasonalRow{Month: m, Counts: counts}
	}

	for i := range records {
		r := &records[i]
		rows[index[r.ArrivalMonthStart()]].Counts[r.Season]++
	}
	return models.MonthlySeasonalBookings{Rows: rows}
}

// RoomTypeDistribution counts bookings per reserved room type and their share
// of all bookings. Room types are ordered by count descending, then by code.
func RoomTypeDistribution(records []models.BookingRecord) models.RoomTypeDistribution {
	counts := make(map[string]int)
	for i := range records {
		counts[records[i].ReservedRoomType]++
	}

	dist := models.RoomTypeDistribution{
		Counts:      make([]models.CategoryCount, 0, len(counts)),
		Percentages: make([]models.CategoryValue, 0, len(counts)),
		Total:       len(records),
	}
	for room, n := range counts {
		dist.Counts = append(dist.Counts, models.CategoryCount{Category: room, Count: n})
	}
	sort.Slice(dist.Counts, func(i, j int) bool {
		a, b := dist.Counts[i], dist.Counts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	for _, c := range dist.Counts {
		dist.Percentages = append(dist.Percentages, models.CategoryValue{
			Category: c.Category,
			Value:    100 * float64(c.Count) / float64(dist.Total),
		})
	}
	return dist
}

// TravelerTypeBookings counts bookings per traveler segment. All four
// segments are always present.
func TravelerTypeBookings(records []models.BookingRecord) models.TravelerTypeBookings {
	counts := make(map[models.TravelerType]int, len(models.TravelerTypes))
	for i := range records {
		counts[records[i].TravelerType]++
	}

	out := make([]models.CategoryCount, len(models.TravelerTypes))
	for i, tt := range models.TravelerTypes {
		out[i] = models.CategoryCount{Category: string(tt), Count: counts[tt]}
	}
	return models.TravelerTypeBookings{Counts: out}
}

// TrendsOverTime builds monthly booking and cancellation series per hotel.
// All hotels share the month axis of the whole record set.
func TrendsOverTime(records []models.BookingRecord) models.TrendsOverTime {
	months := MonthRange(records)
	index := monthIndex(months)
	hotels, _ := groupByHotel(records)

	trends := make([]models.HotelTrend, len(hotels))
	byHotel := make(map[string]*models.HotelTrend, len(hotels))
	for i, h := range hotels {
		trends[i] = models.HotelTrend{
			Hotel:         h,
			Bookings:      make([]int, len(months)),
			Cancellations: make([]int, len(months)),
		}
		byHotel[h] = &trends[i]
	}

	for i := range records {
		r := &records[i]
		t := byHotel[r.Hotel]
		m := index[r.ArrivalMonthStart()]
		t.Bookings[m]++
		if r.IsCanceled {
			t.Cancellations[m]++
		}
	}

	return models.TrendsOverTime{Months: months, Hotels: trends}
}

// MonthRange returns every calendar month from the earliest to the latest
// arrival month, inclusive. It returns an empty slice for no records.
func MonthRange(records []models.BookingRecord) []time.Time {
	if len(records) == 0 {
		return []time.Time{}
	}

	first := records[0].ArrivalMonthStart()
	last := first
	for i := range records[1:] {
		m := records[i+1].ArrivalMonthStart()
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}

	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func monthIndex(months []time.Time) map[time.Time]int {
	index := make(map[time.Time]int, len(months))
	for i, m := range months {
		index[m] = i
	}
	return index
}
