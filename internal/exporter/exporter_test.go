package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

func setupStore(t *testing.T) *db.DB {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "hbt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	_, err = store.Store(ctx, models.MeanNightsPerHotel{Values: []models.CategoryValue{
		{Category: "City Hotel", Value: 2.5},
		{Category: "Resort Hotel", Value: 4},
	}})
	require.NoError(t, err)

	_, err = store.Store(ctx, models.TrendsOverTime{
		Months: []time.Time{time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC)},
		Hotels: []models.HotelTrend{{Hotel: "Resort Hotel", Bookings: []int{3}, Cancellations: []int{1}}},
	})
	require.NoError(t, err)
	return store
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportCSV(t *testing.T) {
	store := setupStore(t)
	dir := filepath.Join(t.TempDir(), "exports")

	results, err := ExportCSV(context.Background(), store, dir, []string{"mean_nights_per_hotel", "trends_over_time"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "mean_nights_per_hotel.csv"), results[0].Path)
	assert.Equal(t, 2, results[0].Rows)

	mean := readCSV(t, results[0].Path)
	assert.Equal(t, [][]string{
		{"hotel", "mean_nights"},
		{"City Hotel", "2.5"},
		{"Resort Hotel", "4"},
	}, mean)

	trends := readCSV(t, results[1].Path)
	assert.Equal(t, [][]string{
		{"hotel", "date", "bookings", "cancellations"},
		{"Resort Hotel", "2017-07-01", "3", "1"},
	}, trends)
}

func TestExportCSVAllTables(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	results, err := ExportCSV(context.Background(), store, dir, nil)
	require.NoError(t, err)
	require.Len(t, results, 6)

	// Tables that were never stored still get a header-only file.
	traveler := readCSV(t, filepath.Join(dir, "traveler_type_bookings.csv"))
	assert.Equal(t, [][]string{{"traveler_type", "count"}}, traveler)
}

func TestExportCSVUnknownTable(t *testing.T) {
	store := setupStore(t)

	_, err := ExportCSV(context.Background(), store, t.TempDir(), []string{"users"})
	assert.ErrorIs(t, err, db.ErrUnknownTable)
}

func TestExportWorkbook(t *testing.T) {
	store := setupStore(t)
	path := filepath.Join(t.TempDir(), "views.xlsx")

	results, err := ExportWorkbook(context.Background(), store, path, nil)
	require.NoError(t, err)
	assert.Len(t, results, 6)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, db.TableNames(), f.GetSheetList())

	rows, err := f.GetRows("trends_over_time")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"hotel", "date", "bookings", "cancellations"},
		{"Resort Hotel", "2017-07-01", "3", "1"},
	}, rows)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Couple", "Couple"},
		{[]byte("12.50"), "12.50"},
		{int64(42), "42"},
		{7, "7"},
		{33.333, "33.333"},
		{true, "true"},
		{time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC), "2016-03-01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}
