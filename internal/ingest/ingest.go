// Package ingest reads hotel booking files into raw booking records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// Input column names.
const (
	ColHotel         = "hotel"
	ColArrivalYear   = "arrival_date_year"
	ColArrivalMonth  = "arrival_date_month"
	ColArrivalDay    = "arrival_date_day_of_month"
	ColWeekendNights = "stays_in_weekend_nights"
	ColWeekNights    = "stays_in_week_nights"
	ColAdults        = "adults"
	ColChildren      = "children"
	ColBabies        = "babies"
	ColRoomType      = "reserved_room_type"
	ColIsCanceled    = "is_canceled"
)

// RequiredColumns lists every column the classifiers and aggregations need.
var RequiredColumns = []string{
	ColHotel,
	ColArrivalYear,
	ColArrivalMonth,
	ColArrivalDay,
	ColWeekendNights,
	ColWeekNights,
	ColAdults,
	ColChildren,
	ColBabies,
	ColRoomType,
	ColIsCanceled,
}

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// MalformedRecordError reports a row that cannot be turned into a booking.
// Row is the 1-based data row index; 0 refers to the header. Rows of empty
// cells are skipped but still counted. Fully empty CSV lines are not records
// and are not counted.
type MalformedRecordError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("malformed record at row %d: %s", e.Row, e.Reason)
	}
	if e.Value == "" {
		return fmt.Sprintf("malformed record at row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed record at row %d, column %q: %s (value %q)", e.Row, e.Column, e.Reason, e.Value)
}

// Load reads bookings from a .csv or .xlsx file.
func Load(path string) ([]models.Booking, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path) // #nosec G304 -- path comes from user configuration
		if err != nil {
			return nil, fmt.Errorf("failed to open bookings file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV parses bookings from CSV with a header row. Row order is preserved
// and the first malformed row aborts the whole read.
func ReadCSV(r io.Reader) ([]models.Booking, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MalformedRecordError{Row: 0, Reason: "missing header row"}
	}
	if err != nil {
		return nil, &MalformedRecordError{Row: 0, Reason: err.Error()}
	}

	p, err := newRowParser(header)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedRecordError{Row: row + 1, Reason: err.Error()}
		}
		row++
		if isBlank(fields) {
			continue
		}

		b, err := p.parse(row, fields)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	logger.Debug("parsed bookings", "format", "csv", "rows", len(bookings))
	return bookings, nil
}

// parseRows converts header + data rows from any tabular source.
func parseRows(rows [][]string) ([]models.Booking, error) {
	if len(rows) == 0 {
		return nil, &MalformedRecordError{Row: 0, Reason: "missing header row"}
	}

	p, err := newRowParser(rows[0])
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(rows)-1)
	row := 0
	for _, fields := range rows[1:] {
		row++
		if isBlank(fields) {
			continue
		}
		b, err := p.parse(row, fields)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// rowParser maps header positions to booking fields.
type rowParser struct {
	index       map[string]int
	header      []string
	passthrough []int
}

func newRowParser(header []string) (*rowParser, error) {
	p := &rowParser{
		index:  make(map[string]int, len(header)),
		header: make([]string, len(header)),
	}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		p.header[i] = name
		if _, dup := p.index[name]; !dup {
			p.index[name] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := p.index[col]; !ok {
			return nil, &MalformedRecordError{Row: 0, Column: col, Reason: "required column missing from header"}
		}
	}

	required := make(map[string]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		required[col] = true
	}
	for i, name := range p.header {
		if name != "" && !required[name] {
			p.passthrough = append(p.passthrough, i)
		}
	}
	return p, nil
}

func (p *rowParser) parse(row int, fields []string) (models.Booking, error) {
	var b models.Booking
	var err error

	if b.Hotel, err = p.text(row, fields, ColHotel); err != nil {
		return b, err
	}
	if b.ArrivalMonth, err = p.text(row, fields, ColArrivalMonth); err != nil {
		return b, err
	}
	if b.ReservedRoomType, err = p.text(row, fields, ColRoomType); err != nil {
		return b, err
	}
	if b.ArrivalYear, err = p.integer(row, fields, ColArrivalYear); err != nil {
		return b, err
	}
	if b.ArrivalDay, err = p.integer(row, fields, ColArrivalDay); err != nil {
		return b, err
	}

	counts := []struct {
		col string
		dst *int
	}{
		{ColWeekendNights, &b.WeekendNights},
		{ColWeekNights, &b.WeekNights},
		{ColAdults, &b.Adults},
		{ColChildren, &b.Children},
		{ColBabies, &b.Babies},
	}
	for _, c := range counts {
		if *c.dst, err = p.count(row, fields, c.col); err != nil {
			return b, err
		}
	}

	canceled, err := p.integer(row, fields, ColIsCanceled)
	if err != nil {
		return b, err
	}
	switch canceled {
	case 0:
	case 1:
		b.IsCanceled = true
	default:
		return b, &MalformedRecordError{
			Row: row, Column: ColIsCanceled, Value: strconv.Itoa(canceled), Reason: "expected 0 or 1",
		}
	}

	if len(p.passthrough) > 0 {
		b.Extra = make(map[string]string, len(p.passthrough))
		for _, i := range p.passthrough {
			if i < len(fields) {
				b.Extra[p.header[i]] = fields[i]
			}
		}
	}

	return b, nil
}

func (p *rowParser) text(row int, fields []string, col string) (string, error) {
	i := p.index[col]
	if i >= len(fields) {
		return "", &MalformedRecordError{Row: row, Column: col, Reason: "missing value"}
	}
	v := strings.TrimSpace(fields[i])
	if v == "" {
		return "", &MalformedRecordError{Row: row, Column: col, Reason: "missing value"}
	}
	return v, nil
}

func (p *rowParser) integer(row int, fields []string, col string) (int, error) {
	v, err := p.text(row, fields, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &MalformedRecordError{Row: row, Column: col, Value: v, Reason: "not an integer"}
	}
	return n, nil
}

func (p *rowParser) count(row int, fields []string, col string) (int, error) {
	n, err := p.integer(row, fields, col)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &MalformedRecordError{Row: row, Column: col, Value: strconv.Itoa(n), Reason: "negative count"}
	}
	return n, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
