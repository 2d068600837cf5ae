package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// LoadXLSX reads bookings from the first sheet of an Excel workbook.
func LoadXLSX(path string) ([]models.Booking, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readWorkbook(f)
}

// ReadXLSX reads bookings from a workbook stream.
func ReadXLSX(r io.Reader) ([]models.Booking, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]models.Booking, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &MalformedRecordError{Row: 0, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	bookings, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed bookings", "format", "xlsx", "sheet", sheets[0], "rows", len(bookings))
	return bookings, nil
}
