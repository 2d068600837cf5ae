package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/logger"
)

// ExportWorkbook writes each table as a sheet of one XLSX workbook at path.
// An empty table list exports every view table.
func ExportWorkbook(ctx context.Context, src Source, path string, tables []string) ([]Result, error) {
	if len(tables) == 0 {
		tables = db.TableNames()
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(0)
	results := make([]Result, 0, len(tables))
	for i, table := range tables {
		t, err := src.Export(ctx, table)
		if err != nil {
			return results, fmt.Errorf("failed to export %s: %w", table, err)
		}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table); err != nil {
				return results, fmt.Errorf("failed to name sheet %s: %w", table, err)
			}
		} else if _, err := f.NewSheet(table); err != nil {
			return results, fmt.Errorf("failed to add sheet %s: %w", table, err)
		}

		if err := writeSheet(f, table, t); err != nil {
			return results, err
		}
		results = append(results, Result{Table: table, Path: path, Rows: len(t.Rows)})
	}

	if err := f.SaveAs(path); err != nil {
		return results, fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Info("Workbook exported", "path", path, "sheets", len(results))
	return results, nil
}

func writeSheet(f *excelize.File, sheet string, t *db.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// cellValue keeps numbers numeric and renders everything else as text.
func cellValue(v any) interface{} {
	switch v := v.(type) {
	case int64, int, float64:
		return v
	case time.Time:
		return v.Format(db.DateLayout)
	default:
		return FormatValue(v)
	}
}
