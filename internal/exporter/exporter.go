// Package exporter dumps committed view tables to flat files.
//
// ExportCSV writes one <table>.csv per table with a header row of column
// names. ExportWorkbook writes the same tables as sheets of a single XLSX
// workbook. Both read from the store only, never from in-memory views.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/db"
	"github.com/j-veylop/hotel-booking-tui/internal/logger"
)

// Source reads committed table rows. *db.DB implements it.
type Source interface {
	Export(ctx context.Context, table string) (*db.Table, error)
}

// Result describes one exported table.
type Result struct {
	Table string
	Path  string
	Rows  int
}

// ExportCSV writes each table to dir/<table>.csv. An empty table list
// exports every view table.
func ExportCSV(ctx context.Context, src Source, dir string, tables []string) ([]Result, error) {
	if len(tables) == 0 {
		tables = db.TableNames()
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	results := make([]Result, 0, len(tables))
	for _, table := range tables {
		t, err := src.Export(ctx, table)
		if err != nil {
			return results, fmt.Errorf("failed to export %s: %w", table, err)
		}

		path := filepath.Join(dir, table+".csv")
		if err := writeCSV(path, t); err != nil {
			return results, err
		}

		logger.Info("Table exported", "table", table, "path", path, "rows", len(t.Rows))
		results = append(results, Result{Table: table, Path: path, Rows: len(t.Rows)})
	}
	return results, nil
}

func writeCSV(path string, t *db.Table) (err error) {
	file, err := os.Create(path) // #nosec G304 -- path is built from the export directory and a known table name
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, v := range row {
			record[j] = FormatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatValue renders a stored value as flat-file text.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(db.DateLayout)
	default:
		return fmt.Sprint(v)
	}
}
