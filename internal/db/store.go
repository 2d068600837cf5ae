package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/hotel-booking-tui/internal/logger"
	"github.com/j-veylop/hotel-booking-tui/internal/models"
)

// StoreReport describes the outcome of storing one view.
type StoreReport struct {
	Table string
	Rows  int
	// Existed is set when the table was already present. Warning then wraps
	// ErrDuplicateTable.
	Existed bool
	Warning error
}

// Table is the committed content of one view table.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Store writes a view into its table in a single transaction, creating the
// table when absent. Rows are upserted by their natural key.
func (db *DB) Store(ctx context.Context, view models.ViewData) (report StoreReport, err error) {
	table, rows, err := Rows(view)
	if err != nil {
		return report, err
	}
	s, err := schemaFor(table)
	if err != nil {
		return report, err
	}
	report.Table = table

	if err := db.available(ctx); err != nil {
		return report, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("%w: failed to begin transaction: %v", ErrStoreUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	existed, err := db.tableExists(ctx, tx, table)
	if err != nil {
		return report, err
	}
	if err = db.ensureTable(ctx, tx, s, existed); err != nil {
		return report, err
	}
	if existed {
		report.Existed = true
		report.Warning = fmt.Errorf("%w: %s", ErrDuplicateTable, table)
		logger.Warn("Table already exists, upserting rows", "table", table)
	}

	stmt, err := tx.PrepareContext(ctx, s.upsertSQL(db.dialect))
	if err != nil {
		return report, fmt.Errorf("failed to prepare upsert for %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return report, fmt.Errorf("failed to upsert into %s: %w", table, err)
		}
		report.Rows++
	}

	if err = tx.Commit(); err != nil {
		return report, fmt.Errorf("failed to commit %s: %w", table, err)
	}

	logger.Info("Stored view", "table", table, "rows", report.Rows, "existed", existed)
	return report, nil
}

// Export reads every committed row of a view table, ordered by its natural
// key. A table that was never stored yields no rows.
func (db *DB) Export(ctx context.Context, table string) (*Table, error) {
	s, err := schemaFor(table)
	if err != nil {
		return nil, err
	}
	if err := db.available(ctx); err != nil {
		return nil, err
	}

	out := &Table{Name: table, Columns: s.columnNames()}

	exists, err := db.tableExists(ctx, db.DB, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return out, nil
	}

	rows, err := db.QueryContext(ctx, s.selectSQL())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		values := make([]any, len(out.Columns))
		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		for i, v := range values {
			switch v := v.(type) {
			case []byte:
				values[i] = string(v)
			case time.Time:
				values[i] = v.Format(DateLayout)
			}
		}
		out.Rows = append(out.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	return out, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (db *DB) tableExists(ctx context.Context, q queryer, table string) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, db.dialect.tableExists, table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return n > 0, nil
}
