package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/j-veylop/hotel-booking-tui/internal/logger"
)

// ensureTable creates a view table and its natural-key index.
// Tables written by older append-only exports may hold repeated keys, so
// those are collapsed to the most recent row before the unique index is
// built.
func (db *DB) ensureTable(ctx context.Context, q queryer, s tableSchema, existed bool) error {
	if _, err := q.ExecContext(ctx, s.createSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.name, err)
	}

	if existed {
		query := fmt.Sprintf(db.dialect.dedupe, s.name, strings.Join(s.key, ", "))
		res, err := q.ExecContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to collapse duplicate keys in %s: %w", s.name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			logger.Warn("Removed duplicate rows from legacy table", "table", s.name, "rows", n)
		}
	}

	if _, err := q.ExecContext(ctx, s.keyIndexSQL()); err != nil {
		return fmt.Errorf("failed to create key index for %s: %w", s.name, err)
	}
	return nil
}
