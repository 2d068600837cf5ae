// Package db manages the store connection and the aggregate view tables.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// PostgreSQL driver
	_ "github.com/lib/pq"
	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"

	"github.com/j-veylop/hotel-booking-tui/internal/logger"
)

// Store errors.
var (
	// ErrStoreUnavailable wraps connection and transport failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicateTable reports that a view table already existed. It is
	// informational; the rows are still written.
	ErrDuplicateTable = errors.New("table already exists")
	// ErrUnknownTable is returned for table names outside the view tables.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnsupportedDriver is returned by Open for unknown driver names.
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	driver  Driver
	dialect dialect
	dsn     string
}

// New opens a SQLite store at path.
func New(path string) (*DB, error) {
	return Open(context.Background(), DriverSQLite, path)
}

// Open connects to the store. For SQLite dsn is a file path; for PostgreSQL
// it is a lib/pq connection string.
func Open(ctx context.Context, driver Driver, dsn string) (*DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	if driver == DriverSQLite {
		// Ensure directory exists
		dir := filepath.Dir(dsn)
		if dir != "" && dir != "." && !strings.HasPrefix(dsn, "file:") && dsn != memoryDSN {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStoreUnavailable, err)
	}

	if driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// A single connection keeps in-memory databases and WAL writes
		// on one session.
		sqlDB.SetMaxOpenConns(1)
	}

	// Test connection
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to connect to database: %v", ErrStoreUnavailable, err)
	}

	db := &DB{
		DB:      sqlDB,
		driver:  driver,
		dialect: d,
		dsn:     dsn,
	}

	if err := db.configure(ctx); err != nil {
		_ = db.DB.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	logger.Info("Connected to store", "driver", string(driver))
	return db, nil
}

// Path returns the database file path, or the connection string for
// PostgreSQL.
func (db *DB) Path() string {
	return db.dsn
}

// Driver returns the store driver.
func (db *DB) Driver() Driver {
	return db.driver
}

// configure sets up database pragmas for optimal performance.
func (db *DB) configure(ctx context.Context) error {
	for _, pragma := range db.dialect.pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

// available pings the store and maps failures to ErrStoreUnavailable.
func (db *DB) available(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("%w: no connection", ErrStoreUnavailable)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	if db.driver == DriverSQLite {
		// Checkpoint WAL before closing
		_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	}
	return db.DB.Close()
}
