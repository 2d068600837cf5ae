package db

import "fmt"

// Driver selects the store backend.
type Driver string

// Supported drivers.
const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DateLayout is the storage format of month buckets.
const DateLayout = "2006-01-02"

const (
	memoryDSN    = ":memory:"
	maxOpenConns = 10
	maxIdleConns = 5
)

// dialect holds the SQL that differs between backends.
type dialect struct {
	driverName  string
	pragmas     []string
	tableExists string
	// dedupe keeps one row per key in legacy tables; %[1]s is the table,
	// %[2]s the key column list.
	dedupe      string
	placeholder func(n int) string
}

// postgresDedupe keeps the newest physical row per key. There is no max(tid)
// aggregate before PostgreSQL 14.
const postgresDedupe = "DELETE FROM %[1]s WHERE ctid NOT IN " +
	"(SELECT DISTINCT ON (%[2]s) ctid FROM %[1]s ORDER BY %[2]s, ctid DESC)"

var dialects = map[Driver]dialect{
	DriverSQLite: {
		driverName: "sqlite",
		pragmas: []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA cache_size=-64000", // 64MB cache
			"PRAGMA busy_timeout=5000",
			"PRAGMA temp_store=MEMORY",
		},
		tableExists: "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
		dedupe:      "DELETE FROM %[1]s WHERE rowid NOT IN (SELECT MAX(rowid) FROM %[1]s GROUP BY %[2]s)",
		placeholder: func(int) string { return "?" },
	},
	DriverPostgres: {
		driverName:  "postgres",
		tableExists: "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1",
		dedupe:      postgresDedupe,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	},
}
