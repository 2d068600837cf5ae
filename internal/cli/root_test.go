package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j-veylop/hotel-booking-tui/internal/version"
)

const bookingsCSV = "hotel,is_canceled,arrival_date_year,arrival_date_month,arrival_date_day_of_month," +
	"stays_in_weekend_nights,stays_in_week_nights,adults,children,babies,reserved_room_type,country\n" +
	"Resort Hotel,0,2015,July,1,0,1,1,0,0,A,PRT\n" +
	"Resort Hotel,1,2015,July,2,1,1,2,0,0,A,GBR\n" +
	"City Hotel,0,2015,August,5,2,3,2,1,0,D,PRT\n"

// testEnv points the configuration at a temporary directory and returns it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	data := filepath.Join(dir, "hotel_bookings.csv")
	if err := os.WriteFile(data, []byte(bookingsCSV), 0o600); err != nil {
		t.Fatalf("failed to write bookings: %v", err)
	}

	t.Setenv("BOOKINGS_PATH", data)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "bookings.db"))
	t.Setenv("EXPORT_DIR", filepath.Join(dir, "exports"))
	t.Setenv("EXPORT_WORKBOOK", "")
	t.Setenv("LOG_FILE", filepath.Join(dir, "hbt.log"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"view", "persist", "export", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help should list %q", sub)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"data", "db", "driver"} {
		flag := root.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Fatalf("expected --%s flag to exist", name)
		}
		if flag.DefValue != "" {
			t.Errorf("--%s should default to the environment, got %q", name, flag.DefValue)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, version.Name) {
		t.Errorf("version output = %q", out)
	}

	out, err = executeCommand("--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, version.Name) {
		t.Errorf("--version output = %q", out)
	}
}

func TestOptionsConfig(t *testing.T) {
	dir := testEnv(t)

	opts := &options{data: "other.xlsx", db: filepath.Join(dir, "other.db")}
	cfg, err := opts.config()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BookingsPath != "other.xlsx" {
		t.Errorf("BookingsPath = %q, want flag value", cfg.BookingsPath)
	}
	if cfg.DatabaseDSN != filepath.Join(dir, "other.db") {
		t.Errorf("DatabaseDSN = %q, want flag value", cfg.DatabaseDSN)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q, want environment value", cfg.StoreDriver)
	}

	opts = &options{driver: "mysql"}
	if _, err := opts.config(); err == nil {
		t.Error("expected validation error for unknown driver")
	}
}

func TestOptionsConfig_DriverOverride(t *testing.T) {
	t.Run("postgres flag without DSN", func(t *testing.T) {
		testEnv(t)
		t.Setenv("DATABASE_DSN", "")

		_, err := (&options{driver: "postgres"}).config()
		if err == nil || !strings.Contains(err.Error(), "required_if") {
			t.Errorf("expected a missing DSN error, got %v", err)
		}
	})

	t.Run("sqlite flag repairs postgres env", func(t *testing.T) {
		dir := testEnv(t)
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DATABASE_DSN", "")

		db := filepath.Join(dir, "x.db")
		cfg, err := (&options{driver: "sqlite", db: db}).config()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.StoreDriver != "sqlite" || cfg.DatabaseDSN != db {
			t.Errorf("got driver %q dsn %q", cfg.StoreDriver, cfg.DatabaseDSN)
		}
	})
}

func TestRootRejectsArgs(t *testing.T) {
	if _, err := executeCommand("extra"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRootMissingData(t *testing.T) {
	testEnv(t)
	if _, err := executeCommand("--data", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing bookings file")
	}
}
