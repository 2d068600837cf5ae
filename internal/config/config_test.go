package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at an empty temp dir so no
// developer .env files are picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Setenv("HOME", tmpDir)

	for _, key := range []string{
		"BOOKINGS_PATH", "STORE_DRIVER", "DATABASE_DSN", "EXPORT_DIR", "EXPORT_WORKBOOK",
		"PERSIST_ON_START", "DESKTOP_NOTIFY", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BookingsPath != "hotel_bookings.csv" {
		t.Errorf("BookingsPath = %q, want %q", cfg.BookingsPath, "hotel_bookings.csv")
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q, want sqlite", cfg.StoreDriver)
	}
	if want := filepath.Join(home, ".config", "hotel-booking-tui", "hbt.db"); cfg.DatabaseDSN != want {
		t.Errorf("DatabaseDSN = %q, want %q", cfg.DatabaseDSN, want)
	}
	if want := filepath.Join(home, ".config", "hotel-booking-tui", "hbt.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.PersistOnStart || cfg.DesktopNotify {
		t.Error("PersistOnStart and DesktopNotify should default to false")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log settings = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if _, err := os.Stat(filepath.Dir(cfg.LogFile)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	home := isolate(t)

	t.Setenv("BOOKINGS_PATH", "/data/bookings.xlsx")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://hbt@localhost/hbt?sslmode=disable")
	t.Setenv("EXPORT_WORKBOOK", "out/views.xlsx")
	t.Setenv("PERSIST_ON_START", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE", filepath.Join(home, "logs", "hbt.log"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.StoreDriver != "postgres" {
		t.Errorf("StoreDriver = %q, want postgres", cfg.StoreDriver)
	}
	if !strings.HasPrefix(cfg.DatabaseDSN, "postgres://") {
		t.Errorf("DatabaseDSN = %q", cfg.DatabaseDSN)
	}
	if !cfg.PersistOnStart {
		t.Error("PersistOnStart should be true")
	}
	if cfg.ExportWorkbook != "out/views.xlsx" {
		t.Errorf("ExportWorkbook = %q", cfg.ExportWorkbook)
	}
	if _, err := os.Stat(filepath.Join(home, "logs")); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)

	content := "BOOKINGS_PATH=from-dotenv.csv\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("BOOKINGS_PATH")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.BookingsPath != "from-dotenv.csv" {
		t.Errorf("BookingsPath = %q, want from-dotenv.csv", cfg.BookingsPath)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"UnknownDriver", map[string]string{"STORE_DRIVER": "mysql"}},
		{"PostgresWithoutDSN", map[string]string{"STORE_DRIVER": "postgres"}},
		{"BadLogLevel", map[string]string{"LOG_LEVEL": "verbose"}},
		{"BadLogFormat", map[string]string{"LOG_FORMAT": "xml"}},
		{"BadWorkbook", map[string]string{"EXPORT_WORKBOOK": "views.csv"}},
		{"BadBool", map[string]string{"PERSIST_ON_START": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestFinalize_AfterOverride(t *testing.T) {
	home := isolate(t)
	t.Setenv("STORE_DRIVER", "postgres")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() should not validate: %v", err)
	}
	if cfg.DatabaseDSN != "" {
		t.Errorf("DatabaseDSN = %q, LoadEnv should not fill defaults", cfg.DatabaseDSN)
	}

	cfg.StoreDriver = "sqlite"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if want := filepath.Join(home, ".config", appDirName, "hbt.db"); cfg.DatabaseDSN != want {
		t.Errorf("DatabaseDSN = %q, want %q", cfg.DatabaseDSN, want)
	}

	pg := &Config{
		BookingsPath: "hotel_bookings.csv",
		StoreDriver:  "postgres",
		ExportDir:    "exports",
		LogLevel:     "info",
		LogFormat:    "text",
		LogFile:      filepath.Join(home, "hbt.log"),
	}
	if err := pg.Finalize(); err == nil {
		t.Error("Finalize() should require a DSN for postgres")
	}
	if pg.DatabaseDSN != "" {
		t.Errorf("postgres DSN = %q, the SQLite default must not apply", pg.DatabaseDSN)
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}
