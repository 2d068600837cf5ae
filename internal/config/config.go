// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	BookingsPath   string `envconfig:"BOOKINGS_PATH" default:"hotel_bookings.csv" validate:"required"`
	StoreDriver    string `envconfig:"STORE_DRIVER" default:"sqlite" validate:"oneof=sqlite postgres"`
	DatabaseDSN    string `envconfig:"DATABASE_DSN" validate:"required_if=StoreDriver postgres"`
	ExportDir      string `envconfig:"EXPORT_DIR" default:"exports" validate:"required"`
	ExportWorkbook string `envconfig:"EXPORT_WORKBOOK" validate:"omitempty,endswith=.xlsx"`
	PersistOnStart bool   `envconfig:"PERSIST_ON_START" default:"false"`
	DesktopNotify  bool   `envconfig:"DESKTOP_NOTIFY" default:"false"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogFile        string `envconfig:"LOG_FILE"`
}

const appDirName = "hotel-booking-tui"

// Load reads configuration from .env files and environment variables and
// finalizes it.
func Load() (*Config, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads .env files and environment variables without filling
// derived defaults or validating, so callers can apply overrides first.
func LoadEnv() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// Finalize fills the defaults that depend on other fields, validates the
// result and creates the log directory.
func (c *Config) Finalize() error {
	if c.DatabaseDSN == "" && c.StoreDriver == "sqlite" {
		c.DatabaseDSN = getDefaultDatabasePath()
	}
	if c.LogFile == "" {
		c.LogFile = getDefaultLogPath()
	}

	if err := c.Validate(); err != nil {
		return err
	}

	// Ensure log directory exists
	return ensureDir(filepath.Dir(c.LogFile))
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".hbt", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hbt.db"
	}
	return filepath.Join(home, ".config", appDirName, "hbt.db")
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hbt.log"
	}
	return filepath.Join(home, ".config", appDirName, "hbt.log")
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
