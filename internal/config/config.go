// Package config resolves process settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/timesheet/internal/remote"
)

// DefaultHTTPAddr is where `timesheet serve` listens unless overridden.
const DefaultHTTPAddr = "127.0.0.1:8050"

// Config holds every setting the binary needs.
type Config struct {
	DBPath      string
	ExportDir   string
	CatalogPath string // empty uses the embedded catalog
	HTTPAddr    string
	Employee    string // default --employee for CLI commands
	Location    *time.Location
	LogUseCases bool
	Sink        remote.Config
}

// LoadConfig reads TIMESHEET_* variables. Paths default to ~/.timesheet.
// An unknown TIMESHEET_TZ is an error rather than a silent fallback, since
// it decides which day timers may start on.
func LoadConfig() (Config, error) {
	cfg := Config{
		DBPath:      os.Getenv("TIMESHEET_DB"),
		ExportDir:   os.Getenv("TIMESHEET_EXPORT_DIR"),
		CatalogPath: os.Getenv("TIMESHEET_CATALOG"),
		HTTPAddr:    DefaultHTTPAddr,
		Employee:    os.Getenv("TIMESHEET_EMPLOYEE"),
		Location:    time.Local,
		Sink:        remote.LoadConfig(),
	}

	if cfg.DBPath == "" || cfg.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		if cfg.DBPath == "" {
			cfg.DBPath = filepath.Join(home, ".timesheet", "timesheet.db")
		}
		if cfg.ExportDir == "" {
			cfg.ExportDir = filepath.Join(home, ".timesheet", "submissions")
		}
	}
	if v := os.Getenv("TIMESHEET_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("TIMESHEET_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMESHEET_TZ"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("TIMESHEET_TZ: %w", err)
		}
		cfg.Location = loc
	}
	return cfg, nil
}
