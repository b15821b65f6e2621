package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after tally.yaml.
const (
	EnvYearPolicy   = "TALLY_YEAR_POLICY"
	EnvFallbackYear = "TALLY_FALLBACK_YEAR"
	EnvCurrency     = "TALLY_CURRENCY"
	EnvLogLevel     = "TALLY_LOG_LEVEL"
	EnvLogFormat    = "TALLY_LOG_FORMAT"
)

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TALLY_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvYearPolicy); ok {
		cfg.Extract.YearPolicy = v
	}
	if v, ok := os.LookupEnv(EnvFallbackYear); ok {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvFallbackYear, v, err)
		}
		cfg.Extract.FallbackYear = year
	}
	if v, ok := os.LookupEnv(EnvCurrency); ok {
		cfg.Report.Currency = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.Logging.Format = v
	}
	return nil
}
