// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDataDir        = "~/.growth-tracker"
	DefaultDataFile       = "tracker.json"
	DefaultDailyResetTime = "00:00"
	DefaultLogLevel       = "info"
)

// Config holds the full configuration for the tracker host.
type Config struct {
	// DataFile is the path of the persisted document.
	DataFile string `toml:"data_file"`

	// DailyResetTime is the HH:MM local time of the day boundary used to
	// schedule the rollover timer.
	DailyResetTime string `toml:"daily_reset_time"`

	// DefaultCategory receives items added without an explicit category.
	// Empty means the document's first category.
	DefaultCategory string `toml:"default_category"`

	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataFile:       filepath.Join(DefaultDataDir, DefaultDataFile),
		DailyResetTime: DefaultDailyResetTime,
		LogLevel:       DefaultLogLevel,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir, "config.toml")
}

// Load reads the config file at path (or the default location when path is
// empty), merged over the defaults. A missing file is not an error. The
// GROWTH_TRACKER_DATA environment variable overrides the data file path.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	if env := strings.TrimSpace(os.Getenv("GROWTH_TRACKER_DATA")); env != "" {
		cfg.DataFile = env
	}
	cfg.DataFile = ExpandHome(cfg.DataFile)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data_file must not be empty")
	}
	if _, err := time.Parse("15:04", c.DailyResetTime); err != nil {
		return fmt.Errorf("daily_reset_time must be HH:MM: %w", err)
	}
	return nil
}

// ExpandHome resolves a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
