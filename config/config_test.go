package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GROWTH_TRACKER_DATA", "")
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DailyResetTime != DefaultDailyResetTime {
		t.Fatalf("expected default reset time, got %q", cfg.DailyResetTime)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.DataFile, DefaultDataFile) {
		t.Fatalf("expected default data file, got %q", cfg.DataFile)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Setenv("GROWTH_TRACKER_DATA", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
data_file = "` + filepath.Join(dir, "data.json") + `"
daily_reset_time = "06:30"
default_category = "学习"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataFile != filepath.Join(dir, "data.json") {
		t.Fatalf("unexpected data file: %q", cfg.DataFile)
	}
	if cfg.DailyResetTime != "06:30" {
		t.Fatalf("unexpected reset time: %q", cfg.DailyResetTime)
	}
	if cfg.DefaultCategory != "学习" {
		t.Fatalf("unexpected default category: %q", cfg.DefaultCategory)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected log level untouched by partial file, got %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverridesDataFile(t *testing.T) {
	override := filepath.Join(t.TempDir(), "elsewhere.json")
	t.Setenv("GROWTH_TRACKER_DATA", override)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataFile != override {
		t.Fatalf("expected env override %q, got %q", override, cfg.DataFile)
	}
}

func TestLoadRejectsInvalidResetTime(t *testing.T) {
	t.Setenv("GROWTH_TRACKER_DATA", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`daily_reset_time = "25:99"`), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad reset time")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandHome("~/x/y.json"); got != filepath.Join(home, "x", "y.json") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if got := ExpandHome("/abs/path.json"); got != "/abs/path.json" {
		t.Fatalf("expected absolute path untouched, got %q", got)
	}
	if got := ExpandHome("relative.json"); got != "relative.json" {
		t.Fatalf("expected relative path untouched, got %q", got)
	}
}
