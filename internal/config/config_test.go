package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Execution.MaxConcurrency != 0 {
		t.Errorf("default max_concurrency = %d, want 0 (unlimited)", cfg.Execution.MaxConcurrency)
	}
	if cfg.Execution.Shell != "/bin/sh" {
		t.Errorf("default shell = %q", cfg.Execution.Shell)
	}
	if !cfg.Console.EnableColor {
		t.Error("color should default to enabled")
	}
	if cfg.Console.LogLevel != "info" {
		t.Errorf("default console log level = %q", cfg.Console.LogLevel)
	}
	if !cfg.History.Enabled {
		t.Error("history should default to enabled")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Console.LogLevel != "info" {
		t.Errorf("expected defaults, got log level %q", cfg.Console.LogLevel)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `execution:
  max_concurrency: 4
console:
  log_level: debug
history:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Execution.MaxConcurrency != 4 {
		t.Errorf("max_concurrency = %d, want 4", cfg.Execution.MaxConcurrency)
	}
	if cfg.Console.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Console.LogLevel)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled")
	}
	// Untouched sections keep their defaults.
	if cfg.Execution.Shell != "/bin/sh" {
		t.Errorf("shell = %q, want default", cfg.Execution.Shell)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative concurrency", "execution:\n  max_concurrency: -1\n"},
		{"bad console level", "console:\n  log_level: loud\n"},
		{"bad file level", "logging:\n  level: everything\n"},
		{"malformed yaml", "execution: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
