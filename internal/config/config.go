// Package config loads taskwave configuration from .taskwave/config.yaml.
// All settings have defaults; CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file location relative to the working
// directory.
const DefaultConfigPath = ".taskwave/config.yaml"

// ExecutionConfig controls how plans are executed.
type ExecutionConfig struct {
	// MaxConcurrency caps parallel tasks per wave (0 = unlimited)
	MaxConcurrency int `yaml:"max_concurrency"`

	// Shell is the shell used to run task commands
	Shell string `yaml:"shell"`
}

// ConsoleConfig controls terminal output formatting.
type ConsoleConfig struct {
	// EnableColor enables colored output on TTYs
	EnableColor bool `yaml:"enable_color"`

	// LogLevel is the minimum console log level (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// EnableProgressBar enables the per-wave progress bar
	EnableProgressBar bool `yaml:"enable_progress_bar"`
}

// LoggingConfig controls the per-run file logs.
type LoggingConfig struct {
	// Enabled turns file logging on
	Enabled bool `yaml:"enabled"`

	// Dir is the log directory
	Dir string `yaml:"dir"`

	// Level is the minimum file log level
	Level string `yaml:"level"`
}

// HistoryConfig controls the run-history database.
type HistoryConfig struct {
	// Enabled turns run-history recording on
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location
	DBPath string `yaml:"db_path"`
}

// Config is the root configuration object.
type Config struct {
	Execution ExecutionConfig `yaml:"execution"`
	Console   ConsoleConfig   `yaml:"console"`
	Logging   LoggingConfig   `yaml:"logging"`
	History   HistoryConfig   `yaml:"history"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Execution: ExecutionConfig{
			MaxConcurrency: 0,
			Shell:          "/bin/sh",
		},
		Console: ConsoleConfig{
			EnableColor:       true,
			LogLevel:          "info",
			EnableProgressBar: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Dir:     filepath.Join(".taskwave", "logs"),
			Level:   "info",
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".taskwave", "history.db"),
		},
	}
}

// LoadConfig reads configuration from the given path, applying defaults
// for everything the file does not set. A missing file is not an error;
// the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Execution.MaxConcurrency < 0 {
		return fmt.Errorf("execution.max_concurrency must be >= 0, got %d", c.Execution.MaxConcurrency)
	}
	switch c.Console.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("console.log_level %q is not a valid level", c.Console.LogLevel)
	}
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	return nil
}
