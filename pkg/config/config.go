package config

import (
	"github.com/mverstraete/mp4merge/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Merge   MergeConfig   `yaml:"merge"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MergeConfig holds merge-related settings
type MergeConfig struct {
	BufferSize     int   `yaml:"buffer_size"`
	BandwidthLimit int64 `yaml:"bandwidth_limit"` // bytes per second, 0 = unlimited
	Checksum       bool  `yaml:"checksum"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format    string `yaml:"format"`    // "human" or "json"
	Progress  bool   `yaml:"progress"`  // Show a progress bar
	Quiet     bool   `yaml:"quiet"`     // Suppress non-error output
	Directory string `yaml:"directory"` // Default directory for relative output paths
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			BufferSize:     65536,
			BandwidthLimit: 0,
			Checksum:       false,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Merge.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "merge.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if c.Merge.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "merge.bandwidth_limit",
			Message: "cannot be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
