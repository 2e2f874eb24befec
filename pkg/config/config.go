package config

import (
	"strings"
)

// Grouping methods
const (
	MethodExternal = "external"
	MethodBinary   = "binary"
)

// Config represents the application configuration
type Config struct {
	Comparator ComparatorConfig `yaml:"comparator"`
	Pager      PagerConfig      `yaml:"pager"`
	Display    DisplayConfig    `yaml:"display"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exclude    []string         `yaml:"exclude"`
}

// ComparatorConfig holds settings for the content comparator
type ComparatorConfig struct {
	Command    string   `yaml:"command"`     // Executable run as <command> <options...> <a> <b>
	Options    []string `yaml:"options"`     // Passed before the two file paths
	Method     string   `yaml:"method"`      // "external" or "binary"
	BufferSize int      `yaml:"buffer_size"` // Read buffer for the binary method
}

// PagerConfig holds settings for the diff pager
type PagerConfig struct {
	Command string   `yaml:"command"`
	Options []string `yaml:"options"`
	Secure  bool     `yaml:"secure"` // Run the pager with LESSSECURE=1
}

// DisplayConfig holds interactive display settings
type DisplayConfig struct {
	Width  int    `yaml:"width"`  // 0 = detect from the terminal
	Prompt string `yaml:"prompt"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Progress     bool   `yaml:"progress"`      // Show the grouping progress bar
	ReportFormat string `yaml:"report_format"` // "human" or "json"
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = no logging)
}

// ValidationError reports an invalid configuration value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Comparator: ComparatorConfig{
			Command:    "diff",
			Options:    []string{},
			Method:     MethodExternal,
			BufferSize: 65536,
		},
		Pager: PagerConfig{
			Command: "less",
			Options: []string{"-R"},
			Secure:  true,
		},
		Display: DisplayConfig{
			Width:  0,
			Prompt: "cmpgroups> ",
		},
		Output: OutputConfig{
			Progress:     true,
			ReportFormat: "human",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Comparator.Command) == "" {
		return &ValidationError{
			Field:   "comparator.command",
			Message: "must not be empty",
		}
	}

	validMethods := map[string]bool{MethodExternal: true, MethodBinary: true}
	if !validMethods[c.Comparator.Method] {
		return &ValidationError{
			Field:   "comparator.method",
			Message: "must be 'external' or 'binary'",
		}
	}

	if c.Comparator.BufferSize < 1024 {
		return &ValidationError{
			Field:   "comparator.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	if strings.TrimSpace(c.Pager.Command) == "" {
		return &ValidationError{
			Field:   "pager.command",
			Message: "must not be empty",
		}
	}

	if c.Display.Width < 0 {
		return &ValidationError{
			Field:   "display.width",
			Message: "must be 0 (detect) or a positive column count",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.ReportFormat] {
		return &ValidationError{
			Field:   "output.report_format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
