package app

import (
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // project folder for the project commands

	LogFormat string
	LogLevel  string

	// IgnoreUnknown makes the decoder log unrecognized top-level keys
	// instead of failing.
	IgnoreUnknown bool
	// DefaultTypes maps a category to the type tag used when an item omits
	// its type.
	DefaultTypes map[string]string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ProjectPath == "" {
		cfg.ProjectPath = "."
	}
	for category, tag := range cfg.DefaultTypes {
		if category == "" || tag == "" {
			return nil, fmt.Errorf("invalid default type '%s=%s': category and type must not be empty", category, tag)
		}
	}
	return &cfg, nil
}
