package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's own logger from cfg. The global logger is left
// alone so that several apps can run side by side, as they do in tests.
// An unrecognized level falls back to info.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.IgnoreUnknown {
		logger = logger.With("residue", "ignore")
	}
	return logger
}
