// Package logging configures the slog.Logger used across the service and
// CLI, with a level and JSON/text format selectable from Config.
package logging

import (
	"log/slog"
	"os"
)

// Config controls the logger New builds.
type Config struct {
	// Level is the minimum level to emit. Default: slog.LevelInfo.
	Level slog.Level

	// JSON selects JSON output; when false, logs use slog's text handler.
	JSON bool

	// Service is attached to every record as the "service" attribute.
	Service string
}

// New builds a slog.Logger writing to stderr per cfg.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}

	return slog.New(handler)
}

// Default returns a text logger at info level tagged "impact-analyser",
// suitable for CLI use.
func Default() *slog.Logger {
	return New(Config{Level: slog.LevelInfo, Service: "impact-analyser"})
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// slog.Level, defaulting to Info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
