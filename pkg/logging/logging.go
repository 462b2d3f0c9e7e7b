// Package logging configures the process-wide slog logger: a level and an
// output format, both overridable through the environment.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger writing to stdout with the configured level,
// as text or JSON per the Format setting.
func New(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	var handler slog.Handler
	if cfg.Format.normalize() == FormatJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// Level represents a logging severity level.
type Level string

// Log level constants.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) normalize() Level {
	return Level(strings.ToLower(strings.TrimSpace(string(l))))
}

// Validate checks if the level is a valid logging level. Matching is
// case-insensitive so environment overrides like LOG_LEVEL=DEBUG work.
func (l Level) Validate() error {
	switch l.normalize() {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l)
	}
}

// ToSlogLevel converts the Level to its slog.Level equivalent.
// Unknown levels default to slog.LevelInfo.
func (l Level) ToSlogLevel() slog.Level {
	switch l.normalize() {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format represents the log output format.
type Format string

// Log format constants.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func (f Format) normalize() Format {
	return Format(strings.ToLower(strings.TrimSpace(string(f))))
}

// Validate checks if the format is a valid logging format.
func (f Format) Validate() error {
	switch f.normalize() {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", f)
	}
}
