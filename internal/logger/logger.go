// Package logger builds the structured logger handed to every component.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable console output instead of JSON lines
	Out    io.Writer
}

// New creates a new structured logger. Output defaults to stderr so that
// reports written to stdout stay machine readable.
func New(cfg Config) zerolog.Logger {
	level := ParseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Out != nil {
		output = cfg.Out
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
