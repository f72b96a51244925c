// Package logging builds the structured loggers used across folio.
package logging

import (
	"io"
	"os"

	"folio/internal/config"

	"github.com/phuslu/log"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// New returns a logger writing to stderr. Format "console" gives
// human-readable lines, anything else JSON.
func New(cfg config.LoggingConfig) *log.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

func NewWithOutput(cfg config.LoggingConfig, w io.Writer) *log.Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	var writer log.Writer = &log.IOWriter{Writer: w}
	if cfg.Format == "console" {
		writer = &log.ConsoleWriter{
			Writer:         w,
			QuoteString:    true,
			EndWithMessage: true,
		}
	}

	return &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: timeFormat,
		Writer:     writer,
	}
}

// Silent discards everything. Used by tests and as the fallback for
// components constructed without a logger.
func Silent() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

func OrSilent(l *log.Logger) *log.Logger {
	if l == nil {
		return Silent()
	}
	return l
}
