// Package logging builds the structured logger shared by every component.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// New creates a logger at the given level. format "json" writes one JSON
// object per line, anything else writes human-readable console lines.
func New(level, format string) *log.Logger {
	return NewWithOutput(level, format, os.Stderr)
}

// NewWithOutput creates a logger writing to w.
func NewWithOutput(level, format string, w io.Writer) *log.Logger {
	if level == "" {
		level = "info"
	}
	logger := &log.Logger{
		Level:      log.ParseLevel(strings.ToLower(level)),
		TimeFormat: timeFormat,
	}
	if strings.EqualFold(format, "json") {
		logger.Writer = &log.IOWriter{Writer: w}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: w}
	}
	return logger
}

// NewSilent creates a logger that discards all output.
func NewSilent() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
