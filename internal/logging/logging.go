// Package logging builds the process logger on top of charmbracelet/log.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
)

// Prefix is printed in front of every log line.
const Prefix = "taskboard"

// New creates a leveled logger writing to w.
func New(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// FromConfig creates a logger honoring the config's level, format and --debug.
func FromConfig(cfg *config.Config, w io.Writer) *log.Logger {
	if cfg == nil {
		return New(w, config.DefaultLogLevel, "")
	}
	return New(w, cfg.EffectiveLogLevel(), cfg.LogFormat)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel parses a string log level. Unknown values mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown values mean text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
