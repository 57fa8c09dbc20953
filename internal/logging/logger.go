// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var defaultLogger atomic.Pointer[log.Logger]

// New creates a logger writing to stderr at the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w at the given level. Unknown
// levels fall back to info.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))

	return logger
}

// ParseLevel converts a level name to a log level, case-insensitively.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}

	parsed, err := log.ParseLevel(name)
	if err != nil || name == "" {
		return log.InfoLevel
	}

	return parsed
}

// NewInteractive creates an info-level logger prefixed with the program
// name, for commands that talk to a person at a terminal.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "wikidoc",
	})
	logger.SetLevel(log.InfoLevel)

	return logger
}

// Discard returns a logger that drops everything. Library packages use it
// when the caller supplied no logger.
func Discard() *log.Logger {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	logger.SetLevel(log.FatalLevel)

	return logger
}

// Default returns the package-level default logger, creating an
// info-level stderr logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}

	defaultLogger.CompareAndSwap(nil, New("info"))

	return defaultLogger.Load()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
