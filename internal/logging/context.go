package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = contextKey{}

// FromContext returns the logger stored in ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, loggerKey, logger)
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}

	return logger
}
