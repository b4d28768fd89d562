package core

import (
	"context"

	"github.com/huangsam/pubviz/internal/logger"
)

// Context keys for pipeline options
type contextKey string

const loggerKey contextKey = "logger"

// WithLogger attaches the diagnostics logger to the context.
func WithLogger(ctx context.Context, log *logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// loggerFrom returns the logger from context, or one that discards everything.
func loggerFrom(ctx context.Context) *logger.Logger {
	val := ctx.Value(loggerKey)
	if val == nil {
		return logger.Nop()
	}
	log, ok := val.(*logger.Logger)
	if !ok || log == nil {
		return logger.Nop()
	}
	return log
}
