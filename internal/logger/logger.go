// Package logger wraps zerolog for pubviz diagnostics.
// Diagnostics go to stderr so that reports on stdout stay clean.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger wraps zerolog.Logger
type Logger struct {
	logger zerolog.Logger
}

// New creates a logger writing to stderr.
// A terminal gets the human-readable console format, anything else gets JSON lines.
func New(level string) *Logger {
	var output io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return NewWithWriter(level, output)
}

// NewWithWriter creates a logger that writes JSON lines to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(w).Level(logLevel).With().Timestamp().Logger()
	return &Logger{logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

// With creates a child logger with additional fields
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{
		logger: l.logger.With().Interface(key, value).Logger(),
	}
}
