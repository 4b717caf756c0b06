package core

import (
	"fmt"
	"log/slog"
	"strings"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger implements Logger on top of a structured slog.Logger.
// Messages are trimmed of trailing newlines and logged at info level.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts a slog.Logger to the Logger interface
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewDefaultLogger creates a logger that writes through slog's default handler
func NewDefaultLogger() Logger {
	return NewSlogLogger(slog.Default())
}

// With returns a logger that attaches the given attributes to every message
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Printf implements Logger
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	l.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// NopLogger discards everything. Useful in tests.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
