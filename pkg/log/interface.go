// Package log provides the structured logging interface used by polyfit.
//
// The interface mirrors log/slog so that callers can plug in their own backend.
// The default backend is zerolog (see NewZerologLogger); SetupLogger configures
// a log/slog JSON handler that expands cockroachdb/errors stack traces.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("polynomial").With(
//	    log.ModelNameKey, "PolynomialRegression",
//	)
//	logger.Info("fit completed",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 40,
//	    log.DegreeKey, 3,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with slog-style key/value fields.
//
// Error treats a leading error value in fields specially: it is logged under
// the "error" key together with its stack trace when one is available.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every subsequent record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values are compatible with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. It lets tests swap the process-wide backend.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
