// Package debug provides the process-wide structured logger used by the builder,
// the schema resolver and the database adapters.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger  = newLogger(io.Discard, false)
	enabled bool
	mu      sync.RWMutex
)

func newLogger(w io.Writer, enable bool) *slog.Logger {
	level := slog.LevelError + 1
	if enable {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init enables or disables debug logging to stderr.
func Init(enable bool) {
	SetOutput(os.Stderr, enable)
}

// SetOutput routes log records to w. When enable is false every record is discarded.
func SetOutput(w io.Writer, enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	logger = newLogger(w, enable)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Logger returns the underlying slog.Logger instance.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
