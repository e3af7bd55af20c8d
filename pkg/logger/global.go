package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global logger instance stored atomically.
var defaultLogger atomic.Pointer[charm.Logger]

func init() {
	defaultLogger.Store(New(os.Stderr))
}

// Default returns the global logger.
func Default() *charm.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the global logger. Nil is ignored.
func SetDefault(l *charm.Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// SetLevel parses level and applies it to the global logger.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	Default().SetLevel(lvl)
	return err
}

// Debug logs a debug message with key/value pairs on the global logger.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs an info message with key/value pairs on the global logger.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs a warning with key/value pairs on the global logger.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs an error with key/value pairs on the global logger.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}
