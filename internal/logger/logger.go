package logger

import (
	"fmt"
	"os"
	"sync"
)

// Log levels accepted by log.level and --log-level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger writing to stderr at the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level, os.Stderr)
	})
	return globalLogger
}

// ValidLevel reports an error for level strings the logger does not know.
func ValidLevel(level string) error {
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return nil
	}
	return fmt.Errorf("unknown log level %q", level)
}
