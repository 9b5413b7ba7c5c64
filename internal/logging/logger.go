// Package logging configures the charmbracelet/log loggers used by gosmf
// commands.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every command log line.
const Prefix = "gosmf"

//nolint:gochecknoglobals // process-wide fallback for code without a command context
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// ParseLevel maps a level name to a log level. Names are case insensitive
// and "warning" is accepted for warn. Unknown or empty names select info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New creates a stderr logger at the given level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level: ParseLevel(level),
	})
}

// ForCommand creates the logger for one command run. Lines carry the gosmf
// prefix and, below the root command, the command name.
func ForCommand(w io.Writer, level, command string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: Prefix,
	})
	if command == "" || command == Prefix {
		return logger
	}
	return logger.With(FieldCommand, command)
}

// Default returns the process-wide logger. Commands log through the logger
// in their context instead; see FromContext.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// NewInteractive creates a stderr logger for user-facing messages such as
// "created configuration file". It stays at info level under --debug.
func NewInteractive() *log.Logger {
	return NewWithWriter(os.Stderr, "info")
}
