// Package logger wraps zerolog for diagnostic output on stderr.
// Stdout stays reserved for history payloads and the MCP protocol.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

var (
	mu      sync.RWMutex
	current = New("warn", "text", os.Stderr)
)

// New creates a new logger instance writing to out.
// Unknown levels fall back to warn; format "json" emits JSON lines, anything else is console text.
func New(level, format string, out io.Writer) *Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.WarnLevel
	}

	output := out
	if format != "json" {
		output = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "15:04:05"}
	}

	return &Logger{logger: zerolog.New(output).Level(logLevel).With().Timestamp().Logger()}
}

// Setup replaces the process-wide logger.
func Setup(level, format string) {
	SetDefault(New(level, format, os.Stderr))
}

// SetDefault installs l as the process-wide logger.
func SetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// Default returns the process-wide logger.
func Default() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debugf logs a debug message with formatting.
func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

// Infof logs an info message with formatting.
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

// Warn logs a warning message with an optional cause.
func (l *Logger) Warn(msg string, err error) {
	l.logger.Warn().Err(err).Msg(msg)
}

// Debugf logs to the process-wide logger.
func Debugf(format string, args ...any) {
	Default().Debugf(format, args...)
}

// Infof logs to the process-wide logger.
func Infof(format string, args ...any) {
	Default().Infof(format, args...)
}

// Warn logs to the process-wide logger.
func Warn(msg string, err error) {
	Default().Warn(msg, err)
}
