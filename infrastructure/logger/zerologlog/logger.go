// ABOUTME: Zerolog implementation of the Logger interface
// ABOUTME: Writes JSON lines, or human-readable console output when pretty

package zerologlog

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Logger implements the Logger interface using zerolog
type Logger struct {
	z zerolog.Logger
}

// New creates a zerolog-backed logger writing to out.
// json=false selects zerolog's console writer.
func New(out io.Writer, level string, json bool) *Logger {
	if !json {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}
	z := zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug().Fields(fields).Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.z.Info().Fields(fields).Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn().Fields(fields).Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.z.Error().Fields(fields).Msg(msg)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
