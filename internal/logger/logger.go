// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors nestnote needs: a file-backed logger for the TUI (which owns
// the terminal) and a no-op logger for tests.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the full
// zerolog API while leaving room for application helpers.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given role label (e.g. "tui", "cli")
// writing JSON lines to the file at path. The directory is created if
// missing; if the file cannot be opened the logger falls back to stderr so
// errors are never silently dropped.
func New(role, path, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := os.Stderr
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr == nil {
			if f, openErr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); openErr == nil {
				out = f
			}
		}
	}

	l := zerolog.New(out).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
