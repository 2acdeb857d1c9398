// Package logging builds the application's zerolog logger. While the TUI
// owns the terminal, logs go to a file (or are discarded) so they cannot
// corrupt the alternate screen; plain commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewConsole returns a human-readable logger writing to stderr, for
// non-interactive commands.
func NewConsole(level string) zerolog.Logger {
	lvl := parseLevel(level)
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewFile returns a JSON logger appending to path, plus a close func. With
// an empty path logging is disabled entirely.
func NewFile(path, level string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.New(io.Discard), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}
	log := zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger()
	return log, f.Close, nil
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
