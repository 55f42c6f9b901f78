// Package logging builds the slog loggers used for engine diagnostics.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable holding the diagnostic log level.
const EnvLevel = "ARGSYNTH_LOG_LEVEL"

// ErrUnknownLevel is returned by ParseLevel for names it does not recognise.
var ErrUnknownLevel = errors.New("unknown log level")

// FromEnv returns a logger writing to w at the level named by $ARGSYNTH_LOG_LEVEL.
// Unset or unrecognised levels give a logger that discards everything.
func FromEnv(w io.Writer) *slog.Logger {
	name := os.Getenv(EnvLevel)
	if name == "" {
		return slog.New(slog.DiscardHandler)
	}

	level, err := ParseLevel(name)
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}

	return New(w, level)
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}
