// Package logging builds the slog loggers used by the gxid commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel and EnvFormat name the environment variables read by FromEnv
const (
	EnvLevel  = "GXID_LOG_LEVEL"
	EnvFormat = "GXID_LOG_FORMAT"
)

// ParseLevel converts debug|info|warn|error to a slog level.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// New returns a logger writing text or json records to w
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
	return slog.New(h), nil
}

// FromEnv builds a stderr logger from GXID_LOG_LEVEL and GXID_LOG_FORMAT,
// falling back to info/text when they are unset or invalid.
func FromEnv() *slog.Logger {
	l, err := New(os.Stderr, os.Getenv(EnvLevel), os.Getenv(EnvFormat))
	if err != nil {
		l, _ = New(os.Stderr, "info", "text")
	}
	return l
}
