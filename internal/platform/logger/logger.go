// Package logger provides structured logging for the application
// using the standard library log/slog package.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
)

// ParseLevel converts a configured level name into a slog.Level.
// Matching is case-insensitive; "fatal" is treated as error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error", "fatal":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Setup initializes the application's logging system from the server
// configuration. It creates a JSON logger on stdout, installs it as the
// slog default and returns it.
//
// An unknown level falls back to info and is reported with a warning.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.ServerConfig, out io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("service", "tasks-api")
	slog.SetDefault(logger)

	return logger, nil
}
