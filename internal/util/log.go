// Package util provides shared helpers for logging.
package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// NewLogger creates a structured logger using log/slog at the specified
// level, writing to the given file. The TUI owns the terminal, so stdout is
// never used; an empty path falls back to a dated file under /tmp. The
// caller closes the returned file.
func NewLogger(level, path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		path = fmt.Sprintf("/tmp/stockterm-%s.log", time.Now().Format("2006-01-02"))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slevel})
	return slog.New(handler), f, nil
}
