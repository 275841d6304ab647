package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// openLog opens the log file at path for appending, creating its directory.
// The terminal belongs to the TUI, so nothing is logged to stderr.
func openLog(path string, debug bool) (*slog.Logger, io.Closer, error) {
	if path == "" {
		var err error
		if path, err = defaultLogPath(); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return newLogger(f, debug), f, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := new(slog.LevelVar)
	if debug {
		level.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
