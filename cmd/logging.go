package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/config"
)

// newLogger opens the log file named by the configuration. The terminal
// belongs to the TUI, so nothing is logged to stderr. An empty log_file
// discards everything.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return nil, nil, fmt.Errorf("log_level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return newTextLogger(f, level), func() { _ = f.Close() }, nil
}

func newTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("pid", os.Getpid())
}
