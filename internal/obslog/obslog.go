// Package obslog builds the default structured logger the engine and
// solver log through: a plain text handler for piped/redirected output,
// and the same handler with color hinting left to the terminal when
// stdout is a TTY. See design doc Section "Ambient Stack — Logging".
package obslog

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// New builds a slog.Logger writing to w at level, matching the
// Info/Warn/Debug field-based logging style used throughout the engine.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts.AddSource = false
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Default builds the package-wide default logger at Info level, writing
// to stdout, and installs it via slog.SetDefault.
func Default() *slog.Logger {
	logger := New(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)
	return logger
}
