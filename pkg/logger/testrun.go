package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; tests only care that logging never panics.
func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}
