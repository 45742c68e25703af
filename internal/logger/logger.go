// Package logger builds the slog loggers used by the aiogguf CLI.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the output handler.
type Format string

// Supported formats.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
)

// New returns a logger writing to w at the given level.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts))
	case FormatPretty:
		return slog.New(NewPrettyHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// Default returns a pretty logger on stderr at Info.
func Default() *slog.Logger {
	return New(os.Stderr, slog.LevelInfo, FormatPretty)
}

// ParseLevel converts a level name to slog.Level. Unknown names map to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type loggerKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return Default()
}
