package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, FormatJSON)
	log.Info("parsed", "tensors", 291)

	assert.Contains(t, buf.String(), `"msg":"parsed"`)
	assert.Contains(t, buf.String(), `"tensors":291`)
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn, FormatText)
	log.Info("hidden")
	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, FormatPretty)
	log.With("file", "model.gguf").WithGroup("cfg").Debug("resolved", "key", "llama.block_count", "name", "tiny llama")

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "resolved")
	assert.Contains(t, out, "file=model.gguf")
	assert.Contains(t, out, "cfg.key=llama.block_count")
	assert.Contains(t, out, `cfg.name="tiny llama"`)
	assert.NotContains(t, out, "cfg.file")
}

func TestPrettyHandlerEnabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	h = NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, FormatText)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)
	require.Same(t, log, got)

	fallback, ok := FromContext(context.Background()).Handler().(*PrettyHandler)
	require.True(t, ok)
	assert.True(t, fallback.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelDebug))
}
