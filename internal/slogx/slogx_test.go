package slogx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestChanLogger_SplitsLines(t *testing.T) {
	t.Parallel()

	ch := make(chan string, 4)
	logger, w := NewChanLogger(ch, "info", "text")

	logger.Info("fetch started", "mode", "inline")
	logger.Debug("hidden")
	logger.Info("fetch succeeded", "bars", 3)

	require.Len(t, ch, 2)
	assert.Contains(t, <-ch, `msg="fetch started" mode=inline`)
	assert.Contains(t, <-ch, `msg="fetch succeeded" bars=3`)
	assert.Zero(t, w.Dropped())
}

func TestChanLogger_JSON(t *testing.T) {
	t.Parallel()

	ch := make(chan string, 4)
	logger, _ := NewChanLogger(ch, "debug", "json")

	logger.Debug("fetch started", "mode", "header")

	require.Len(t, ch, 1)
	line := <-ch
	assert.Contains(t, line, `"msg":"fetch started"`)
	assert.Contains(t, line, `"mode":"header"`)
	assert.NotContains(t, line, "\n")
}

func TestChanWriter_DropsWhenFull(t *testing.T) {
	t.Parallel()

	ch := make(chan string, 1)
	w := &ChanWriter{Ch: ch}
	_, err := w.Write([]byte("a\nb\nc"))
	require.NoError(t, err)

	assert.Equal(t, "a", <-ch)
	assert.Equal(t, 1, w.Dropped())
	assert.Equal(t, "c", string(w.Buf))
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")
	logger.Info("skipped")
	logger.Warn("kept", "n", 1)

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.Contains(t, buf.String(), `"n":1`)
}
