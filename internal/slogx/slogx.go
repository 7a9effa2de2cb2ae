package slogx

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// ChanWriter buffers writes and sends complete lines to Ch.
// Used with a slog handler for fan-in logging from concurrent fetches.
type ChanWriter struct {
	Ch  chan<- string
	Buf []byte

	mu      sync.Mutex
	dropped int
}

func (w *ChanWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Buf = append(w.Buf, p...)
	for {
		i := bytes.IndexByte(w.Buf, '\n')
		if i < 0 {
			break
		}
		line := string(w.Buf[:i])
		w.Buf = w.Buf[i+1:]
		select {
		case w.Ch <- line:
		default:
			w.dropped++
		}
	}
	return len(p), nil
}

// Dropped returns how many lines were discarded because Ch was full.
func (w *ChanWriter) Dropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// NewChanLogger creates a slog.Logger that writes to the channel, one line per record.
// format is "json" or anything else for text, as in NewLogger.
func NewChanLogger(ch chan<- string, level, format string) (*slog.Logger, *ChanWriter) {
	w := &ChanWriter{Ch: ch}
	return NewLogger(w, level, format), w
}

// ParseLevel converts string (debug|info|warn|error) to slog.Level. Unknown → info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger on w. format is "json" or anything else for text.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewDefault creates a text logger writing to stderr with the given level string.
func NewDefault(level string) *slog.Logger {
	return NewLogger(os.Stderr, level, "text")
}
