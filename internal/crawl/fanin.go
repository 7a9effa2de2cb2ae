package crawl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"aggbars/internal/provider/polygon"
)

func runLogWriter(w io.Writer, lines <-chan string) {
	for s := range lines {
		fmt.Fprintln(w, s)
	}
}

type errorEntry struct {
	Job Job
	Err error
}

// runErrorHandler logs "fetch failed" with the error classified.
func runErrorHandler(entries <-chan errorEntry, logger *slog.Logger) {
	for e := range entries {
		attrs := []any{"ticker", e.Job.Query.Ticker, "mode", e.Job.Mode, "kind", errorKind(e.Err)}
		var fe *polygon.FetchError
		if errors.As(e.Err, &fe) && fe.StatusCode != 0 {
			attrs = append(attrs, "status", fe.StatusCode)
		}
		attrs = append(attrs, "error", e.Err)
		logger.Error("fetch failed", attrs...)
	}
}

// errorKind names the error class: config, transport, decode, cancelled or other.
func errorKind(err error) string {
	var cfgErr *polygon.ConfigError
	if errors.As(err, &cfgErr) {
		return "config"
	}
	var fe *polygon.FetchError
	if errors.As(err, &fe) {
		return fe.Kind.String()
	}
	return "other"
}
