package output

import (
	"io"
	"log/slog"
	"time"

	"aggbars/internal/model"
)

// LogWriter emits one structured text line per bar, in server order.
type LogWriter struct{}

func (LogWriter) Format() string { return "log" }

func (LogWriter) Write(w io.Writer, resp *model.BarsResponse) error {
	logger := slog.New(slog.NewTextHandler(w, nil))
	logger.Info("aggregated bars",
		"ticker", resp.Ticker,
		"adjusted", resp.Adjusted,
		"query_count", resp.QueryCount,
		"results_count", resp.ResultsCount)
	for _, b := range resp.Results {
		logger.Info("bar",
			"t", b.Time().Format(time.RFC3339),
			"o", b.Open,
			"h", b.High,
			"l", b.Low,
			"c", b.Close,
			"v", b.Volume,
			"vw", b.VolumeWeighted,
			"n", b.Transactions)
	}
	return nil
}
