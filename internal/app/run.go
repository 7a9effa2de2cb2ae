package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"aggbars/internal/crawl"
	"aggbars/internal/model"
	"aggbars/internal/output"
	"aggbars/internal/provider"
)

// RunFetch fetches q once per mode, renders each successful response to out,
// compares the modes for parity and returns an error if any fetch failed.
func RunFetch(
	ctx context.Context,
	dp provider.DataProvider,
	w output.BarsWriter,
	out io.Writer,
	q model.Query,
	modes []model.AuthMode,
	opts crawl.Options,
	logger *slog.Logger,
) error {
	jobs := crawl.JobsFor(q, modes)
	results := crawl.Run(ctx, dp, jobs, opts)

	var rendered int
	var errs []error
	for _, r := range results {
		if !r.Ok() {
			errs = append(errs, fmt.Errorf("%s: %w", r.Job.Mode, r.Err))
			continue
		}
		// A parquet stream holds a single file.
		if w.Format() == "parquet" && rendered > 0 {
			logger.Info("skip output, parquet stream already written", "mode", r.Job.Mode)
			continue
		}
		logger.Info("aggregated bars", "mode", r.Job.Mode, "ticker", r.Response.Ticker, "bars", len(r.Response.Results))
		if err := w.Write(out, r.Response); err != nil {
			return fmt.Errorf("write %s output: %w", w.Format(), err)
		}
		rendered++
	}

	logParity(results, logger)

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d fetches failed: %w", len(errs), len(results), errors.Join(errs...))
	}
	return nil
}

func logParity(results []crawl.JobResult, logger *slog.Logger) {
	if len(results) < 2 {
		return
	}
	for _, other := range results[1:] {
		rep, ok := crawl.CompareParity(results[0], other)
		if !ok {
			continue
		}
		if rep.Match {
			logger.Info("auth modes agree", "a", rep.A, "b", rep.B)
		} else {
			logger.Warn("auth modes disagree", "a", rep.A, "b", rep.B, "diffs", rep.Diffs)
		}
	}
}
