package crawl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"aggbars/internal/model"
	"aggbars/internal/provider"
	"aggbars/internal/provider/polygon"
	"aggbars/internal/slogx"
)

// Job is one fetch: a query sent with one auth mode.
type Job struct {
	Query model.Query
	Mode  model.AuthMode
}

// JobResult is sent by workers for fan-in. Exactly one of Response and Err is set.
type JobResult struct {
	Job      Job
	URL      string // redacted
	Response *model.BarsResponse
	Err      error
	Elapsed  time.Duration
}

// Ok reports whether the fetch succeeded.
func (r JobResult) Ok() bool { return r.Err == nil && r.Response != nil }

// Options controls a Run.
type Options struct {
	// Parallel runs every job at once; otherwise jobs run in order, one at a time.
	Parallel bool
	// LogOutput receives the fan-in log lines. Defaults to os.Stderr.
	LogOutput io.Writer
	// LogLevel filters the fan-in logger (debug|info|warn|error).
	LogLevel string
	// LogFormat is the fan-in line format (text|json).
	LogFormat string
}

// JobsFor builds one job per mode for q, preserving mode order.
func JobsFor(q model.Query, modes []model.AuthMode) []Job {
	jobs := make([]Job, 0, len(modes))
	for _, m := range modes {
		jobs = append(jobs, Job{Query: q, Mode: m})
	}
	return jobs
}

// Run executes jobs against dp and returns results in job order.
func Run(ctx context.Context, dp provider.DataProvider, jobs []Job, opts Options) []JobResult {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	logs := make(chan string, 256)
	logger, lw := slogx.NewChanLogger(logs, opts.LogLevel, opts.LogFormat)
	errs := make(chan errorEntry, len(jobs))
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(out, logs)
	}()
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		runErrorHandler(errs, logger)
	}()

	results := make([]JobResult, len(jobs))
	if opts.Parallel {
		var wg sync.WaitGroup
		wg.Add(len(jobs))
		for i, job := range jobs {
			go func() {
				defer wg.Done()
				results[i] = runJob(ctx, dp, job, logger, errs)
			}()
		}
		wg.Wait()
	} else {
		for i, job := range jobs {
			results[i] = runJob(ctx, dp, job, logger, errs)
		}
	}

	close(errs)
	errWg.Wait()
	s := Summarize(results)
	logger.Info("summary", "success", s.Success, "failed", s.Failed, "total_bars", s.TotalBars)
	if s.Failed > 0 {
		logger.Info("summary failed", "reasons", s.FailedReasons)
	}
	close(logs)
	logWg.Wait()
	if n := lw.Dropped(); n > 0 {
		slog.Warn("fan-in log lines dropped", "count", n)
	}
	return results
}

func runJob(ctx context.Context, dp provider.DataProvider, job Job, logger *slog.Logger, errs chan<- errorEntry) JobResult {
	res := JobResult{Job: job}
	if u, err := dp.RequestURL(job.Query, job.Mode); err == nil {
		res.URL = polygon.RedactURL(u)
	}

	logger.Info("fetch started", "provider", dp.GetName(), "ticker", job.Query.Ticker, "mode", job.Mode, "url", res.URL)
	start := time.Now()
	resp, err := dp.GetBars(ctx, job.Query, job.Mode)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err
		errs <- errorEntry{Job: job, Err: err}
		return res
	}
	res.Response = resp

	logger.Info("fetch succeeded", "ticker", resp.Ticker, "mode", job.Mode, "bars", len(resp.Results), "elapsed", res.Elapsed.Round(time.Millisecond))
	if !resp.CountMatches() {
		logger.Warn("results count mismatch", "mode", job.Mode, "results_count", resp.ResultsCount, "decoded", len(resp.Results))
	}
	if n := inconsistentBars(resp.Results); n > 0 {
		logger.Warn("bars with high/low outside open/close", "mode", job.Mode, "count", n)
	}
	return res
}

func inconsistentBars(bars []model.Bar) int {
	var n int
	for _, b := range bars {
		if !b.Consistent() {
			n++
		}
	}
	return n
}
