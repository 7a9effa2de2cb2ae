package crawl

import (
	"fmt"
	"strings"

	"aggbars/internal/model"
)

// maxParityDiffs caps the differences listed in a ParityReport.
const maxParityDiffs = 5

// ParityReport compares two successful fetches of the same query.
type ParityReport struct {
	A, B  model.AuthMode
	Match bool
	Diffs []string
}

// CompareParity reports whether a and b returned the same data.
// It returns ok=false when either fetch failed.
func CompareParity(a, b JobResult) (ParityReport, bool) {
	if !a.Ok() || !b.Ok() {
		return ParityReport{}, false
	}
	rep := ParityReport{A: a.Job.Mode, B: b.Job.Mode}
	ra, rb := a.Response, b.Response

	if ra.Ticker != rb.Ticker {
		rep.Diffs = append(rep.Diffs, fmt.Sprintf("ticker %q != %q", ra.Ticker, rb.Ticker))
	}
	if ra.Adjusted != rb.Adjusted {
		rep.Diffs = append(rep.Diffs, fmt.Sprintf("adjusted %t != %t", ra.Adjusted, rb.Adjusted))
	}
	if ra.ResultsCount != rb.ResultsCount {
		rep.Diffs = append(rep.Diffs, fmt.Sprintf("resultsCount %d != %d", ra.ResultsCount, rb.ResultsCount))
	}
	if len(ra.Results) != len(rb.Results) {
		rep.Diffs = append(rep.Diffs, fmt.Sprintf("bars %d != %d", len(ra.Results), len(rb.Results)))
	}
	n := min(len(ra.Results), len(rb.Results))
	for i := 0; i < n && len(rep.Diffs) < maxParityDiffs; i++ {
		if ra.Results[i] != rb.Results[i] {
			rep.Diffs = append(rep.Diffs, fmt.Sprintf("bar[%d] %+v != %+v", i, ra.Results[i], rb.Results[i]))
		}
	}
	rep.Match = len(rep.Diffs) == 0
	return rep, true
}

// Summary aggregates a run.
type Summary struct {
	Success       int
	Failed        int
	TotalBars     int
	FailedReasons string
}

// Summarize counts successes, failures and bars across results.
func Summarize(results []JobResult) Summary {
	var s Summary
	var failed []failedEntry
	for _, r := range results {
		if r.Ok() {
			s.Success++
			s.TotalBars += len(r.Response.Results)
			continue
		}
		s.Failed++
		failed = append(failed, failedEntry{Mode: r.Job.Mode, Reason: errorKind(r.Err)})
	}
	s.FailedReasons = joinFailedReasons(failed)
	return s
}

type failedEntry struct {
	Mode   model.AuthMode
	Reason string
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Mode.String())
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
