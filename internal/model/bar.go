package model

import "time"

// Bar represents one OHLCV aggregation window as returned by the aggregates endpoint.
// JSON tags are the wire names, so a Bar encodes back to the upstream shape.
type Bar struct {
	Volume         float64 `json:"v" parquet:"v"`
	VolumeWeighted float64 `json:"vw" parquet:"vw"` // Volume weighted average price
	Open           float64 `json:"o" parquet:"o"`
	Close          float64 `json:"c" parquet:"c"`
	High           float64 `json:"h" parquet:"h"`
	Low            float64 `json:"l" parquet:"l"`
	Timestamp      int64   `json:"t" parquet:"t"` // Unix timestamp in milliseconds (window start)
	Transactions   int64   `json:"n" parquet:"n"` // Number of trades in the window
}

// Time returns the window start in UTC.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// Consistent reports whether high and low bound open and close.
// Valid upstream data always satisfies it; nothing enforces it.
func (b Bar) Consistent() bool {
	return b.High >= b.Open && b.High >= b.Close && b.High >= b.Low &&
		b.Low <= b.Open && b.Low <= b.Close
}

// BarsResponse is the decoded aggregates response.
// Results keep the server order (which follows the requested sort).
type BarsResponse struct {
	Ticker       string `json:"ticker"`
	QueryCount   int    `json:"queryCount"`
	ResultsCount int    `json:"resultsCount"`
	Adjusted     bool   `json:"adjusted"`
	Results      []Bar  `json:"results"`
}

// CountMatches reports whether ResultsCount equals the number of decoded bars.
func (r *BarsResponse) CountMatches() bool {
	return r.ResultsCount == len(r.Results)
}
