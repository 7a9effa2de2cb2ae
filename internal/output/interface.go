// Package output renders fetched bars for the caller. Writers only target the
// io.Writer they are given; nothing here creates files.
package output

import (
	"io"
	"strings"

	"aggbars/internal/model"
)

// BarsWriter renders one BarsResponse.
// main picks the implementation from config; the fetch path never depends on it.
type BarsWriter interface {
	Write(w io.Writer, resp *model.BarsResponse) error
	Format() string
}

// Formats lists the accepted format names.
var Formats = []string{"log", "json", "csv", "parquet"}

// NewBarsWriter creates implementation by format (log, json, csv, parquet).
// Returns nil if format not supported.
func NewBarsWriter(format string) BarsWriter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "log", "":
		return LogWriter{}
	case "csv":
		return CSVWriter{}
	case "parquet":
		return ParquetWriter{}
	case "json":
		return JSONWriter{}
	default:
		return nil
	}
}
