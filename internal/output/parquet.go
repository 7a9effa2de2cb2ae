package output

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"aggbars/internal/model"
)

// ParquetWriter writes bars as a Parquet file stream, one row per model.Bar.
type ParquetWriter struct{}

func (ParquetWriter) Format() string { return "parquet" }

func (ParquetWriter) Write(w io.Writer, resp *model.BarsResponse) error {
	return parquet.Write(w, resp.Results)
}
