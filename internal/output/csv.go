package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"aggbars/internal/model"
)

// CSVWriter writes bars as CSV (header: v,vw,o,c,h,l,t,n).
type CSVWriter struct{}

func (CSVWriter) Format() string { return "csv" }

func (CSVWriter) Write(w io.Writer, resp *model.BarsResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"v", "vw", "o", "c", "h", "l", "t", "n"}); err != nil {
		return err
	}
	for _, b := range resp.Results {
		if err := cw.Write([]string{
			floatStr(b.Volume),
			floatStr(b.VolumeWeighted),
			floatStr(b.Open),
			floatStr(b.Close),
			floatStr(b.High),
			floatStr(b.Low),
			strconv.FormatInt(b.Timestamp, 10),
			strconv.FormatInt(b.Transactions, 10),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
