package output

import (
	"encoding/json"
	"io"

	"aggbars/internal/model"
)

// JSONWriter writes the response as indented JSON in the upstream shape.
type JSONWriter struct{}

func (JSONWriter) Format() string { return "json" }

func (JSONWriter) Write(w io.Writer, resp *model.BarsResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
