package polygon

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"aggbars/internal/model"
)

// barRaw is one bar as sent on the wire. Pointers let validation tell a
// missing field from a zero value.
type barRaw struct {
	Volume         *float64       `json:"v" validate:"required"`
	VolumeWeighted *float64       `json:"vw" validate:"required"`
	Open           *float64       `json:"o" validate:"required"`
	Close          *float64       `json:"c" validate:"required"`
	High           *float64       `json:"h" validate:"required"`
	Low            *float64       `json:"l" validate:"required"`
	Timestamp      *int64         `json:"t" validate:"required"` // Unix timestamp in milliseconds
	Transactions   *FlexibleInt64 `json:"n" validate:"required"`
}

// toBar converts a validated barRaw to model.Bar.
func (br barRaw) toBar() model.Bar {
	return model.Bar{
		Volume:         *br.Volume,
		VolumeWeighted: *br.VolumeWeighted,
		Open:           *br.Open,
		Close:          *br.Close,
		High:           *br.High,
		Low:            *br.Low,
		Timestamp:      *br.Timestamp,
		Transactions:   br.Transactions.Int64(),
	}
}

// aggregatesResponse is the aggregates payload. Status, request id and
// next_url are accepted but not surfaced: pagination is not followed.
type aggregatesResponse struct {
	Ticker       *string  `json:"ticker" validate:"required"`
	QueryCount   *int     `json:"queryCount" validate:"required"`
	ResultsCount *int     `json:"resultsCount" validate:"required"`
	Adjusted     *bool    `json:"adjusted" validate:"required"`
	Results      []barRaw `json:"results" validate:"required,dive"`
	Status       string   `json:"status,omitempty"`
	RequestID    string   `json:"request_id,omitempty"`
	NextURL      string   `json:"next_url,omitempty"`
}

// DecodeBars decodes an aggregates body. Malformed JSON or a missing required
// field yields a *FetchError of kind KindDecode; there is no partial result.
func DecodeBars(body []byte) (*model.BarsResponse, error) {
	var raw aggregatesResponse
	// Unmarshal rejects trailing data after the object.
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &FetchError{Kind: KindDecode, Body: truncateBody(body), Err: fmt.Errorf("parse JSON: %w", err)}
	}
	if err := validate.Struct(raw); err != nil {
		return nil, &FetchError{Kind: KindDecode, Body: truncateBody(body), Err: missingFields(err)}
	}

	resp := &model.BarsResponse{
		Ticker:       *raw.Ticker,
		QueryCount:   *raw.QueryCount,
		ResultsCount: *raw.ResultsCount,
		Adjusted:     *raw.Adjusted,
		Results:      make([]model.Bar, 0, len(raw.Results)),
	}
	for _, br := range raw.Results {
		resp.Results = append(resp.Results, br.toBar())
	}
	return resp, nil
}

// missingFields turns validator output into "missing field results[0].t".
func missingFields(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	ns := fe.Namespace()
	// Drop the struct name prefix.
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if len(verrs) > 1 {
		return fmt.Errorf("missing field %s (+%d more)", ns, len(verrs)-1)
	}
	return fmt.Errorf("missing field %s", ns)
}

// FlexibleInt64 parses an int, a float (scientific notation) or a numeric string to int64.
type FlexibleInt64 int64

// UnmarshalJSON tries int first so large counts keep full precision.
func (f *FlexibleInt64) UnmarshalJSON(data []byte) error {
	var intVal int64
	if err := json.Unmarshal(data, &intVal); err == nil {
		*f = FlexibleInt64(intVal)
		return nil
	}

	var floatVal float64
	if err := json.Unmarshal(data, &floatVal); err == nil {
		return f.setFloat(floatVal, data)
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		return f.setFloat(val, data)
	}

	return fmt.Errorf("cannot parse as int64: %s", string(data))
}

// setFloat stores v, rejecting values that do not fit in an int64.
func (f *FlexibleInt64) setFloat(v float64, data []byte) error {
	if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return fmt.Errorf("int64 out of range: %s", string(data))
	}
	*f = FlexibleInt64(int64(v))
	return nil
}

// Int64 returns int64 value
func (f FlexibleInt64) Int64() int64 {
	return int64(f)
}
