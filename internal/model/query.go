package model

import (
	"fmt"
	"strings"
)

// Timespan is the unit size of each aggregation window.
type Timespan string

const (
	Second  Timespan = "second"
	Minute  Timespan = "minute"
	Hour    Timespan = "hour"
	Day     Timespan = "day"
	Week    Timespan = "week"
	Month   Timespan = "month"
	Quarter Timespan = "quarter"
	Year    Timespan = "year"
)

// Timespans lists every supported timespan in ascending size.
var Timespans = []Timespan{Second, Minute, Hour, Day, Week, Month, Quarter, Year}

func (t Timespan) String() string { return string(t) }

// ParseTimespan converts s (any case, e.g. "Day") to a Timespan.
func ParseTimespan(s string) (Timespan, error) {
	v := Timespan(strings.ToLower(strings.TrimSpace(s)))
	for _, ts := range Timespans {
		if v == ts {
			return ts, nil
		}
	}
	return "", fmt.Errorf("unsupported timespan %q (use: %s)", s, joinValues(Timespans))
}

// Sort is the server-side ordering of results by timestamp.
type Sort string

const (
	Asc  Sort = "asc"
	Desc Sort = "desc"
)

func (s Sort) String() string { return string(s) }

// ParseSort converts s (any case) to a Sort.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("unsupported sort %q (use: asc, desc)", s)
	}
}

// Query holds the parameters of one aggregates request.
// From and To are YYYY-MM-DD dates and are passed through unchecked.
type Query struct {
	Ticker     string   `validate:"required"`
	Multiplier int      `validate:"gte=1"`
	Timespan   Timespan `validate:"oneof=second minute hour day week month quarter year"`
	From       string
	To         string
	Adjusted   bool
	Sort       Sort `validate:"oneof=asc desc"`
}

// ReferenceQuery is the fixed query of the demo flow: AAPL daily bars
// from 2023-01-09 to 2023-02-10, split-adjusted, ascending.
func ReferenceQuery() Query {
	return Query{
		Ticker:     "AAPL",
		Multiplier: 1,
		Timespan:   Day,
		From:       "2023-01-09",
		To:         "2023-02-10",
		Adjusted:   true,
		Sort:       Asc,
	}
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
