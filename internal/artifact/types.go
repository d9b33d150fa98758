// Package artifact defines the static JSON documents produced by the daily
// scan pipeline and consumed read-only by the dashboard clients.
package artifact

import (
	"sort"
	"strconv"
)

// Summary is the top-level scan result at /top_picks.json.
type Summary struct {
	GeneratedAt  string        `json:"generated_at"`
	CountTotal   int           `json:"count_total"`
	CountResults int           `json:"count_results"`
	FailedCount  int           `json:"failed_count"`
	Errors       []string      `json:"errors,omitempty"`
	Top          []RankedEntry `json:"top"`
}

// RankedEntry is one ranked ticker in a Summary. Tickers are unique within
// one artifact and rows are pre-sorted by the pipeline; clients preserve the
// order as-is.
type RankedEntry struct {
	Ticker      string  `json:"ticker"`
	Score       float64 `json:"score_0_100"`
	LastClose   float64 `json:"last_close"`
	AvgVol20    float64 `json:"avg_vol20"`
	Explanation string  `json:"explanation,omitempty"`
}

// Detail is the per-ticker artifact at /data/{ticker}.json.
type Detail struct {
	History    []HistoryPoint `json:"history"`
	Indicators map[string]any `json:"indicators"`
}

// HistoryPoint is one daily bar in a Detail history, ordered by Date
// ascending. Other OHLCV fields may be present in the artifact; the dashboard
// only reads Date and Close.
type HistoryPoint struct {
	Date  string  `json:"Date"`
	Close float64 `json:"Close"`
}

// Closes returns the closing prices of the history in artifact order.
func (d *Detail) Closes() []float64 {
	closes := make([]float64, len(d.History))
	for i, p := range d.History {
		closes[i] = p.Close
	}
	return closes
}

// IndicatorNames returns all indicator keys sorted alphabetically.
func (d *Detail) IndicatorNames() []string {
	names := make([]string, 0, len(d.Indicators))
	for name := range d.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Indicator returns the named indicator value as a display string. Non-string
// values are stringified without rounding; a missing key renders blank.
func (d *Detail) Indicator(name string) string {
	v, ok := d.Indicators[name]
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return ""
	}
}
