// Package chart turns deposit history into the running-balance chart shown on
// the invoice page.
package chart

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DepositPoint is a single deposit as seen by the chart
type DepositPoint struct {
	Date   time.Time
	Amount decimal.Decimal
}

// SeriesPoint is one point of the cumulative series.
// X is the calendar date as unix milliseconds (UTC midnight), Y the running total.
type SeriesPoint struct {
	X int64           `json:"x"`
	Y decimal.Decimal `json:"y"`
}

// Time returns X as a UTC time.
func (p SeriesPoint) Time() time.Time {
	return time.UnixMilli(p.X).UTC()
}

// BuildSeries groups deposits by calendar date, sorts the dates ascending and
// returns the running total at each date. No deposits yields an empty slice.
func BuildSeries(deposits []DepositPoint) []SeriesPoint {
	byDate := make(map[int64]decimal.Decimal, len(deposits))
	for _, d := range deposits {
		key := dayKey(d.Date)
		byDate[key] = byDate[key].Add(d.Amount)
	}

	dates := make([]int64, 0, len(byDate))
	for k := range byDate {
		dates = append(dates, k)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	series := make([]SeriesPoint, 0, len(dates))
	total := decimal.Zero
	for _, x := range dates {
		total = total.Add(byDate[x])
		series = append(series, SeriesPoint{X: x, Y: total})
	}
	return series
}

// dayKey truncates t to its calendar date in its own location and returns
// that date's UTC midnight in milliseconds.
func dayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}
