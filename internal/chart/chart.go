package chart

import (
	"fmt"

	"github.com/simaogato/invoicedesk-backend/internal/format"
	"github.com/simaogato/invoicedesk-backend/internal/svgpath"
)

// Margin is the space reserved around the plot area
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout is the size of the chart's plot area
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultLayout is the layout used on the invoice page
func DefaultLayout() Layout {
	return Layout{
		Width:  400,
		Height: 200,
		Margin: Margin{Top: 10, Right: 0, Bottom: 18, Left: 0},
	}
}

// Label is a text annotation placed on the chart
type Label struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Anchor   string  `json:"anchor,omitempty"`
	Baseline string  `json:"baseline,omitempty"`
	Kind     string  `json:"kind"`
}

// Label kinds
const (
	LabelDate   = "date"
	LabelAmount = "amount"
)

// DepositChart is the rendered running-balance chart
type DepositChart struct {
	Layout    Layout        `json:"layout"`
	SVGWidth  float64       `json:"svgWidth"`
	SVGHeight float64       `json:"svgHeight"`
	Path      string        `json:"path"`
	Labels    []Label       `json:"labels"`
	Series    []SeriesPoint `json:"series"`
}

// NewDepositChart scales series into layout and draws the curve and its
// first/last date and amount labels. Fewer than two points returns
// ErrTooFewPoints.
func NewDepositChart(series []SeriesPoint, layout Layout) (*DepositChart, error) {
	if len(series) < 2 {
		return nil, ErrTooFewPoints
	}

	first, last := series[0], series[len(series)-1]
	m := layout.Margin

	xScale := NewTimeScale(first.X, last.X, m.Left, layout.Width-m.Right)
	yScale := NewLinearScale(
		first.Y.InexactFloat64(),
		last.Y.InexactFloat64(),
		layout.Height-m.Bottom,
		m.Top,
	).Nice()

	pts := make([]svgpath.Point, len(series))
	for i, p := range series {
		pts[i] = svgpath.Point{X: xScale.Scale(p.X), Y: yScale.Scale(p.Y.InexactFloat64())}
	}

	d, err := BasisLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to draw deposit curve: %w", err)
	}

	labels := []Label{
		{
			Text:     format.Date(first.Time()),
			X:        pts[0].X,
			Y:        layout.Height + 5,
			Baseline: "hanging",
			Kind:     LabelDate,
		},
		{
			Text:     format.Date(last.Time()),
			X:        pts[len(pts)-1].X,
			Y:        layout.Height + 5,
			Anchor:   "end",
			Baseline: "hanging",
			Kind:     LabelDate,
		},
		{
			Text: format.Currency(first.Y),
			X:    pts[0].X,
			Y:    pts[0].Y,
			Kind: LabelAmount,
		},
		{
			Text:   format.Currency(last.Y),
			X:      pts[len(pts)-1].X,
			Y:      pts[len(pts)-1].Y,
			Anchor: "end",
			Kind:   LabelAmount,
		},
	}

	return &DepositChart{
		Layout:    layout,
		SVGWidth:  layout.Width + m.Left + m.Right,
		SVGHeight: layout.Height + m.Top + m.Bottom,
		Path:      d,
		Labels:    labels,
		Series:    series,
	}, nil
}
