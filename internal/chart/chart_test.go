package chart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepositChart(t *testing.T) {
	series := BuildSeries([]DepositPoint{
		{Date: day("2024-01-01"), Amount: decimal.NewFromInt(100)},
		{Date: day("2024-01-01"), Amount: decimal.NewFromInt(50)},
		{Date: day("2024-01-10"), Amount: decimal.NewFromInt(25)},
	})

	c, err := NewDepositChart(series, DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, 400.0, c.SVGWidth)
	assert.Equal(t, 228.0, c.SVGHeight)
	// y domain 150..175 is niced to 150..176
	assert.Equal(t, "M0,182L400,16.615", c.Path)

	require.Len(t, c.Labels, 4)
	assert.Equal(t, Label{Text: "1/1/2024", X: 0, Y: 205, Baseline: "hanging", Kind: LabelDate}, c.Labels[0])
	assert.Equal(t, Label{Text: "1/10/2024", X: 400, Y: 205, Anchor: "end", Baseline: "hanging", Kind: LabelDate}, c.Labels[1])

	assert.Equal(t, "$150.00", c.Labels[2].Text)
	assert.Equal(t, 182.0, c.Labels[2].Y)
	assert.Equal(t, "$175.00", c.Labels[3].Text)
	assert.Equal(t, "end", c.Labels[3].Anchor)
	assert.InDelta(t, 16.615, c.Labels[3].Y, 1e-3)
}

func TestNewDepositChart_TooFewPoints(t *testing.T) {
	_, err := NewDepositChart(nil, DefaultLayout())
	assert.ErrorIs(t, err, ErrTooFewPoints)

	one := BuildSeries([]DepositPoint{{Date: day("2024-01-01"), Amount: decimal.NewFromInt(1)}})
	_, err = NewDepositChart(one, DefaultLayout())
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestNewDepositChart_PathChangesWithData(t *testing.T) {
	deposits := []DepositPoint{
		{Date: day("2024-01-01"), Amount: decimal.NewFromInt(100)},
		{Date: day("2024-01-05"), Amount: decimal.NewFromInt(40)},
	}
	before, err := NewDepositChart(BuildSeries(deposits), DefaultLayout())
	require.NoError(t, err)

	deposits = append(deposits, DepositPoint{Date: day("2024-01-09"), Amount: decimal.NewFromInt(60)})
	after, err := NewDepositChart(BuildSeries(deposits), DefaultLayout())
	require.NoError(t, err)

	assert.NotEqual(t, before.Path, after.Path)
}
