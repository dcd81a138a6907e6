package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolator_Endpoints(t *testing.T) {
	a := "M0,0L10,10"
	b := "M0,0 L20,20"

	interp, err := NewInterpolator(a, b)
	require.NoError(t, err)

	// endpoints are returned verbatim, not re-serialized
	assert.Equal(t, a, interp(0))
	assert.Equal(t, b, interp(1))
	assert.Equal(t, a, interp(-0.5))
	assert.Equal(t, b, interp(1.5))
}

func TestInterpolator_Midpoint(t *testing.T) {
	interp, err := NewInterpolator("M0,0L10,10", "M0,0L20,20")
	require.NoError(t, err)

	assert.Equal(t, "M0,0C5,5,10,10,15,15", interp(0.5))
}

func TestInterpolator_DifferentLengths(t *testing.T) {
	short := "M0,0L10,0"
	long := "M0,0L10,0L20,0L30,0"

	for _, pair := range [][2]string{{short, long}, {long, short}} {
		interp, err := NewInterpolator(pair[0], pair[1])
		require.NoError(t, err)

		mid, err := Parse(interp(0.5))
		require.NoError(t, err)
		assert.Len(t, mid, 4, "intermediate shape should carry the longer path's command count")
		assert.Equal(t, byte('M'), mid[0].Type)
		for _, cmd := range mid {
			for _, pt := range cmd.Points {
				assert.InDelta(t, 0, pt.Y, 1e-9)
			}
		}
	}
}

func TestInterpolator_SplitKeepsShape(t *testing.T) {
	// A straight line split into pieces must stay on the line; interpolating
	// it against itself with a different command count must not move it.
	interp, err := NewInterpolator("M0,0L30,30", "M0,0L10,10L20,20L30,30")
	require.NoError(t, err)

	for _, tt := range []float64{0.1, 0.5, 0.9} {
		p, err := Parse(interp(tt))
		require.NoError(t, err)
		for _, cmd := range p {
			for _, pt := range cmd.Points {
				assert.InDelta(t, pt.X, pt.Y, 1e-2)
			}
		}
		assert.Equal(t, Point{30, 30}, p[len(p)-1].End())
	}
}

func TestInterpolator_MixedCommandTypes(t *testing.T) {
	interp, err := NewInterpolator("M0,0L10,0L10,10Z", "M0,0C1,1,2,2,3,3L4,4L5,5")
	require.NoError(t, err)

	p, err := Parse(interp(0.25))
	require.NoError(t, err)
	assert.Len(t, p, 4)
	for _, cmd := range p[1:] {
		assert.Equal(t, byte('C'), cmd.Type)
	}
}

func TestInterpolator_SinglePoint(t *testing.T) {
	interp, err := NewInterpolator("M5,5", "M0,0L10,10")
	require.NoError(t, err)

	p, err := Parse(interp(0.5))
	require.NoError(t, err)
	assert.Len(t, p, 2)
	assert.Equal(t, Point{2.5, 2.5}, p[0].End())
}

func TestNewInterpolator_Malformed(t *testing.T) {
	_, err := NewInterpolator("", "M0,0")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = NewInterpolator("M0,0", "nope")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestMustInterpolator_Panics(t *testing.T) {
	assert.Panics(t, func() { MustInterpolator("M0,0", "") })
	assert.NotPanics(t, func() { MustInterpolator("M0,0", "M1,1") })
}
