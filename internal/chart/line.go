package chart

import (
	"errors"

	"github.com/simaogato/invoicedesk-backend/internal/svgpath"
)

// ErrTooFewPoints is returned when a curve is requested for fewer than two points
var ErrTooFewPoints = errors.New("at least two points are required to draw a line")

// BasisLine draws a uniform cubic B-spline through pts. The curve starts at
// the first point and ends at the last, passing near the points in between.
func BasisLine(pts []svgpath.Point) (string, error) {
	if len(pts) < 2 {
		return "", ErrTooFewPoints
	}

	var b basis
	for _, p := range pts {
		b.point(p)
	}
	b.end()
	return b.path.String(), nil
}

// basis is the incremental curve state: p0 and p1 are the two previous
// points and n counts points seen, saturating at 3.
type basis struct {
	path   svgpath.Path
	p0, p1 svgpath.Point
	n      int
}

func (b *basis) point(p svgpath.Point) {
	switch b.n {
	case 0:
		b.n = 1
		b.path = b.path.MoveTo(p.X, p.Y)
	case 1:
		b.n = 2
	case 2:
		b.n = 3
		b.path = b.path.LineTo((5*b.p0.X+b.p1.X)/6, (5*b.p0.Y+b.p1.Y)/6)
		b.curve(p)
	default:
		b.curve(p)
	}
	b.p0, b.p1 = b.p1, p
}

func (b *basis) curve(p svgpath.Point) {
	b.path = b.path.CubicTo(
		(2*b.p0.X+b.p1.X)/3, (2*b.p0.Y+b.p1.Y)/3,
		(b.p0.X+2*b.p1.X)/3, (b.p0.Y+2*b.p1.Y)/3,
		(b.p0.X+4*b.p1.X+p.X)/6, (b.p0.Y+4*b.p1.Y+p.Y)/6,
	)
}

func (b *basis) end() {
	if b.n == 3 {
		b.curve(b.p1)
		b.p0 = b.p1
	}
	if b.n >= 2 {
		b.path = b.path.LineTo(b.p1.X, b.p1.Y)
	}
}
