package svgpath

import "fmt"

// Interpolator returns the path data at progress t in [0, 1].
type Interpolator func(t float64) string

// NewInterpolator builds an interpolator morphing path a into path b.
//
// Both paths are rewritten to M, C and Z commands. When their command counts
// differ the shorter path has its segments split until the counts match, so
// every intermediate shape has the same structure. At t <= 0 the result is a
// verbatim and at t >= 1 it is b verbatim.
func NewInterpolator(a, b string) (Interpolator, error) {
	pa, err := Parse(a)
	if err != nil {
		return nil, fmt.Errorf("parse start path: %w", err)
	}
	pb, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse end path: %w", err)
	}

	from, to := align(toCubics(pa), toCubics(pb))

	return func(t float64) string {
		switch {
		case t <= 0:
			return a
		case t >= 1:
			return b
		}
		out := make(Path, len(from))
		for i := range from {
			pts := make([]Point, len(from[i].Points))
			for j := range pts {
				pts[j] = lerp(from[i].Points[j], to[i].Points[j], t)
			}
			out[i] = Command{Type: from[i].Type, Points: pts}
		}
		return out.String()
	}, nil
}

// MustInterpolator is like NewInterpolator but panics on malformed input.
// Callers are expected to hand it paths they generated themselves.
func MustInterpolator(a, b string) Interpolator {
	interp, err := NewInterpolator(a, b)
	if err != nil {
		panic("svgpath: " + err.Error())
	}
	return interp
}

// toCubics rewrites lines and quadratics as cubic Béziers.
func toCubics(p Path) Path {
	out := make(Path, 0, len(p))
	var cur Point
	for _, cmd := range p {
		switch cmd.Type {
		case 'L':
			out = append(out, lineAsCubic(cur, cmd.End()))
		case 'Q':
			c, end := cmd.Points[0], cmd.Points[1]
			out = append(out, Command{Type: 'C', Points: []Point{
				lerp(cur, c, 2.0/3.0),
				lerp(end, c, 2.0/3.0),
				end,
			}})
		default:
			out = append(out, cmd)
		}
		cur = cmd.End()
	}
	return out
}

func lineAsCubic(from, to Point) Command {
	return Command{Type: 'C', Points: []Point{
		lerp(from, to, 1.0/3.0),
		lerp(from, to, 2.0/3.0),
		to,
	}}
}

// align extends the shorter path and reconciles command types index by
// index. Inputs must both start with M.
func align(a, b Path) (Path, Path) {
	switch {
	case len(a) < len(b):
		a = extend(a, len(b))
	case len(b) < len(a):
		b = extend(b, len(a))
	}

	for i := 1; i < len(a); i++ {
		if a[i].Type == b[i].Type {
			continue
		}
		a[i] = asCubic(a[i-1].End(), a[i])
		b[i] = asCubic(b[i-1].End(), b[i])
	}
	return a, b
}

// asCubic turns an M or Z command into a cubic ending at the same point.
func asCubic(prev Point, cmd Command) Command {
	switch cmd.Type {
	case 'C':
		return cmd
	case 'Z':
		return lineAsCubic(prev, cmd.End())
	default:
		p := cmd.End()
		return Command{Type: 'C', Points: []Point{p, p, p}}
	}
}

// extend splits the drawing commands of p until it holds n commands. Extra
// pieces are spread evenly, earlier segments taking the remainder.
func extend(p Path, n int) Path {
	segments := len(p) - 1
	extra := n - len(p)

	out := make(Path, 0, n)
	out = append(out, p[0])

	if segments == 0 {
		pt := p[0].End()
		for i := 0; i < extra; i++ {
			out = append(out, Command{Type: 'C', Points: []Point{pt, pt, pt}})
		}
		return out
	}

	base, rem := extra/segments, extra%segments
	for i := 1; i < len(p); i++ {
		pieces := 1 + base
		if i-1 < rem {
			pieces++
		}
		out = append(out, split(p[i-1].End(), p[i], pieces)...)
	}
	return out
}

// split divides one command into the given number of pieces.
func split(start Point, cmd Command, pieces int) []Command {
	if pieces <= 1 {
		return []Command{cmd}
	}
	c := asCubic(start, cmd)
	if cmd.Type == 'M' {
		out := []Command{cmd}
		for i := 1; i < pieces; i++ {
			out = append(out, c)
		}
		return out
	}

	out := make([]Command, 0, pieces)
	p0, c1, c2, p3 := start, c.Points[0], c.Points[1], c.Points[2]
	for remaining := pieces; remaining > 1; remaining-- {
		t := 1 / float64(remaining)
		// de Casteljau
		p01 := lerp(p0, c1, t)
		p12 := lerp(c1, c2, t)
		p23 := lerp(c2, p3, t)
		p012 := lerp(p01, p12, t)
		p123 := lerp(p12, p23, t)
		mid := lerp(p012, p123, t)

		out = append(out, Command{Type: 'C', Points: []Point{p01, p012, mid}})
		p0, c1, c2 = mid, p123, p23
	}
	out = append(out, Command{Type: 'C', Points: []Point{c1, c2, p3}})
	return out
}
