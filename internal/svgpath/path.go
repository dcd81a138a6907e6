// Package svgpath parses, serializes and interpolates SVG path data.
//
// Paths are kept in absolute coordinates. Parse normalizes H and V to L, and
// S and T to their explicit C and Q forms, so a Path only ever holds M, L, C,
// Q and Z commands.
package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmptyPath is returned when the path data holds no commands.
	ErrEmptyPath = errors.New("empty path data")

	// ErrSyntax is returned for malformed path data.
	ErrSyntax = errors.New("invalid path data")
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Command is a single absolute drawing command. Points holds the command's
// coordinates in drawing order: one for M and L, two for Q, three for C.
// For Z it holds the subpath start it closes back to.
type Command struct {
	Type   byte
	Points []Point
}

// End returns the pen position after the command.
func (c Command) End() Point {
	return c.Points[len(c.Points)-1]
}

// Path is a sequence of absolute commands starting with M.
type Path []Command

// MoveTo appends an M command.
func (p Path) MoveTo(x, y float64) Path {
	return append(p, Command{Type: 'M', Points: []Point{{x, y}}})
}

// LineTo appends an L command.
func (p Path) LineTo(x, y float64) Path {
	return append(p, Command{Type: 'L', Points: []Point{{x, y}}})
}

// CubicTo appends a C command.
func (p Path) CubicTo(x1, y1, x2, y2, x, y float64) Path {
	return append(p, Command{Type: 'C', Points: []Point{{x1, y1}, {x2, y2}, {x, y}}})
}

// String serializes the path compactly, d3 style: "M0,1L2,3C...".
// Coordinates are rounded to three decimal places.
func (p Path) String() string {
	var b strings.Builder
	for _, cmd := range p {
		b.WriteByte(cmd.Type)
		if cmd.Type == 'Z' {
			continue
		}
		for i, pt := range cmd.Points {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(formatNumber(pt.X))
			b.WriteByte(',')
			b.WriteString(formatNumber(pt.Y))
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// arity is the number of coordinate values each command letter consumes.
var arity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'Z': 0,
}

// Parse reads SVG path data into an absolute Path. Arc commands are not
// supported.
func Parse(d string) (Path, error) {
	s := scanner{src: d}
	var (
		path      Path
		cur       Point
		start     Point
		lastCtrl  Point
		lastType  byte
		letter    byte
		haveFirst bool
	)

	for {
		s.skipSeparators()
		if s.done() {
			break
		}

		if c := s.peek(); isLetter(c) {
			s.pos++
			letter = c
		} else if letter == 0 {
			return nil, fmt.Errorf("%w: expected command at offset %d", ErrSyntax, s.pos)
		}
		// otherwise an implicit repeat of the previous command

		upper := toUpper(letter)
		n, ok := arity[upper]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported command %q", ErrSyntax, letter)
		}
		if !haveFirst && upper != 'M' {
			return nil, fmt.Errorf("%w: path must start with M", ErrSyntax)
		}
		haveFirst = true
		relative := letter != upper

		args := make([]float64, n)
		for i := range args {
			s.skipSeparators()
			v, err := s.number()
			if err != nil {
				return nil, err
			}
			args[i] = v
		}

		abs := func(x, y float64) Point {
			if relative {
				return Point{cur.X + x, cur.Y + y}
			}
			return Point{x, y}
		}

		switch upper {
		case 'M':
			cur = abs(args[0], args[1])
			start = cur
			path = append(path, Command{Type: 'M', Points: []Point{cur}})
			// subsequent pairs are implicit line-tos
			if relative {
				letter = 'l'
			} else {
				letter = 'L'
			}
		case 'L':
			cur = abs(args[0], args[1])
			path = append(path, Command{Type: 'L', Points: []Point{cur}})
		case 'H':
			x := args[0]
			if relative {
				x += cur.X
			}
			cur = Point{x, cur.Y}
			path = append(path, Command{Type: 'L', Points: []Point{cur}})
		case 'V':
			y := args[0]
			if relative {
				y += cur.Y
			}
			cur = Point{cur.X, y}
			path = append(path, Command{Type: 'L', Points: []Point{cur}})
		case 'C':
			c1 := abs(args[0], args[1])
			c2 := abs(args[2], args[3])
			end := abs(args[4], args[5])
			path = append(path, Command{Type: 'C', Points: []Point{c1, c2, end}})
			lastCtrl, cur = c2, end
		case 'S':
			c1 := cur
			if lastType == 'C' {
				c1 = Point{2*cur.X - lastCtrl.X, 2*cur.Y - lastCtrl.Y}
			}
			c2 := abs(args[0], args[1])
			end := abs(args[2], args[3])
			path = append(path, Command{Type: 'C', Points: []Point{c1, c2, end}})
			lastCtrl, cur = c2, end
			upper = 'C'
		case 'Q':
			c := abs(args[0], args[1])
			end := abs(args[2], args[3])
			path = append(path, Command{Type: 'Q', Points: []Point{c, end}})
			lastCtrl, cur = c, end
		case 'T':
			c := cur
			if lastType == 'Q' {
				c = Point{2*cur.X - lastCtrl.X, 2*cur.Y - lastCtrl.Y}
			}
			end := abs(args[0], args[1])
			path = append(path, Command{Type: 'Q', Points: []Point{c, end}})
			lastCtrl, cur = c, end
			upper = 'Q'
		case 'Z':
			path = append(path, Command{Type: 'Z', Points: []Point{start}})
			cur = start
			letter = 0
		}
		lastType = upper
	}

	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	return path, nil
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

// number scans a float. SVG allows "10-5" and "1.5.5" to be two numbers each,
// so the scan stops at a second sign or a second decimal point.
func (s *scanner) number() (float64, error) {
	begin := s.pos
	if !s.done() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
	digits, dot := 0, false
scan:
	for !s.done() {
		c := s.peek()
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
		s.pos++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrSyntax, begin)
	}
	if !s.done() && (s.peek() == 'e' || s.peek() == 'E') {
		mark := s.pos
		s.pos++
		if !s.done() && (s.peek() == '+' || s.peek() == '-') {
			s.pos++
		}
		expDigits := 0
		for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			s.pos = mark
		}
	}
	v, err := strconv.ParseFloat(s.src[begin:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return v, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
