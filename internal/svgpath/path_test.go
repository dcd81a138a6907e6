package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want string
	}{
		{
			name: "absolute move and line",
			d:    "M0,0L10,10",
			want: "M0,0L10,10",
		},
		{
			name: "whitespace separated",
			d:    "M 0 0 L 10 10",
			want: "M0,0L10,10",
		},
		{
			name: "implicit line after move",
			d:    "M0,0 10,10 20,0",
			want: "M0,0L10,10L20,0",
		},
		{
			name: "relative commands",
			d:    "m1,1l2,2h3v-4",
			want: "M1,1L3,3L6,3L6,-1",
		},
		{
			name: "packed negative numbers",
			d:    "M0-5L10-5",
			want: "M0,-5L10,-5",
		},
		{
			name: "packed decimals",
			d:    "M.5.5L1.5.5",
			want: "M0.5,0.5L1.5,0.5",
		},
		{
			name: "cubic with smooth continuation",
			d:    "M0,0C0,10,10,10,10,0S20,-10,20,0",
			want: "M0,0C0,10,10,10,10,0C10,-10,20,-10,20,0",
		},
		{
			name: "quadratic with smooth continuation",
			d:    "M0,0Q5,10,10,0T20,0",
			want: "M0,0Q5,10,10,0Q15,-10,20,0",
		},
		{
			name: "closed path",
			d:    "M0,0L10,0L10,10Z",
			want: "M0,0L10,0L10,10Z",
		},
		{
			name: "exponent",
			d:    "M1e1,2E-1",
			want: "M10,0.2",
		},
		{
			name: "rounds to three decimals",
			d:    "M0.12345,1.9999",
			want: "M0.123,2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		d       string
		wantErr error
	}{
		{name: "empty", d: "", wantErr: ErrEmptyPath},
		{name: "only whitespace", d: "   ", wantErr: ErrEmptyPath},
		{name: "does not start with move", d: "L0,0", wantErr: ErrSyntax},
		{name: "missing coordinate", d: "M0", wantErr: ErrSyntax},
		{name: "arc not supported", d: "M0,0A1,1,0,0,1,2,2", wantErr: ErrSyntax},
		{name: "garbage", d: "hello", wantErr: ErrSyntax},
		{name: "number without command", d: "10,10", wantErr: ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.d)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPathBuilder(t *testing.T) {
	var p Path
	p = p.MoveTo(0, 182).LineTo(66.667, 150).CubicTo(1, 2, 3, 4, 400, 10)
	assert.Equal(t, "M0,182L66.667,150C1,2,3,4,400,10", p.String())
	assert.Equal(t, Point{400, 10}, p[2].End())
}
