// Package format renders amounts and dates for display.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout used for dates submitted through forms
const DateLayout = "2006-01-02"

// Currency formats d as US dollars with thousands separators, e.g. "$1,234.50".
func Currency(d decimal.Decimal) string {
	f := d.Round(2).InexactFloat64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// Date formats t as month/day/year without padding, e.g. "1/9/2024".
func Date(t time.Time) string {
	return t.Format("1/2/2006")
}

// Quantity renders a line item multiplier, empty when the quantity is one.
func Quantity(n int) string {
	if n == 1 {
		return ""
	}
	return "(" + humanize.Comma(int64(n)) + "x)"
}
