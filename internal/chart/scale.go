package chart

import "math"

// LinearScale maps a continuous domain onto a pixel range.
// A zero-width domain maps every value to the middle of the range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale creates a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the scale's input interval.
func (s LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Scale maps v from the domain onto the range.
func (s LinearScale) Scale(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return s.r0 + (s.r1-s.r0)/2
	}
	return s.r0 + (v-s.d0)/span*(s.r1-s.r0)
}

// Nice widens the domain so both ends land on round tick values, using the
// same ten-tick step selection as d3's linear scale.
func (s LinearScale) Nice() LinearScale {
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	if start == stop {
		return s
	}

	var prestep float64
nice:
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, 10)
		if step == prestep {
			break nice
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			break nice
		}
		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}
	s.d0, s.d1 = start, stop
	return s
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the tick step for roughly count ticks over
// [start, stop]. Steps below one are returned as the negated inverse so they
// stay exact integers.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TimeScale maps unix-millisecond timestamps onto a pixel range.
type TimeScale struct {
	linear LinearScale
}

// NewTimeScale creates a scale mapping [from, to] (unix millis) onto [r0, r1].
func NewTimeScale(from, to int64, r0, r1 float64) TimeScale {
	return TimeScale{linear: NewLinearScale(float64(from), float64(to), r0, r1)}
}

// Scale maps the timestamp x onto the range.
func (s TimeScale) Scale(x int64) float64 {
	return s.linear.Scale(float64(x))
}
