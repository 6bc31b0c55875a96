package xyedge

import "fmt"

// Interval is the closed interval [Low, High], with Low ≤ High.
type Interval struct {
	Low  float64
	High float64
}

// NewInterval returns the interval spanning a and b, in either order.
func NewInterval(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Low: a, High: b}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Low, iv.High)
}

func (iv Interval) Width() float64    { return iv.High - iv.Low }
func (iv Interval) Midpoint() float64 { return 0.5 * (iv.Low + iv.High) }

func (iv Interval) Contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

// Overlaps reports whether the two intervals share at least one value.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Low <= o.High && o.Low <= iv.High
}

// Lerp maps t ∈ [0, 1] linearly onto the interval.
func (iv Interval) Lerp(t float64) float64 {
	return iv.Low + t*(iv.High-iv.Low)
}

// Difference returns the parts of iv that lie outside o, in ascending order.
// There are at most two such parts. Parts of zero width are dropped.
func (iv Interval) Difference(o Interval) []Interval {
	if o.High < iv.Low || o.Low > iv.High {
		return []Interval{iv}
	}
	var out []Interval
	if iv.Low < o.Low {
		out = append(out, Interval{iv.Low, min(iv.High, o.Low)})
	}
	if o.High < iv.High {
		out = append(out, Interval{max(iv.Low, o.High), iv.High})
	}
	return out
}

// DifferenceAll returns the fragments of iv that remain after removing every
// interval in others, in ascending order. The result does not depend on the
// order of others.
func (iv Interval) DifferenceAll(others []Interval) []Interval {
	fragments := ListOf(iv)
	for _, o := range others {
		fragments = FlatMap(fragments, func(f Interval) List[Interval] {
			return ListOf(f.Difference(o)...)
		})
	}
	return fragments.Slice()
}
