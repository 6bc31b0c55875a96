package xyedge

import (
	"iter"
	"math"
)

// EvenParameters returns n+1 parameters that divide c into n pieces of
// identical arc length. The first is always 0 and the last is always 1.
func EvenParameters(c Curve, n int) []float64 {
	n = max(n, 1)
	total := c.Length()
	ts := make([]float64, n+1)
	for i := 1; i < n; i++ {
		ts[i] = c.ParameterAtLength(total * float64(i) / float64(n))
	}
	ts[n] = 1
	return ts
}

// SplitN divides c into n pieces of identical arc length.
func SplitN(c Curve, n int) iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		ts := EvenParameters(c, n)
		for i := range len(ts) - 1 {
			piece, ok := c.Slice(ts[i], ts[i+1])
			if !ok {
				continue
			}
			if !yield(piece) {
				return
			}
		}
	}
}

// SplitArcLength divides c into consecutive pieces of arc length l. Any
// remainder is at the end. A non-positive or non-finite l yields c unchanged.
func SplitArcLength(c Curve, l float64) iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		total := c.Length()
		if !(l > 0) || math.IsInf(l, 0) || total <= l {
			yield(c)
			return
		}
		// Rounding in the length table can leave a sliver at the end; a
		// remainder shorter than this is merged into the last piece.
		slack := 1e-9 * total
		t0 := 0.0
		for s := l; s < total-slack; s += l {
			t1 := c.ParameterAtLength(s)
			if piece, ok := c.Slice(t0, t1); ok {
				if !yield(piece) {
					return
				}
				t0 = t1
			}
		}
		if piece, ok := c.Slice(t0, 1); ok {
			yield(piece)
		}
	}
}

// Flatten approximates c by a polyline. Its vertices lie on the curve at even
// arc length spacing no larger than step, and include both end points.
func Flatten(c Curve, step float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		n := 1
		if total := c.Length(); step > 0 && total > step {
			n = int(math.Ceil(total / step))
		}
		for _, t := range EvenParameters(c, n) {
			if !yield(c.Position(t)) {
				return
			}
		}
	}
}
