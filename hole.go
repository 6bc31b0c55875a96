package xyedge

import "slices"

// CurveShape is a curve as it is drawn: with holes cut out wherever labels or
// other marks sit on top of it. CurveShape values are immutable; cutting a
// hole returns a new shape that shares the existing holes.
type CurveShape struct {
	curve Curve
	holes List[Interval]
}

// NewCurveShape returns the shape of c without any holes.
func NewCurveShape(c Curve) CurveShape {
	return CurveShape{curve: c}
}

func (s CurveShape) Curve() Curve { return s.curve }

// Holes returns the parameter ranges cut out of the curve, most recent
// first.
func (s CurveShape) Holes() List[Interval] { return s.holes }

// SliceHole cuts the part of the curve that lies inside f around parameter t
// out of the shape. The curve's crossings with f's outline divide [0, 1] into
// pieces; the piece that contains t becomes a hole if its midpoint lies
// inside f. If t is a crossing itself, both adjacent pieces are candidates.
//
// Point frames contain nothing and never cut a hole.
func (s CurveShape) SliceHole(f Frame, t float64) CurveShape {
	if f.IsPoint() {
		return s
	}
	ts := append([]float64{0}, s.curve.Crossings(f)...)
	ts = append(ts, 1)
	slices.Sort(ts)
	holes := s.holes
	for i := range len(ts) - 1 {
		t0, t1 := ts[i], ts[i+1]
		if t0 >= t1 || t < t0 || t > t1 {
			continue
		}
		if f.Contains(s.curve.Position((t0 + t1) / 2)) {
			holes = holes.Prepend(Interval{t0, t1})
		}
	}
	return CurveShape{curve: s.curve, holes: holes}
}

// VisibleIntervals returns the parameter ranges of the curve that remain
// after removing every hole, in ascending order.
func (s CurveShape) VisibleIntervals() []Interval {
	return Interval{0, 1}.DifferenceAll(s.holes.Slice())
}

// VisibleCurves returns the pieces of the curve over its visible intervals.
func (s CurveShape) VisibleCurves() []Curve {
	var out []Curve
	for _, iv := range s.VisibleIntervals() {
		if c, ok := s.curve.Slice(iv.Low, iv.High); ok {
			out = append(out, c)
		}
	}
	return out
}
