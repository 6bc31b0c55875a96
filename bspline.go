package xyedge

import (
	"fmt"
	"iter"
	"slices"
)

// CubicBSpline is a uniform cubic B-spline running from a start point
// through the influence of one or more interior control points to an end
// point.
//
// The spline interpolates its start and end points. Phantom control points
// 2s−c₁ and 2e−cₙ are added before the start point s and after the end point
// e, so that the control polygon is p = (2s−c₁, s, c₁, …, cₙ, e, 2e−cₙ) and
// the spline has n+1 knot intervals.
type CubicBSpline struct {
	cps []Point
	// beziers is the exact Bézier form, one segment per knot interval, which
	// supplies arc lengths, crossings and slicing.
	beziers PiecewiseCubicBez
}

var _ Curve = CubicBSpline{}

// NewCubicBSpline returns the spline from start to end shaped by interior.
// It fails with ErrNoInteriorPoints if interior is empty.
func NewCubicBSpline(start Point, interior []Point, end Point) (CubicBSpline, error) {
	if len(interior) == 0 {
		return CubicBSpline{}, fmt.Errorf("new cubic B-spline from %v to %v: %w", start, end, ErrNoInteriorPoints)
	}
	first := interior[0]
	last := interior[len(interior)-1]
	cps := make([]Point, 0, len(interior)+4)
	cps = append(cps, Point(Vec2(start).Mul(2).Sub(Vec2(first))), start)
	cps = append(cps, interior...)
	cps = append(cps, end, Point(Vec2(end).Mul(2).Sub(Vec2(last))))
	b := CubicBSpline{cps: cps}
	b.beziers = newPiecewise(b.ToCubicBeziers())
	return b, nil
}

// ControlPoints returns the spline's control polygon, including the phantom
// points.
func (b CubicBSpline) ControlPoints() []Point {
	return slices.Clone(b.cps)
}

// intervals is the number of knot intervals.
func (b CubicBSpline) intervals() int {
	return len(b.cps) - 3
}

// bsplineBasis is the uniform cubic B-spline basis function, supported on
// [0, 4).
func bsplineBasis(u float64) float64 {
	switch {
	case u < 0 || u >= 4:
		return 0
	case u < 1:
		return u * u * u / 6
	case u < 2:
		return (-3*u*u*u + 12*u*u - 12*u + 4) / 6
	case u < 3:
		return (3*u*u*u - 24*u*u + 60*u - 44) / 6
	default:
		v := 4 - u
		return v * v * v / 6
	}
}

// bsplineBasisDeriv is the derivative of bsplineBasis.
func bsplineBasisDeriv(u float64) float64 {
	switch {
	case u < 0 || u >= 4:
		return 0
	case u < 1:
		return u * u / 2
	case u < 2:
		return (-9*u*u + 24*u - 12) / 6
	case u < 3:
		return (9*u*u - 48*u + 60) / 6
	default:
		v := 4 - u
		return -v * v / 2
	}
}

// evalBasis sums the control points weighted by basis at the knot position
// of t. At t = 1 the last interval is evaluated at its end.
func (b CubicBSpline) evalBasis(t float64, basis func(float64) float64) Vec2 {
	m := b.intervals()
	u := min(max(t, 0), 1) * float64(m)
	k := min(int(u), m-1)
	var v Vec2
	for j := k; j <= k+3; j++ {
		// Control point j is weighted by the basis function starting at knot
		// j−3.
		v = v.Add(Vec2(b.cps[j]).Mul(basis(u - float64(j) + 3)))
	}
	return v
}

func (b CubicBSpline) Start() Point { return b.cps[1] }
func (b CubicBSpline) End() Point   { return b.cps[len(b.cps)-2] }

func (b CubicBSpline) Position(t float64) Point {
	if t >= 1 {
		// The basis functions are right-open, so evaluate the final knot
		// through the Bézier form.
		return b.End()
	}
	return Point(b.evalBasis(t, bsplineBasis))
}

func (b CubicBSpline) Derivative(t float64) Vec2 {
	if t >= 1 {
		return b.beziers.Derivative(1)
	}
	return b.evalBasis(t, bsplineBasisDeriv).Mul(float64(b.intervals()))
}

func (b CubicBSpline) TangentAngle(t float64) float64 {
	return tangentAngle(b, t)
}

// ToCubicBeziers converts the spline to one cubic Bézier per knot interval.
// For the control points q₀…q₃ of an interval, the Bézier control points
// are the points at 1/3 and 2/3 of the legs q₁q₂, averaged with the
// neighboring legs at the ends.
func (b CubicBSpline) ToCubicBeziers() []CubicBez {
	m := b.intervals()
	out := make([]CubicBez, m)
	for k := range m {
		q := b.cps[k : k+4]
		b1 := q[1].Lerp(q[2], 1.0/3)
		b2 := q[1].Lerp(q[2], 2.0/3)
		prev := q[0].Lerp(q[1], 2.0/3)
		next := q[2].Lerp(q[3], 1.0/3)
		out[k] = NewCubicBez(prev.Midpoint(b1), b1, b2, b2.Midpoint(next))
	}
	return out
}

// Beziers returns the spline's exact piecewise Bézier form.
func (b CubicBSpline) Beziers() PiecewiseCubicBez {
	return b.beziers
}

func (b CubicBSpline) ArcLength(t float64) float64       { return b.beziers.ArcLength(t) }
func (b CubicBSpline) Length() float64                   { return b.beziers.Length() }
func (b CubicBSpline) ParameterAtLength(s float64) float64 { return b.beziers.ParameterAtLength(s) }
func (b CubicBSpline) Crossings(f Frame) []float64       { return b.beziers.Crossings(f) }

func (b CubicBSpline) ParameterAtFrameEntry(f Frame) (float64, bool) { return frameEntry(b, f) }
func (b CubicBSpline) ParameterAtFrameExit(f Frame) (float64, bool)  { return frameExit(b, f) }

// Subdivide splits the spline's Bézier form, returning two piecewise cubic
// Béziers.
func (b CubicBSpline) Subdivide(t float64) (Curve, Curve, error) {
	if err := checkParameter("cubic B-spline", "subdivide", t); err != nil {
		return nil, nil, err
	}
	return b.beziers.Subdivide(t)
}

func (b CubicBSpline) Slice(t0, t1 float64) (Curve, bool) {
	return b.beziers.Slice(t0, t1)
}

func (b CubicBSpline) BoundingFrame(shift float64) Frame {
	return b.beziers.BoundingFrame(shift)
}

func (b CubicBSpline) PathElements() iter.Seq[PathElement] {
	return b.beziers.PathElements()
}

func (b CubicBSpline) clipPieces() []clipPiece {
	return b.beziers.clipPieces()
}
