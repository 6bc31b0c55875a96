package xyedge

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"
)

// ArcLengthResolution is the number of Simpson's rule intervals in a curve's
// arc length table.
const ArcLengthResolution = 128

// Curve is a curve parametrized by t ∈ [0, 1].
//
// Curves are immutable values. The only state a curve carries beyond its
// control points is its arc length table, which is computed on first use and
// never changes afterwards. Curves created with their New functions cache the
// table; curves created as struct literals recompute it on every use.
type Curve interface {
	Start() Point
	End() Point

	// Position evaluates the curve at t.
	Position(t float64) Point
	// Derivative returns the curve's first derivative with respect to t.
	Derivative(t float64) Vec2
	// TangentAngle returns the angle of the derivative at t, atan2(dy, dx).
	TangentAngle(t float64) float64

	// ArcLength returns the length of the curve over [0, t].
	ArcLength(t float64) float64
	// Length returns the total length of the curve.
	Length() float64
	// ParameterAtLength is the inverse of ArcLength. Lengths outside of
	// [0, Length()] map to 0 and 1.
	ParameterAtLength(s float64) float64

	// Crossings returns, in ascending order, every parameter at which the
	// curve crosses the outline of f. Point frames have no outline.
	Crossings(f Frame) []float64
	// ParameterAtFrameEntry returns the first crossing with f's outline.
	// Shaving against a point frame is a no-op and returns 0. The boolean is
	// false if the curve never crosses f's outline.
	ParameterAtFrameEntry(f Frame) (float64, bool)
	// ParameterAtFrameExit returns the last crossing with f's outline.
	// Shaving against a point frame is a no-op and returns 1. The boolean is
	// false if the curve never crosses f's outline.
	ParameterAtFrameExit(f Frame) (float64, bool)

	// Subdivide splits the curve at t into the parts before and after t. It
	// returns a *DomainError if t is outside [0, 1].
	Subdivide(t float64) (Curve, Curve, error)
	// Slice returns the part of the curve over [t0, t1], with both clamped to
	// [0, 1]. The boolean is false if the clamped range is empty.
	Slice(t0, t1 float64) (Curve, bool)

	// BoundingFrame returns the smallest rectangular frame covering the curve
	// and its parallels at ±shift.
	BoundingFrame(shift float64) Frame

	// PathElements returns the drawing commands that trace the curve.
	PathElements() iter.Seq[PathElement]

	// clipPieces returns the curve as clippable segments, each mapped onto
	// the part of the curve's domain it covers.
	clipPieces() []clipPiece
}

var (
	ErrNoSegments       = errors.New("xyedge: piecewise curve needs at least one segment")
	ErrNoInteriorPoints = errors.New("xyedge: B-spline needs at least one interior control point")
)

// DomainError reports a curve operation invoked with a parameter outside of
// [0, 1].
type DomainError struct {
	Curve string
	Op    string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("xyedge: %s: %s: parameter %g outside [0, 1]", e.Curve, e.Op, e.Value)
}

func checkParameter(curve, op string, t float64) error {
	if !(t >= 0 && t <= 1) {
		return &DomainError{Curve: curve, Op: op, Value: t}
	}
	return nil
}

// clampRange clamps t0 and t1 to [0, 1] and reports whether the result is
// non-empty.
func clampRange(t0, t1 float64) (float64, float64, bool) {
	t0 = min(max(t0, 0), 1)
	t1 = min(max(t1, 0), 1)
	return t0, t1, t0 < t1
}

type arcLengthCache struct {
	once  sync.Once
	table []float64
}

func newArcLengthCache() *arcLengthCache {
	return &arcLengthCache{}
}

func (c *arcLengthCache) get(deriv func(float64) Vec2) []float64 {
	if c == nil {
		return arcLengthTable(deriv)
	}
	c.once.Do(func() { c.table = arcLengthTable(deriv) })
	return c.table
}

// arcLengthTable integrates the speed |deriv| with Simpson's rule over
// ArcLengthResolution equal intervals. Entry i is the length over
// [0, i/ArcLengthResolution].
func arcLengthTable(deriv func(float64) Vec2) []float64 {
	const n = ArcLengthResolution
	const h = 1.0 / n
	table := make([]float64, n+1)
	speed := func(t float64) float64 { return deriv(t).Hypot() }
	prev := speed(0)
	for i := range n {
		a := float64(i) * h
		mid := speed(a + h/2)
		next := speed(a + h)
		table[i+1] = table[i] + h/6*(prev+4*mid+next)
		prev = next
	}
	return table
}

func arcLengthAt(table []float64, t float64) float64 {
	const n = ArcLengthResolution
	x := min(max(t, 0), 1) * n
	i := int(x)
	if i >= n {
		return table[n]
	}
	return table[i] + (x-float64(i))*(table[i+1]-table[i])
}

func parameterAtLength(table []float64, s float64) float64 {
	const n = ArcLengthResolution
	if s <= table[0] {
		return 0
	}
	if s >= table[n] {
		return 1
	}
	j := sort.SearchFloat64s(table, s)
	i := j - 1
	var frac float64
	if span := table[j] - table[i]; span > 0 {
		frac = (s - table[i]) / span
	}
	return (float64(i) + frac) / n
}

func frameEntry(c Curve, f Frame) (float64, bool) {
	if f.IsPoint() {
		return 0, true
	}
	ts := c.Crossings(f)
	if len(ts) == 0 {
		return 0, false
	}
	return ts[0], true
}

func frameExit(c Curve, f Frame) (float64, bool) {
	if f.IsPoint() {
		return 1, true
	}
	ts := c.Crossings(f)
	if len(ts) == 0 {
		return 0, false
	}
	return ts[len(ts)-1], true
}

func tangentAngle(c Curve, t float64) float64 {
	return c.Derivative(t).Angle()
}

// boundsFrame turns a bounding box into a rectangular frame around its
// center.
func boundsFrame(lo, hi Point) Frame {
	w := hi.X - lo.X
	h := hi.Y - lo.Y
	return NewRectFrame(lo.Midpoint(hi), w/2, w/2, h/2, h/2)
}

// dedupeSorted sorts ts and drops values within epsilon of their
// predecessor.
func dedupeSorted(ts []float64, epsilon float64) []float64 {
	sort.Float64s(ts)
	out := ts[:0]
	for _, t := range ts {
		if len(out) > 0 && t-out[len(out)-1] <= epsilon {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Shave returns the part of c between where it leaves start and where it
// enters end, the visible part of an edge drawn between two objects. The
// boolean is false if there is no such part, in which case the edge should
// not be drawn.
//
// Point frames, and absent ones, leave their end of the curve untouched.
func Shave(c Curve, start, end Frame) (Curve, bool) {
	t0, t1 := 0.0, 1.0
	var ok bool
	if !start.IsPoint() && !start.IsAbsent() {
		if t0, ok = c.ParameterAtFrameExit(start); !ok {
			return nil, false
		}
	}
	if !end.IsPoint() && !end.IsAbsent() {
		if t1, ok = c.ParameterAtFrameEntry(end); !ok {
			return nil, false
		}
	}
	return c.Slice(t0, t1)
}
