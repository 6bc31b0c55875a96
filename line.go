package xyedge

import (
	"iter"
	"math"
)

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ Curve = Line{}

// NewLine returns the line from p0 to p1.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

func (l Line) points() []Point { return []Point{l.P0, l.P1} }

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Position(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Derivative(t float64) Vec2 {
	return l.P1.Sub(l.P0)
}

func (l Line) TangentAngle(t float64) float64 {
	return tangentAngle(l, t)
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// ArcLength returns the length of the line over [0, t]. Lines measure their
// length exactly and don't need a table.
func (l Line) ArcLength(t float64) float64 {
	return min(max(t, 0), 1) * l.Length()
}

func (l Line) ParameterAtLength(s float64) float64 {
	length := l.Length()
	if length == 0 || s <= 0 {
		return 0
	}
	return min(s/length, 1)
}

func (l Line) Crossings(f Frame) []float64 {
	return bezierCrossings(l.points(), f)
}

func (l Line) ParameterAtFrameEntry(f Frame) (float64, bool) { return frameEntry(l, f) }
func (l Line) ParameterAtFrameExit(f Frame) (float64, bool)  { return frameExit(l, f) }

// Subsegment returns the part of the line over [t0, t1].
func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{l.Position(t0), l.Position(t1)}
}

func (l Line) Subdivide(t float64) (Curve, Curve, error) {
	if err := checkParameter("line", "subdivide", t); err != nil {
		return nil, nil, err
	}
	return l.Subsegment(0, t), l.Subsegment(t, 1), nil
}

func (l Line) Slice(t0, t1 float64) (Curve, bool) {
	t0, t1, ok := clampRange(t0, t1)
	if !ok {
		return nil, false
	}
	return l.Subsegment(t0, t1), true
}

func (l Line) BoundingFrame(shift float64) Frame {
	return boundsFrame(offsetBounds(l.points(), shift))
}

func (l Line) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(l.P0)) &&
			yield(LineTo(l.P1))
	}
}

func (l Line) clipPieces() []clipPiece {
	return []clipPiece{{seg: LineSegment(l), domain: Interval{0, 1}}}
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if math.Abs(pcd) < 1e-12*ab.Hypot()*cd.Hypot() || pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}
