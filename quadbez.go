package xyedge

import "iter"

type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point

	arclen *arcLengthCache
}

var _ Curve = QuadBez{}

// NewQuadBez returns the quadratic Bézier with the given control points.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2, arclen: newArcLengthCache()}
}

func (q QuadBez) points() []Point { return []Point{q.P0, q.P1, q.P2} }

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) Position(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Derivative(t float64) Vec2 {
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	return d0.Lerp(d1, t).Mul(2)
}

func (q QuadBez) TangentAngle(t float64) float64 {
	return tangentAngle(q, t)
}

func (q QuadBez) lengths() []float64 {
	return q.arclen.get(q.Derivative)
}

func (q QuadBez) ArcLength(t float64) float64 {
	return arcLengthAt(q.lengths(), t)
}

func (q QuadBez) Length() float64 {
	return q.ArcLength(1)
}

func (q QuadBez) ParameterAtLength(s float64) float64 {
	return parameterAtLength(q.lengths(), s)
}

func (q QuadBez) Crossings(f Frame) []float64 {
	return bezierCrossings(q.points(), f)
}

func (q QuadBez) ParameterAtFrameEntry(f Frame) (float64, bool) { return frameEntry(q, f) }
func (q QuadBez) ParameterAtFrameExit(f Frame) (float64, bool)  { return frameExit(q, f) }

// Subsegment returns the part of the curve over [t0, t1] as a quadratic
// Bézier.
func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	p0 := q.Position(t0)
	p2 := q.Position(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return NewQuadBez(p0, p1, p2)
}

func (q QuadBez) Subdivide(t float64) (Curve, Curve, error) {
	if err := checkParameter("quadratic Bézier", "subdivide", t); err != nil {
		return nil, nil, err
	}
	var left, right [3]Point
	bezierSplit(q.points(), t, left[:], right[:])
	return NewQuadBez(left[0], left[1], left[2]), NewQuadBez(right[0], right[1], right[2]), nil
}

func (q QuadBez) Slice(t0, t1 float64) (Curve, bool) {
	t0, t1, ok := clampRange(t0, t1)
	if !ok {
		return nil, false
	}
	return q.Subsegment(t0, t1), true
}

func (q QuadBez) BoundingFrame(shift float64) Frame {
	return boundsFrame(offsetBounds(q.points(), shift))
}

func (q QuadBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(q.P0)) &&
			yield(QuadTo(q.P1, q.P2))
	}
}

func (q QuadBez) clipPieces() []clipPiece {
	return []clipPiece{{seg: QuadSegment(q), domain: Interval{0, 1}}}
}

// Raise returns a cubic Bézier that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	c := elevate(q.points())
	return NewCubicBez(c[0], c[1], c[2], c[3])
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return NewQuadBez(q.P0.Transform(aff), q.P1.Transform(aff), q.P2.Transform(aff))
}
