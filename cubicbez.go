package xyedge

import "iter"

type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point

	arclen *arcLengthCache
}

var _ Curve = CubicBez{}

// NewCubicBez returns the cubic Bézier with the given control points.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3, arclen: newArcLengthCache()}
}

func (c CubicBez) points() []Point { return []Point{c.P0, c.P1, c.P2, c.P3} }

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (cb CubicBez) Position(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Derivative(t float64) Vec2 {
	return Vec2(c.Differentiate().Position(t))
}

// Differentiate returns the derivative of the curve, a quadratic Bézier.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		P0: Point(c.P1.Sub(c.P0).Mul(3)),
		P1: Point(c.P2.Sub(c.P1).Mul(3)),
		P2: Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) TangentAngle(t float64) float64 {
	return tangentAngle(c, t)
}

func (c CubicBez) lengths() []float64 {
	return c.arclen.get(c.Derivative)
}

func (c CubicBez) ArcLength(t float64) float64 {
	return arcLengthAt(c.lengths(), t)
}

func (c CubicBez) Length() float64 {
	return c.ArcLength(1)
}

func (c CubicBez) ParameterAtLength(s float64) float64 {
	return parameterAtLength(c.lengths(), s)
}

func (c CubicBez) Crossings(f Frame) []float64 {
	return bezierCrossings(c.points(), f)
}

func (c CubicBez) ParameterAtFrameEntry(f Frame) (float64, bool) { return frameEntry(c, f) }
func (c CubicBez) ParameterAtFrameExit(f Frame) (float64, bool)  { return frameExit(c, f) }

// Subsegment returns the part of the curve over [t0, t1] as a cubic Bézier.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Position(t0)
	p3 := c.Position(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Position(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Position(t1)).Mul(scale).Negate())
	return NewCubicBez(p0, p1, p2, p3)
}

// SplitAt splits the curve at t using de Casteljau.
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	var left, right [4]Point
	bezierSplit(c.points(), t, left[:], right[:])
	return NewCubicBez(left[0], left[1], left[2], left[3]),
		NewCubicBez(right[0], right[1], right[2], right[3])
}

func (c CubicBez) Subdivide(t float64) (Curve, Curve, error) {
	if err := checkParameter("cubic Bézier", "subdivide", t); err != nil {
		return nil, nil, err
	}
	c0, c1 := c.SplitAt(t)
	return c0, c1, nil
}

func (c CubicBez) Slice(t0, t1 float64) (Curve, bool) {
	t0, t1, ok := clampRange(t0, t1)
	if !ok {
		return nil, false
	}
	return c.Subsegment(t0, t1), true
}

func (c CubicBez) BoundingFrame(shift float64) Frame {
	return boundsFrame(offsetBounds(c.points(), shift))
}

func (c CubicBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(c.P0)) &&
			yield(CubicTo(c.P1, c.P2, c.P3))
	}
}

func (c CubicBez) clipPieces() []clipPiece {
	return []clipPiece{{seg: CubicSegment(c), domain: Interval{0, 1}}}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return NewCubicBez(c.P0.Transform(aff), c.P1.Transform(aff), c.P2.Transform(aff), c.P3.Transform(aff))
}
