package xyedge

import (
	"fmt"
	"math"
)

// Segment is a curve, or a circular arc, restricted to a range of its
// parameter, as handled by [IntersectSegments]. Segments are immutable;
// clipping and splitting return new segments over narrower ranges of the same
// underlying curve.
type Segment interface {
	// Range returns the part of the underlying curve's parameter domain,
	// normally [0, 1], the segment covers.
	Range() Interval
	// Position evaluates the underlying curve at parameter t of its full
	// domain.
	Position(t float64) Point

	// fatLine returns the band that contains the whole segment.
	fatLine() fatLine
	// clip narrows the segment to the range that can lie within fl. The
	// boolean is false if no part of the segment can.
	clip(fl fatLine) (Segment, bool)
	// split halves the segment's range.
	split() (Segment, Segment)
}

// fatLine is the band of points whose signed distance from the line through
// origin with unit normal lies within [min, max].
type fatLine struct {
	origin Point
	normal Vec2
	min    float64
	max    float64
}

func (fl fatLine) distance(p Point) float64 {
	return p.Sub(fl.origin).Dot(fl.normal)
}

// bandEpsilon widens fat lines by a relative amount so that touching and
// exactly collinear configurations survive rounding.
const bandEpsilon = 1e-10

func (fl fatLine) widen(scale float64) fatLine {
	e := bandEpsilon * max(1, scale)
	fl.min -= e
	fl.max += e
	return fl
}

// LineSegment returns the clippable segment covering all of l.
func LineSegment(l Line) Segment {
	return newBezierSegment(l.points())
}

// QuadSegment returns the clippable segment covering all of q.
func QuadSegment(q QuadBez) Segment {
	return newBezierSegment(q.points())
}

// CubicSegment returns the clippable segment covering all of c.
func CubicSegment(c CubicBez) Segment {
	return newBezierSegment(c.points())
}

// bezierClipSegment returns the segment for the Bézier curve with control
// points pts, of degree 1 to 3.
func bezierClipSegment(pts []Point) Segment {
	return newBezierSegment(pts)
}

// ArcSegment returns the circular arc around center running from angle a0 to
// angle a1, in radians counterclockwise from +x. Parameter t of the segment
// maps linearly onto the angle, so t = 0 is at a0 and t = 1 at a1.
func ArcSegment(center Point, radius, a0, a1 float64) Segment {
	return arcSegment{
		center: center,
		radius: math.Abs(radius),
		a0:     a0,
		a1:     a1,
		rng:    Interval{0, 1},
	}
}

type bezierSegment struct {
	// orig holds the control points of the underlying curve, pts those of the
	// part over rng.
	orig []Point
	pts  []Point
	rng  Interval
}

func newBezierSegment(pts []Point) bezierSegment {
	if len(pts) < 2 || len(pts) > 4 {
		panic(fmt.Sprintf("xyedge: Bézier segment needs 2 to 4 control points, got %d", len(pts)))
	}
	return bezierSegment{orig: pts, pts: pts, rng: Interval{0, 1}}
}

// restrict returns the segment narrowed to rng.
func (s bezierSegment) restrict(rng Interval) bezierSegment {
	pts := make([]Point, len(s.orig))
	bezierSubsegment(s.orig, rng.Low, rng.High, pts)
	return bezierSegment{orig: s.orig, pts: pts, rng: rng}
}

func (s bezierSegment) Range() Interval { return s.rng }

func (s bezierSegment) Position(t float64) Point {
	return bezierEval(s.orig, t)
}

func (s bezierSegment) String() string {
	return fmt.Sprintf("bezierSegment%v%v", s.pts, s.rng)
}

func (s bezierSegment) fatLine() fatLine {
	n := len(s.pts) - 1
	p0, pn := s.pts[0], s.pts[n]
	dir := pn.Sub(p0)
	if dir.Hypot2() < 1e-24 {
		// The endpoints coincide; use the tangent at the start instead.
		dir = Vec2{}
		for _, p := range s.pts[1:] {
			if d := p.Sub(p0); d.Hypot2() >= 1e-24 {
				dir = d
				break
			}
		}
		if dir == (Vec2{}) {
			// A single point.
			dir = Vec(1, 0)
		}
	}
	fl := fatLine{origin: p0, normal: dir.Perp().Normalize()}
	var scale float64
	switch n {
	case 1:
		scale = dir.Hypot()
	case 2:
		// The curve's distance is 2t(1−t)d₁, which peaks at d₁/2.
		d1 := fl.distance(s.pts[1])
		fl.min, fl.max = min(0, d1/2), max(0, d1/2)
		scale = max(dir.Hypot(), math.Abs(d1))
	case 3:
		d1 := fl.distance(s.pts[1])
		d2 := fl.distance(s.pts[2])
		k := 4.0 / 9
		if d1*d2 > 0 {
			k = 3.0 / 4
		}
		fl.min = k * min(0, d1, d2)
		fl.max = k * max(0, d1, d2)
		scale = max(dir.Hypot(), math.Abs(d1), math.Abs(d2))
	}
	return fl.widen(scale)
}

// clip intersects the convex hull of the points (i/n, dᵢ), where dᵢ is the
// signed distance of control point i from the fat line, with the band.
func (s bezierSegment) clip(fl fatLine) (Segment, bool) {
	n := len(s.pts) - 1
	var d [4]float64
	for i, p := range s.pts {
		d[i] = fl.distance(p)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	include := func(t float64) {
		lo = min(lo, t)
		hi = max(hi, t)
	}
	for i := 0; i <= n; i++ {
		ti := float64(i) / float64(n)
		if d[i] >= fl.min && d[i] <= fl.max {
			include(ti)
		}
		// Each pair of hull points spans a segment that may cross the band's
		// edges. Pairs that aren't hull edges lie within the hull and cannot
		// extend the result.
		for j := i + 1; j <= n; j++ {
			tj := float64(j) / float64(n)
			for _, level := range [2]float64{fl.min, fl.max} {
				if (d[i]-level)*(d[j]-level) < 0 {
					u := (level - d[i]) / (d[j] - d[i])
					include(ti + u*(tj-ti))
				}
			}
		}
	}
	if lo > hi {
		return nil, false
	}
	lo, hi = max(lo, 0), min(hi, 1)
	return s.restrict(Interval{s.rng.Lerp(lo), s.rng.Lerp(hi)}), true
}

func (s bezierSegment) split() (Segment, Segment) {
	mid := s.rng.Midpoint()
	return s.restrict(Interval{s.rng.Low, mid}), s.restrict(Interval{mid, s.rng.High})
}

type arcSegment struct {
	center Point
	radius float64
	a0, a1 float64
	rng    Interval
}

func (s arcSegment) Range() Interval { return s.rng }

func (s arcSegment) angle(t float64) float64 {
	return s.a0 + t*(s.a1-s.a0)
}

func (s arcSegment) pointAt(theta float64) Point {
	return s.center.Translate(VecFromAngle(theta).Mul(s.radius))
}

func (s arcSegment) Position(t float64) Point {
	return s.pointAt(s.angle(t))
}

func (s arcSegment) String() string {
	return fmt.Sprintf("arcSegment{%v r=%g [%g, %g]}%v", s.center, s.radius, s.a0, s.a1, s.rng)
}

// angles returns the current angle range in ascending order.
func (s arcSegment) angles() (float64, float64) {
	th0, th1 := s.angle(s.rng.Low), s.angle(s.rng.High)
	return min(th0, th1), max(th0, th1)
}

// anglesIn returns every angle x + 2πk within [lo, hi].
func anglesIn(x, lo, hi float64) []float64 {
	const tau = 2 * math.Pi
	var out []float64
	for k := math.Ceil((lo - x) / tau); x+k*tau <= hi; k++ {
		out = append(out, x+k*tau)
	}
	return out
}

// distanceRange returns the smallest and largest signed distance of the arc's
// points over [lo, hi] from the line through origin with unit normal n. The
// distance at angle θ is A + r·cos(θ−α), with α the angle of n.
func (s arcSegment) distanceRange(origin Point, n Vec2, lo, hi float64) (float64, float64) {
	a := s.center.Sub(origin).Dot(n)
	alpha := n.Angle()
	dmin := a + s.radius*math.Cos(lo-alpha)
	dmax := dmin
	take := func(d float64) {
		dmin = min(dmin, d)
		dmax = max(dmax, d)
	}
	take(a + s.radius*math.Cos(hi-alpha))
	if len(anglesIn(alpha, lo, hi)) > 0 {
		take(a + s.radius)
	}
	if len(anglesIn(alpha+math.Pi, lo, hi)) > 0 {
		take(a - s.radius)
	}
	return dmin, dmax
}

func (s arcSegment) fatLine() fatLine {
	lo, hi := s.angles()
	p0, p1 := s.pointAt(lo), s.pointAt(hi)
	dir := p1.Sub(p0)
	var n Vec2
	if dir.Hypot2() > 1e-24*max(1, s.radius*s.radius) {
		n = dir.Perp().Normalize()
	} else {
		// Vanishing chord; the radius at the middle of the arc is normal to
		// its tangent there.
		n = VecFromAngle((lo + hi) / 2)
	}
	fl := fatLine{origin: p0, normal: n}
	fl.min, fl.max = s.distanceRange(p0, n, lo, hi)
	return fl.widen(s.radius)
}

// clip finds the angles of the current range at which the arc lies within
// the band, solving A + r·cos(θ−α) = level exactly for both band edges.
func (s arcSegment) clip(fl fatLine) (Segment, bool) {
	lo, hi := s.angles()
	a := s.center.Sub(fl.origin).Dot(fl.normal)
	alpha := fl.normal.Angle()
	d := func(theta float64) float64 { return a + s.radius*math.Cos(theta-alpha) }
	inBand := func(theta float64) bool {
		v := d(theta)
		return v >= fl.min && v <= fl.max
	}

	tmin, tmax := math.Inf(1), math.Inf(-1)
	include := func(theta float64) {
		tmin = min(tmin, theta)
		tmax = max(tmax, theta)
	}
	if inBand(lo) {
		include(lo)
	}
	if inBand(hi) {
		include(hi)
	}
	if s.radius > 0 {
		for _, level := range [2]float64{fl.min, fl.max} {
			k := (level - a) / s.radius
			if k < -1 || k > 1 {
				continue
			}
			phi := math.Acos(k)
			for _, x := range [2]float64{alpha + phi, alpha - phi} {
				for _, theta := range anglesIn(x, lo, hi) {
					include(theta)
				}
			}
		}
	}
	if tmin > tmax {
		return nil, false
	}

	// Map the angles back onto the segment's parameter.
	span := s.a1 - s.a0
	if span == 0 {
		return s, true
	}
	u0 := (tmin - s.a0) / span
	u1 := (tmax - s.a0) / span
	if u0 > u1 {
		u0, u1 = u1, u0
	}
	out := s
	out.rng = Interval{max(u0, s.rng.Low), min(u1, s.rng.High)}
	if out.rng.Low > out.rng.High {
		return nil, false
	}
	return out, true
}

func (s arcSegment) split() (Segment, Segment) {
	mid := s.rng.Midpoint()
	left, right := s, s
	left.rng = Interval{s.rng.Low, mid}
	right.rng = Interval{mid, s.rng.High}
	return left, right
}
