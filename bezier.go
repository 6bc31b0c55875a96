package xyedge

import "math"

// Helpers shared by Bézier curves of degree 1 to 3, operating on their
// control points.

// bezierEval evaluates the Bézier curve with control points pts at t, using
// de Casteljau.
func bezierEval(pts []Point, t float64) Point {
	var buf [4]Point
	tmp := buf[:copy(buf[:], pts)]
	for n := len(tmp) - 1; n > 0; n-- {
		for i := range n {
			tmp[i] = tmp[i].Lerp(tmp[i+1], t)
		}
	}
	return tmp[0]
}

// bezierDeriv returns the derivative of the Bézier curve at t.
func bezierDeriv(pts []Point, t float64) Vec2 {
	n := len(pts) - 1
	if n == 0 {
		return Vec2{}
	}
	var buf [3]Point
	d := buf[:n]
	for i := range n {
		d[i] = Point(pts[i+1].Sub(pts[i]).Mul(float64(n)))
	}
	return Vec2(bezierEval(d, t))
}

// bezierSplit splits the curve at t, writing the control points of the
// halves into left and right.
func bezierSplit(pts []Point, t float64, left, right []Point) {
	var buf [4]Point
	tmp := buf[:copy(buf[:], pts)]
	n := len(tmp) - 1
	left[0] = tmp[0]
	right[n] = tmp[n]
	for k := 1; k <= n; k++ {
		for i := range n - k + 1 {
			tmp[i] = tmp[i].Lerp(tmp[i+1], t)
		}
		left[k] = tmp[0]
		right[n-k] = tmp[n-k]
	}
}

// bezierSubsegment writes the control points of the part of the curve over
// [t0, t1] into out.
func bezierSubsegment(pts []Point, t0, t1 float64, out []Point) {
	var left, right [4]Point
	n := len(pts)
	bezierSplit(pts, t1, left[:n], right[:n])
	if t1 == 0 {
		copy(out, left[:n])
		return
	}
	bezierSplit(left[:n], t0/t1, right[:n], out)
}

// bezierPower returns the power basis coefficients c₀…cₙ of one coordinate
// (0 for x, 1 for y) of the curve.
func bezierPower(pts []Point, axis int) [4]float64 {
	var p [4]float64
	for i, pt := range pts {
		if axis == 0 {
			p[i] = pt.X
		} else {
			p[i] = pt.Y
		}
	}
	switch len(pts) {
	case 1:
		return [4]float64{p[0]}
	case 2:
		return [4]float64{p[0], p[1] - p[0]}
	case 3:
		return [4]float64{p[0], 2 * (p[1] - p[0]), p[0] - 2*p[1] + p[2]}
	case 4:
		return [4]float64{
			p[0],
			3 * (p[1] - p[0]),
			3 * (p[0] - 2*p[1] + p[2]),
			-p[0] + 3*p[1] - 3*p[2] + p[3],
		}
	default:
		panic("unreachable")
	}
}

// offsetBounds returns the corners of the tight bounding box of the curve's
// two parallels at distance |shift|. A parallel's tangent is parallel to the
// curve's, so its extrema lie at the curve's end points and at the
// parameters where the curve's own tangent is axis-aligned. Cusps of
// parallels beyond the radius of curvature are not considered.
func offsetBounds(pts []Point, shift float64) (lo, hi Point) {
	s := math.Abs(shift)
	if s == 0 {
		return bezierBounds(pts)
	}
	degree := len(pts) - 1
	ts := []float64{0, 1}
	for axis := range 2 {
		c := bezierPower(pts, axis)
		var dc [4]float64
		for k := 1; k <= degree; k++ {
			dc[k-1] = float64(k) * c[k]
		}
		ts = append(ts, solvePoly(dc, degree-1)...)
	}
	chord := pts[degree].Sub(pts[0])
	lo = Pt(math.Inf(1), math.Inf(1))
	hi = Pt(math.Inf(-1), math.Inf(-1))
	include := func(p Point) {
		lo = Pt(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = Pt(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	for _, t := range ts {
		p := bezierEval(pts, t)
		d := bezierDeriv(pts, t)
		if d.Hypot2() == 0 {
			d = chord
		}
		if d.Hypot2() == 0 {
			// No direction to offset along; cover the whole disk.
			include(p.Translate(Vec(-s, -s)))
			include(p.Translate(Vec(s, s)))
			continue
		}
		n := d.Perp().Normalize().Mul(s)
		include(p.Translate(n))
		include(p.Translate(n.Negate()))
	}
	return lo, hi
}

// solvePoly returns the roots in [0, 1] of a polynomial of the given degree.
func solvePoly(c [4]float64, degree int) []float64 {
	switch degree {
	case 0:
		return nil
	case 1:
		roots, n := SolveLinear(c[0], c[1])
		return roots[:n:n]
	case 2:
		roots, n := SolveQuadratic(c[0], c[1], c[2])
		return roots[:n:n]
	case 3:
		roots, n := SolveCubic(c[0], c[1], c[2], c[3])
		return roots[:n:n]
	default:
		panic("unreachable")
	}
}

// bezierBounds returns the corners of the curve's tight bounding box.
func bezierBounds(pts []Point) (lo, hi Point) {
	first, last := pts[0], pts[len(pts)-1]
	lo = Pt(min(first.X, last.X), min(first.Y, last.Y))
	hi = Pt(max(first.X, last.X), max(first.Y, last.Y))
	degree := len(pts) - 1
	for axis := range 2 {
		c := bezierPower(pts, axis)
		var dc [4]float64
		for k := 1; k <= degree; k++ {
			dc[k-1] = float64(k) * c[k]
		}
		for _, t := range solvePoly(dc, degree-1) {
			p := bezierEval(pts, t)
			lo = Pt(min(lo.X, p.X), min(lo.Y, p.Y))
			hi = Pt(max(hi.X, p.X), max(hi.Y, p.Y))
		}
	}
	return lo, hi
}

// arcOverlap widens each quarter arc of an ellipse so that neighboring arcs
// overlap at the seams.
const arcOverlap = 1e-2

// bezierCrossings returns the sorted parameters at which the curve crosses
// the outline of f.
func bezierCrossings(pts []Point, f Frame) []float64 {
	degree := len(pts) - 1
	var ts []float64
	switch f.kind {
	case NoFrame, PointFrame:
		return nil
	case RectFrame:
		for _, edge := range f.rectEdges() {
			c := bezierPower(pts, edge.axis)
			c[0] -= edge.value
			for _, t := range solvePoly(c, degree) {
				if edge.contains(bezierEval(pts, t)) {
					ts = append(ts, t)
				}
			}
		}
	case EllipseFrame:
		for _, q := range f.ellipseQuadrants() {
			unit := transformPoints(pts, q.toUnit)
			var candidates []float64
			if degree == 1 {
				candidates = lineCircleCrossings(unit[0], unit[1])
			} else {
				candidates = arcCrossings(unit, q.angle0)
			}
			for _, t := range candidates {
				// Past its seams, the arc is widened on the wrong radii
				// and finds crossings that aren't on the outline.
				p := bezierEval(pts, t)
				if q.contains(p.Sub(f.center)) && f.onOutline(p) {
					ts = append(ts, t)
				}
			}
		}
	default:
		panic("unreachable")
	}
	return dedupeSorted(ts, 1e-6)
}

// lineCircleCrossings intersects the line p0–p1 with the unit circle.
func lineCircleCrossings(p0, p1 Point) []float64 {
	a := Vec2(p0)
	b := p1.Sub(p0)
	roots, n := SolveQuadratic(a.Hypot2()-1, 2*a.Dot(b), b.Hypot2())
	return roots[:n:n]
}

// arcCrossings intersects the curve with the quarter of the unit circle
// starting at angle0, using segment clipping, and refines each hit with
// Newton's method.
func arcCrossings(unit []Point, angle0 float64) []float64 {
	seg := bezierClipSegment(unit)
	arc := ArcSegment(Point{}, 1, angle0-arcOverlap, angle0+math.Pi/2+arcOverlap)
	var out []float64
	for _, hit := range IntersectSegments(seg, arc) {
		out = append(out, refineCircleCrossing(unit, hit.A))
	}
	return out
}

// refineCircleCrossing polishes a crossing of the curve with the unit circle
// located within iv, solving |B(t)|² = 1.
func refineCircleCrossing(pts []Point, iv Interval) float64 {
	t := iv.Midpoint()
	lo := max(iv.Low-ClipAccuracy, 0)
	hi := min(iv.High+ClipAccuracy, 1)
	for range 8 {
		p := Vec2(bezierEval(pts, t))
		g := p.Hypot2() - 1
		dg := 2 * p.Dot(bezierDeriv(pts, t))
		if dg == 0 {
			break
		}
		next := t - g/dg
		if next < lo || next > hi {
			break
		}
		if math.Abs(next-t) < 1e-14 {
			t = next
			break
		}
		t = next
	}
	return t
}

// elevate returns the control points of the curve raised to a cubic.
func elevate(pts []Point) [4]Point {
	switch len(pts) {
	case 2:
		return [4]Point{pts[0], pts[0].Lerp(pts[1], 1.0/3), pts[0].Lerp(pts[1], 2.0/3), pts[1]}
	case 3:
		return [4]Point{
			pts[0],
			pts[0].Translate(pts[1].Sub(pts[0]).Mul(2.0 / 3.0)),
			pts[2].Translate(pts[1].Sub(pts[2]).Mul(2.0 / 3.0)),
			pts[2],
		}
	case 4:
		return [4]Point(pts)
	default:
		panic("unreachable")
	}
}
