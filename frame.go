package xyedge

import (
	"fmt"
	"math"
)

// FrameKind identifies the shape of a [Frame].
type FrameKind int

const (
	// NoFrame is the kind of the zero Frame, which stands for an absent frame.
	NoFrame FrameKind = iota
	PointFrame
	RectFrame
	EllipseFrame
)

func (k FrameKind) String() string {
	switch k {
	case NoFrame:
		return "none"
	case PointFrame:
		return "point"
	case RectFrame:
		return "rect"
	case EllipseFrame:
		return "ellipse"
	default:
		return fmt.Sprintf("FrameKind(%d)", int(k))
	}
}

// Frame is the bounding outline of a diagram object, anchored at a center
// point. It is a point, an axis-aligned rectangle, or an ellipse, described by
// four non-negative offsets from the center: l (toward −x), r (toward +x), u
// (toward +y) and d (toward −y). The ellipse is made of four quarter ellipses,
// one per quadrant, with the radii of the offsets bounding that quadrant.
//
// Frames are immutable. The zero Frame is absent; it is the identity of
// [Frame.Combine] and is treated like a point everywhere else.
type Frame struct {
	kind       FrameKind
	center     Point
	l, r, u, d float64
}

// NewPointFrame returns a zero-extent frame at c.
func NewPointFrame(c Point) Frame {
	return Frame{kind: PointFrame, center: c}
}

// NewRectFrame returns a rectangular frame around c. Negative offsets are
// clamped to zero.
func NewRectFrame(c Point, l, r, u, d float64) Frame {
	return Frame{
		kind:   RectFrame,
		center: c,
		l:      max(l, 0),
		r:      max(r, 0),
		u:      max(u, 0),
		d:      max(d, 0),
	}
}

// NewEllipseFrame returns an elliptical frame around c. Negative offsets are
// clamped to zero. If either axis has zero extent, the result is a point
// frame.
func NewEllipseFrame(c Point, l, r, u, d float64) Frame {
	l, r, u, d = max(l, 0), max(r, 0), max(u, 0), max(d, 0)
	if l+r == 0 || u+d == 0 {
		return NewPointFrame(c)
	}
	return Frame{kind: EllipseFrame, center: c, l: l, r: r, u: u, d: d}
}

// NewCircleFrame returns a circular frame of the given radius around c.
func NewCircleFrame(c Point, radius float64) Frame {
	return NewEllipseFrame(c, radius, radius, radius, radius)
}

func (f Frame) Kind() FrameKind { return f.kind }
func (f Frame) Center() Point   { return f.center }

// Offsets returns the frame's l, r, u and d offsets.
func (f Frame) Offsets() (l, r, u, d float64) { return f.l, f.r, f.u, f.d }

func (f Frame) IsAbsent() bool { return f.kind == NoFrame }

// IsPoint reports whether the frame has no extent to speak of. Absent frames
// are points.
func (f Frame) IsPoint() bool { return f.kind == NoFrame || f.kind == PointFrame }

func (f Frame) Width() float64  { return f.l + f.r }
func (f Frame) Height() float64 { return f.u + f.d }

// Bounds returns the lower left and upper right corners of the frame's
// bounding box.
func (f Frame) Bounds() (lo, hi Point) {
	c := f.center
	return Pt(c.X-f.l, c.Y-f.d), Pt(c.X+f.r, c.Y+f.u)
}

func (f Frame) String() string {
	switch f.kind {
	case NoFrame:
		return "Frame(none)"
	case PointFrame:
		return fmt.Sprintf("Point%v", f.center)
	case RectFrame, EllipseFrame:
		name := "Rect"
		if f.kind == EllipseFrame {
			name = "Ellipse"
		}
		return fmt.Sprintf("%s%v{l=%g r=%g u=%g d=%g}", name, f.center, f.l, f.r, f.u, f.d)
	default:
		panic("unreachable")
	}
}

// Translate returns the frame moved by v.
func (f Frame) Translate(v Vec2) Frame {
	f.center = f.center.Translate(v)
	return f
}

// quadrantRadii returns the ellipse radii that apply in the direction of dir.
func (f Frame) quadrantRadii(dir Vec2) (rx, ry float64) {
	rx, ry = f.r, f.u
	if dir.X < 0 {
		rx = f.l
	}
	if dir.Y < 0 {
		ry = f.d
	}
	return rx, ry
}

// normalizedTerm returns (v/radius)², which is infinite for a non-zero v
// over a zero radius.
func normalizedTerm(v, radius float64) float64 {
	if v == 0 {
		return 0
	}
	if radius == 0 {
		return math.Inf(1)
	}
	q := v / radius
	return q * q
}

// ellipseNorm returns the value of the ellipse's quadratic form at p. Points
// on the outline have norm 1.
func (f Frame) ellipseNorm(p Point) float64 {
	d := p.Sub(f.center)
	rx, ry := f.quadrantRadii(d)
	return normalizedTerm(d.X, rx) + normalizedTerm(d.Y, ry)
}

// EdgePoint returns the point where the ray from the frame's center toward
// target meets the frame's outline. Point frames, and targets that coincide
// with the center, yield the center.
func (f Frame) EdgePoint(target Point) Point {
	c := f.center
	dir := target.Sub(c)
	if dir.X == 0 && dir.Y == 0 {
		return c
	}
	switch f.kind {
	case NoFrame, PointFrame:
		return c
	case RectFrame:
		k := math.Inf(1)
		if dir.X > 0 {
			k = min(k, f.r/dir.X)
		} else if dir.X < 0 {
			k = min(k, f.l/-dir.X)
		}
		if dir.Y > 0 {
			k = min(k, f.u/dir.Y)
		} else if dir.Y < 0 {
			k = min(k, f.d/-dir.Y)
		}
		return c.Translate(dir.Mul(k))
	case EllipseFrame:
		rx, ry := f.quadrantRadii(dir)
		s := normalizedTerm(dir.X, rx) + normalizedTerm(dir.Y, ry)
		return c.Translate(dir.Mul(1 / math.Sqrt(s)))
	default:
		panic("unreachable")
	}
}

// ProportionalEdgePoint returns a point on the frame's outline chosen by the
// angle of target as seen from the center, rather than by ray intersection.
// For rectangles, each side covers a quarter turn centered on its axis
// direction, and the angle is mapped linearly along that side. Ellipses use
// [Frame.EdgePoint].
func (f Frame) ProportionalEdgePoint(target Point) Point {
	c := f.center
	dir := target.Sub(c)
	if dir.X == 0 && dir.Y == 0 {
		return c
	}
	switch f.kind {
	case NoFrame, PointFrame:
		return c
	case EllipseFrame:
		return f.EdgePoint(target)
	case RectFrame:
		lo, hi := f.Bounds()
		angle := dir.Angle()
		const q = math.Pi / 4
		switch {
		case angle >= -q && angle < q:
			// right side, bottom to top
			s := (angle + q) / (2 * q)
			return Pt(hi.X, lerp(lo.Y, hi.Y, s))
		case angle >= q && angle < 3*q:
			// top side, right to left
			s := (angle - q) / (2 * q)
			return Pt(lerp(hi.X, lo.X, s), hi.Y)
		case angle >= -3*q && angle < -q:
			// bottom side, left to right
			s := (angle + 3*q) / (2 * q)
			return Pt(lerp(lo.X, hi.X, s), lo.Y)
		default:
			// left side, top to bottom
			if angle < 0 {
				angle += 2 * math.Pi
			}
			s := (angle - 3*q) / (2 * q)
			return Pt(lo.X, lerp(hi.Y, lo.Y, s))
		}
	default:
		panic("unreachable")
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// splitProportionally distributes total over two offsets in the ratio a:b,
// or evenly if both are zero.
func splitProportionally(a, b, total float64) (float64, float64) {
	if a+b == 0 {
		return total / 2, total / 2
	}
	return a * total / (a + b), b * total / (a + b)
}

// ToSize returns the frame resized to width w and height h, keeping its
// center. The new extents are distributed over the offsets in proportion to
// the existing ones. Negative sizes are clamped to zero. A point frame grows
// into a rectangle.
func (f Frame) ToSize(w, h float64) Frame {
	w, h = max(w, 0), max(h, 0)
	l, r := splitProportionally(f.l, f.r, w)
	u, d := splitProportionally(f.u, f.d, h)
	switch f.kind {
	case NoFrame:
		return f
	case PointFrame:
		if w == 0 && h == 0 {
			return f
		}
		return NewRectFrame(f.center, l, r, u, d)
	case RectFrame:
		return NewRectFrame(f.center, l, r, u, d)
	case EllipseFrame:
		return NewEllipseFrame(f.center, l, r, u, d)
	default:
		panic("unreachable")
	}
}

// Grow returns the frame enlarged by dx on the left and right and by dy on
// the top and bottom. Negative values shrink the frame.
func (f Frame) Grow(dx, dy float64) Frame {
	return f.ToSize(f.Width()+2*dx, f.Height()+2*dy)
}

// GrowTo returns the frame enlarged to at least w×h.
func (f Frame) GrowTo(w, h float64) Frame {
	return f.ToSize(max(w, f.Width()), max(h, f.Height()))
}

// ShrinkTo returns the frame reduced to at most w×h.
func (f Frame) ShrinkTo(w, h float64) Frame {
	return f.ToSize(min(w, f.Width()), min(h, f.Height()))
}

// Combine returns the smallest rectangular frame, centered on f's center,
// that covers both f and o. If either frame is absent, the other one is
// returned unchanged.
func (f Frame) Combine(o Frame) Frame {
	if f.IsAbsent() {
		return o
	}
	if o.IsAbsent() {
		return f
	}
	loA, hiA := f.Bounds()
	loB, hiB := o.Bounds()
	c := f.center
	return NewRectFrame(c,
		c.X-min(loA.X, loB.X),
		max(hiA.X, hiB.X)-c.X,
		max(hiA.Y, hiB.Y)-c.Y,
		c.Y-min(loA.Y, loB.Y),
	)
}

// Rotate returns the frame that bounds f rotated by angle radians about its
// center. Points and ellipses are returned unchanged.
func (f Frame) Rotate(angle float64) Frame {
	switch f.kind {
	case NoFrame, PointFrame, EllipseFrame:
		return f
	case RectFrame:
		corners := [4]Vec2{
			{-f.l, -f.d},
			{f.r, -f.d},
			{f.r, f.u},
			{-f.l, f.u},
		}
		var lo, hi Vec2
		for i, v := range corners {
			v = v.Rotate(angle)
			if i == 0 {
				lo, hi = v, v
				continue
			}
			lo = Vec(min(lo.X, v.X), min(lo.Y, v.Y))
			hi = Vec(max(hi.X, v.X), max(hi.Y, v.Y))
		}
		return NewRectFrame(f.center, -lo.X, hi.X, hi.Y, -lo.Y)
	default:
		panic("unreachable")
	}
}

// Contains reports whether pt lies inside or on the frame's outline.
//
// Point frames contain nothing, not even their own center.
func (f Frame) Contains(pt Point) bool {
	switch f.kind {
	case NoFrame, PointFrame:
		return false
	case RectFrame:
		lo, hi := f.Bounds()
		return pt.X >= lo.X && pt.X <= hi.X && pt.Y >= lo.Y && pt.Y <= hi.Y
	case EllipseFrame:
		return f.ellipseNorm(pt) <= 1
	default:
		panic("unreachable")
	}
}

// frameEdge is one side of a rectangular frame: the line where coordinate
// axis (0 for x, 1 for y) equals value, limited to [lo, hi] in the other
// coordinate.
type frameEdge struct {
	axis   int
	value  float64
	lo, hi float64
}

func (f Frame) rectEdges() [4]frameEdge {
	lo, hi := f.Bounds()
	return [4]frameEdge{
		{axis: 0, value: lo.X, lo: lo.Y, hi: hi.Y},
		{axis: 0, value: hi.X, lo: lo.Y, hi: hi.Y},
		{axis: 1, value: lo.Y, lo: lo.X, hi: hi.X},
		{axis: 1, value: hi.Y, lo: lo.X, hi: hi.X},
	}
}

// contains reports whether pt, which is assumed to lie on the edge's line,
// lies within the edge.
func (e frameEdge) contains(pt Point) bool {
	const epsilon = 1e-9
	v := pt.Y
	if e.axis == 1 {
		v = pt.X
	}
	return v >= e.lo-epsilon && v <= e.hi+epsilon
}

// ellipseQuadrant is one quarter of an elliptical frame. toUnit maps the
// quarter ellipse onto the unit circle, where it spans [angle0, angle0+π/2].
// toUnit only matches the outline within the quadrant, which lies on the
// sides of the center given by the signs of sign.
type ellipseQuadrant struct {
	toUnit Affine
	angle0 float64
	sign   Vec2
	// slack is how far past its seams a point may lie and still count as
	// within the quadrant.
	slack float64
}

// contains reports whether the offset v from the frame's center lies within
// the quadrant.
func (q ellipseQuadrant) contains(v Vec2) bool {
	return v.X*q.sign.X >= -q.slack && v.Y*q.sign.Y >= -q.slack
}

func (f Frame) ellipseQuadrants() []ellipseQuadrant {
	quadrants := [4]struct {
		rx, ry float64
		sign   Vec2
	}{
		{f.r, f.u, Vec2{1, 1}},
		{f.l, f.u, Vec2{-1, 1}},
		{f.l, f.d, Vec2{-1, -1}},
		{f.r, f.d, Vec2{1, -1}},
	}
	slack := 1e-9 * max(1, f.Width(), f.Height())
	out := make([]ellipseQuadrant, 0, 4)
	toOrigin := Translate(Vec2(f.center).Negate())
	for i, q := range quadrants {
		if q.rx == 0 || q.ry == 0 {
			continue
		}
		out = append(out, ellipseQuadrant{
			toUnit: Scale(1/q.rx, 1/q.ry).Mul(toOrigin),
			angle0: float64(i) * math.Pi / 2,
			sign:   q.sign,
			slack:  slack,
		})
	}
	return out
}

// onOutline reports whether pt lies on the frame's outline, within a
// relative tolerance.
func (f Frame) onOutline(pt Point) bool {
	switch f.kind {
	case NoFrame, PointFrame:
		return false
	case RectFrame:
		lo, hi := f.Bounds()
		epsilon := 1e-6 * max(1, f.Width(), f.Height())
		inX := pt.X >= lo.X-epsilon && pt.X <= hi.X+epsilon
		inY := pt.Y >= lo.Y-epsilon && pt.Y <= hi.Y+epsilon
		onX := math.Abs(pt.X-lo.X) <= epsilon || math.Abs(pt.X-hi.X) <= epsilon
		onY := math.Abs(pt.Y-lo.Y) <= epsilon || math.Abs(pt.Y-hi.Y) <= epsilon
		return inX && inY && (onX || onY)
	case EllipseFrame:
		return math.Abs(math.Sqrt(f.ellipseNorm(pt))-1) <= 1e-3
	default:
		panic("unreachable")
	}
}
