package xyedge

import (
	"iter"
	"math"
)

// quarterArm is the length of the control arms, relative to the radius, of a
// cubic Bézier approximating a quarter circle.
var quarterArm = 4.0 / 3.0 * math.Tan(math.Pi/8)

// PathElements returns the frame's outline as a closed path, traced
// counterclockwise. Rectangles start at their lower right corner and ellipses
// at their rightmost point. Point frames have no outline.
func (f Frame) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		switch f.kind {
		case NoFrame, PointFrame:
		case RectFrame:
			lo, hi := f.Bounds()
			_ = yield(MoveTo(Pt(hi.X, lo.Y))) &&
				yield(LineTo(hi)) &&
				yield(LineTo(Pt(lo.X, hi.Y))) &&
				yield(LineTo(lo)) &&
				yield(ClosePath())
		case EllipseFrame:
			radii := [4]Vec2{{f.r, f.u}, {f.l, f.u}, {f.l, f.d}, {f.r, f.d}}
			if !yield(MoveTo(f.center.Translate(Vec(f.r, 0)))) {
				return
			}
			for i, rad := range radii {
				a0 := float64(i) * math.Pi / 2
				a1 := a0 + math.Pi/2
				p0 := sampleEllipse(rad, a0)
				p3 := sampleEllipse(rad, a1)
				p1 := p0.Add(sampleEllipse(rad, a0+math.Pi/2).Mul(quarterArm))
				p2 := p3.Sub(sampleEllipse(rad, a1+math.Pi/2).Mul(quarterArm))
				if !yield(CubicTo(
					f.center.Translate(p1),
					f.center.Translate(p2),
					f.center.Translate(p3),
				)) {
					return
				}
			}
			yield(ClosePath())
		default:
			panic("unreachable")
		}
	}
}

// sampleEllipse returns the point at angle on the axis-aligned ellipse with
// the given radii, relative to its center.
func sampleEllipse(radii Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{radii.X * cos, radii.Y * sin}
}
