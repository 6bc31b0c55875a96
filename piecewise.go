package xyedge

import (
	"iter"
	"slices"
)

// PiecewiseCubicBez is a sequence of cubic Béziers, usually joined end to
// end. With n segments, segment i covers the parameter range [i/n, (i+1)/n].
type PiecewiseCubicBez struct {
	segs   []CubicBez
	arclen *arcLengthCache
}

var _ Curve = PiecewiseCubicBez{}

// NewPiecewiseCubicBez returns the curve made of segs. It fails with
// ErrNoSegments if segs is empty.
func NewPiecewiseCubicBez(segs ...CubicBez) (PiecewiseCubicBez, error) {
	if len(segs) == 0 {
		return PiecewiseCubicBez{}, ErrNoSegments
	}
	return newPiecewise(slices.Clone(segs)), nil
}

func newPiecewise(segs []CubicBez) PiecewiseCubicBez {
	return PiecewiseCubicBez{segs: segs, arclen: newArcLengthCache()}
}

// Segments returns a copy of the curve's segments.
func (p PiecewiseCubicBez) Segments() []CubicBez {
	return slices.Clone(p.segs)
}

// locate maps the global parameter t to a segment and a parameter within it.
// Parameters on a boundary between two segments belong to the later one.
func (p PiecewiseCubicBez) locate(t float64) (int, float64) {
	n := len(p.segs)
	x := min(max(t, 0), 1) * float64(n)
	i := min(int(x), n-1)
	return i, x - float64(i)
}

// locateEnd is like locate, but boundary parameters belong to the earlier
// segment.
func (p PiecewiseCubicBez) locateEnd(t float64) (int, float64) {
	i, local := p.locate(t)
	if local == 0 && i > 0 {
		return i - 1, 1
	}
	return i, local
}

func (p PiecewiseCubicBez) Start() Point { return p.segs[0].P0 }
func (p PiecewiseCubicBez) End() Point   { return p.segs[len(p.segs)-1].P3 }

func (p PiecewiseCubicBez) Position(t float64) Point {
	i, local := p.locate(t)
	return p.segs[i].Position(local)
}

func (p PiecewiseCubicBez) Derivative(t float64) Vec2 {
	i, local := p.locate(t)
	return p.segs[i].Derivative(local).Mul(float64(len(p.segs)))
}

func (p PiecewiseCubicBez) TangentAngle(t float64) float64 {
	return tangentAngle(p, t)
}

func (p PiecewiseCubicBez) lengths() []float64 {
	return p.arclen.get(p.Derivative)
}

func (p PiecewiseCubicBez) ArcLength(t float64) float64 {
	return arcLengthAt(p.lengths(), t)
}

func (p PiecewiseCubicBez) Length() float64 {
	return p.ArcLength(1)
}

func (p PiecewiseCubicBez) ParameterAtLength(s float64) float64 {
	return parameterAtLength(p.lengths(), s)
}

func (p PiecewiseCubicBez) Crossings(f Frame) []float64 {
	n := float64(len(p.segs))
	var out []float64
	for i, seg := range p.segs {
		for _, t := range seg.Crossings(f) {
			out = append(out, (float64(i)+t)/n)
		}
	}
	// Crossings on a seam show up in both neighboring segments.
	return dedupeSorted(out, 1e-6)
}

func (p PiecewiseCubicBez) ParameterAtFrameEntry(f Frame) (float64, bool) { return frameEntry(p, f) }
func (p PiecewiseCubicBez) ParameterAtFrameExit(f Frame) (float64, bool)  { return frameExit(p, f) }

func (p PiecewiseCubicBez) Subdivide(t float64) (Curve, Curve, error) {
	if err := checkParameter("piecewise cubic Bézier", "subdivide", t); err != nil {
		return nil, nil, err
	}
	i, local := p.locate(t)
	if local == 0 && i > 0 {
		return newPiecewise(slices.Clone(p.segs[:i])), newPiecewise(slices.Clone(p.segs[i:])), nil
	}
	a, b := p.segs[i].SplitAt(local)
	before := append(slices.Clone(p.segs[:i]), a)
	after := append([]CubicBez{b}, p.segs[i+1:]...)
	return newPiecewise(before), newPiecewise(after), nil
}

// Slice returns the part of the curve over [t0, t1]. The result's segments
// again share the parameter domain equally, so its parametrization differs
// from that of the original range.
func (p PiecewiseCubicBez) Slice(t0, t1 float64) (Curve, bool) {
	t0, t1, ok := clampRange(t0, t1)
	if !ok {
		return nil, false
	}
	i0, l0 := p.locate(t0)
	i1, l1 := p.locateEnd(t1)
	if i0 == i1 {
		return newPiecewise([]CubicBez{p.segs[i0].Subsegment(l0, l1)}), true
	}
	segs := make([]CubicBez, 0, i1-i0+1)
	segs = append(segs, p.segs[i0].Subsegment(l0, 1))
	segs = append(segs, p.segs[i0+1:i1]...)
	segs = append(segs, p.segs[i1].Subsegment(0, l1))
	return newPiecewise(segs), true
}

func (p PiecewiseCubicBez) BoundingFrame(shift float64) Frame {
	lo, hi := offsetBounds(p.segs[0].points(), shift)
	for _, seg := range p.segs[1:] {
		l, h := offsetBounds(seg.points(), shift)
		lo = Pt(min(lo.X, l.X), min(lo.Y, l.Y))
		hi = Pt(max(hi.X, h.X), max(hi.Y, h.Y))
	}
	return boundsFrame(lo, hi)
}

func (p PiecewiseCubicBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo(p.Start())) {
			return
		}
		for _, seg := range p.segs {
			if !yield(CubicTo(seg.P1, seg.P2, seg.P3)) {
				return
			}
		}
	}
}

func (p PiecewiseCubicBez) clipPieces() []clipPiece {
	n := float64(len(p.segs))
	out := make([]clipPiece, len(p.segs))
	for i, seg := range p.segs {
		out[i] = clipPiece{
			seg:    CubicSegment(seg),
			domain: Interval{float64(i) / n, float64(i+1) / n},
		}
	}
	return out
}
