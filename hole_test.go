package xyedge

import (
	"testing"
)

func TestSliceHole(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(10, 0))
	s := NewCurveShape(l).SliceHole(NewRectFrame(Pt(5, 0), 1, 1, 1, 1), 0.5)
	diff(t, []Interval{{0.4, 0.6}}, s.Holes().Slice(), approx(1e-12))
	diff(t, []Interval{{0, 0.4}, {0.6, 1}}, s.VisibleIntervals(), approx(1e-12))

	curves := s.VisibleCurves()
	if len(curves) != 2 {
		t.Fatalf("got %d visible curves, want 2", len(curves))
	}
	checkPoint(t, "first end", curves[0].End(), Pt(4, 0), 1e-12)
	checkPoint(t, "second start", curves[1].Start(), Pt(6, 0), 1e-12)
}

func TestSliceHolePointFrame(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(10, 0))
	s := NewCurveShape(l).SliceHole(NewPointFrame(Pt(5, 0)), 0.5)
	diff(t, 0, s.Holes().Len())
	diff(t, []Interval{{0, 1}}, s.VisibleIntervals())
}

func TestSliceHoleOutside(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(10, 0))
	f := NewRectFrame(Pt(5, 0), 1, 1, 1, 1)
	// The placement parameter lies on a piece outside of the frame.
	s := NewCurveShape(l).SliceHole(f, 0.2)
	diff(t, 0, s.Holes().Len())
	// A frame the curve doesn't reach.
	s = NewCurveShape(l).SliceHole(NewRectFrame(Pt(5, 5), 1, 1, 1, 1), 0.5)
	diff(t, 0, s.Holes().Len())
}

func TestSliceHoleAtEnd(t *testing.T) {
	// A frame around the end of the curve, with a single crossing.
	l := NewLine(Pt(0, 0), Pt(10, 0))
	s := NewCurveShape(l).SliceHole(NewCircleFrame(Pt(10, 0), 2), 0.9)
	diff(t, []Interval{{0, 0.8}}, s.VisibleIntervals(), approx(1e-9))
}

func TestSliceHoles(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0))
	first := NewCurveShape(q)
	s := first.
		SliceHole(NewRectFrame(q.Position(0.25), 0.5, 0.5, 0.5, 0.5), 0.25).
		SliceHole(NewCircleFrame(q.Position(0.75), 0.5), 0.75)
	if n := s.Holes().Len(); n != 2 {
		t.Fatalf("got %d holes, want 2", n)
	}
	vis := s.VisibleIntervals()
	if len(vis) != 3 {
		t.Fatalf("got %d visible intervals %v, want 3", len(vis), vis)
	}
	if vis[0].Low != 0 || vis[2].High != 1 {
		t.Errorf("unexpected visible intervals %v", vis)
	}
	for _, iv := range vis[1:2] {
		if !(iv.Low > 0.25 && iv.High < 0.75) {
			t.Errorf("middle interval %v should lie between the holes", iv)
		}
	}

	// Shapes are immutable.
	diff(t, 0, first.Holes().Len())
}
