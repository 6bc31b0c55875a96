package xyedge

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"
)

func testCurves(t *testing.T) []Curve {
	t.Helper()
	pw, err := NewPiecewiseCubicBez(
		NewCubicBez(Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0)),
		NewCubicBez(Pt(3, 0), Pt(4, -1), Pt(5, -1), Pt(6, 0)),
	)
	if err != nil {
		t.Fatal(err)
	}
	bs, err := NewCubicBSpline(Pt(0, 0), []Point{Pt(2, 4), Pt(6, -2), Pt(8, 3)}, Pt(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	return []Curve{
		NewLine(Pt(0, 0), Pt(3, 4)),
		NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0)),
		NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)),
		pw,
		bs,
		// Struct literals work without a cached arc length table.
		QuadBez{P0: Pt(1, 1), P1: Pt(2, 5), P2: Pt(4, 1)},
	}
}

func curveName(c Curve) string {
	return fmt.Sprintf("%T", c)
}

func TestCurveEndpoints(t *testing.T) {
	for _, c := range testCurves(t) {
		checkPoint(t, curveName(c)+" start", c.Position(0), c.Start(), 1e-12)
		checkPoint(t, curveName(c)+" end", c.Position(1), c.End(), 1e-12)
	}
}

func TestCurveSubdivide(t *testing.T) {
	for _, c := range testCurves(t) {
		for _, tt := range []float64{0, 0.1, 0.37, 0.5, 0.9, 1} {
			c0, c1, err := c.Subdivide(tt)
			if err != nil {
				t.Fatalf("%s: %s", curveName(c), err)
			}
			want := c.Position(tt)
			checkPoint(t, fmt.Sprintf("%s left(%g)", curveName(c), tt), c0.Position(1), want, 1e-9)
			checkPoint(t, fmt.Sprintf("%s right(%g)", curveName(c), tt), c1.Position(0), want, 1e-9)
			checkPoint(t, fmt.Sprintf("%s start(%g)", curveName(c), tt), c0.Start(), c.Start(), 1e-9)
			checkPoint(t, fmt.Sprintf("%s end(%g)", curveName(c), tt), c1.End(), c.End(), 1e-9)
		}
	}
}

func TestCurveSubdivideDomain(t *testing.T) {
	for _, c := range testCurves(t) {
		for _, tt := range []float64{-0.1, 1.5, math.NaN()} {
			_, _, err := c.Subdivide(tt)
			var derr *DomainError
			if !errors.As(err, &derr) {
				t.Errorf("%s: Subdivide(%g) returned %v, want a *DomainError", curveName(c), tt, err)
				continue
			}
			if derr.Op != "subdivide" || derr.Curve == "" {
				t.Errorf("%s: unexpected error %v", curveName(c), derr)
			}
		}
	}
}

func TestCurveSlice(t *testing.T) {
	for _, c := range testCurves(t) {
		s, ok := c.Slice(0.2, 0.6)
		if !ok {
			t.Fatalf("%s: empty slice", curveName(c))
		}
		checkPoint(t, curveName(c)+" slice start", s.Start(), c.Position(0.2), 1e-9)
		checkPoint(t, curveName(c)+" slice end", s.End(), c.Position(0.6), 1e-9)

		whole, ok := c.Slice(-1, 2)
		if !ok {
			t.Fatalf("%s: empty slice", curveName(c))
		}
		checkPoint(t, curveName(c)+" clamped start", whole.Start(), c.Start(), 1e-9)
		checkPoint(t, curveName(c)+" clamped end", whole.End(), c.End(), 1e-9)

		if _, ok := c.Slice(0.6, 0.2); ok {
			t.Errorf("%s: reversed slice should be empty", curveName(c))
		}
		if _, ok := c.Slice(1.2, 1.5); ok {
			t.Errorf("%s: slice beyond the end should be empty", curveName(c))
		}
	}
}

func TestCurveArcLength(t *testing.T) {
	for _, c := range testCurves(t) {
		prev := 0.0
		for i := range 101 {
			tt := float64(i) / 100
			s := c.ArcLength(tt)
			if s < prev {
				t.Errorf("%s: arc length decreases at %g: %g < %g", curveName(c), tt, s, prev)
			}
			prev = s
		}
		checkFloat(t, curveName(c)+" length", c.Length(), c.ArcLength(1), 0)
		checkFloat(t, curveName(c)+" zero", c.ArcLength(0), 0, 0)

		for _, tt := range []float64{0.01, 0.25, 0.5, 0.77, 0.99} {
			got := c.ParameterAtLength(c.ArcLength(tt))
			checkFloat(t, fmt.Sprintf("%s round trip at %g", curveName(c), tt), got, tt, 1e-9)
		}
		checkFloat(t, curveName(c)+" negative length", c.ParameterAtLength(-1), 0, 0)
		checkFloat(t, curveName(c)+" excess length", c.ParameterAtLength(c.Length()+1), 1, 0)
	}
}

func TestCurveLengths(t *testing.T) {
	checkFloat(t, "line", NewLine(Pt(0, 0), Pt(3, 4)).Length(), 5, 1e-12)

	// Collinear control points trace a straight segment.
	checkFloat(t, "flat quad", NewQuadBez(Pt(0, 0), Pt(1, 0), Pt(2, 0)).Length(), 2, 1e-9)

	q := NewQuadBez(Pt(0, 0), Pt(0, 0.5), Pt(1, 1))
	want := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	checkFloat(t, "quad", q.Length(), want, 1e-7)

	// A quarter circle of radius 10, approximated by a cubic.
	const k = 0.5522847498
	c := NewCubicBez(Pt(10, 0), Pt(10, 10*k), Pt(10*k, 10), Pt(0, 10))
	checkFloat(t, "quarter circle", c.Length(), 5*math.Pi, 1e-2)

	// Arc length tables are cached and stable.
	checkFloat(t, "cached", c.Length(), c.Length(), 0)
}

func TestCurveTangentAngle(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(1, 1))
	checkFloat(t, "line", l.TangentAngle(0.5), math.Pi/4, 1e-12)
	q := NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0))
	checkFloat(t, "quad apex", q.TangentAngle(0.5), 0, 1e-12)
	checkFloat(t, "quad start", q.TangentAngle(0), math.Pi/4, 1e-12)
	checkFloat(t, "quad end", q.TangentAngle(1), -math.Pi/4, 1e-12)
}

func TestCurveDerivative(t *testing.T) {
	// Compare derivatives against central differences.
	const h = 1e-6
	for _, c := range testCurves(t) {
		for _, tt := range []float64{0.1, 0.3, 0.45, 0.8} {
			d := c.Position(tt + h).Sub(c.Position(tt - h)).Mul(1 / (2 * h))
			checkPoint(t, fmt.Sprintf("%s at %g", curveName(c), tt), Point(c.Derivative(tt)), Point(d), 1e-4)
		}
	}
}

func TestCurveBoundingFrame(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0))
	f := q.BoundingFrame(0)
	diff(t, RectFrame, f.Kind())
	checkPoint(t, "center", f.Center(), Pt(5, 1.25), 1e-12)
	diff(t, offsets{RectFrame, 5, 5, 1.25, 1.25}, frameOffsets(f), approx(1e-12))

	// The parallels at distance 1 reach 1/√2 past the end points, whose
	// tangents are diagonal, and 1 above the apex.
	h := (3.5 + math.Sqrt2/2) / 2
	f = q.BoundingFrame(-1)
	checkPoint(t, "shifted center", f.Center(), Pt(5, 3.5-h), 1e-12)
	diff(t, offsets{RectFrame, 5 + math.Sqrt2/2, 5 + math.Sqrt2/2, h, h}, frameOffsets(f), approx(1e-12))

	// Horizontal lines only grow vertically.
	f = NewLine(Pt(0, 0), Pt(10, 0)).BoundingFrame(1)
	lo, hi := f.Bounds()
	diff(t, []Point{{0, -1}, {10, 1}}, []Point{lo, hi}, approx(1e-12))

	for _, c := range testCurves(t) {
		const shift = 0.25
		f := c.BoundingFrame(shift)
		lo, hi := f.Bounds()
		for i := range 201 {
			tt := float64(i) / 200
			n := c.Derivative(tt).Perp().Normalize().Mul(shift)
			if math.IsNaN(n.X) {
				continue
			}
			for _, p := range []Point{c.Position(tt).Translate(n), c.Position(tt).Translate(n.Negate())} {
				if p.X < lo.X-1e-9 || p.X > hi.X+1e-9 || p.Y < lo.Y-1e-9 || p.Y > hi.Y+1e-9 {
					t.Errorf("%s: parallel point %v lies outside of %v", curveName(c), p, f)
				}
			}
		}
	}

	for _, c := range testCurves(t) {
		f := c.BoundingFrame(0)
		lo, hi := f.Bounds()
		for i := range 51 {
			p := c.Position(float64(i) / 50)
			if p.X < lo.X-1e-9 || p.X > hi.X+1e-9 || p.Y < lo.Y-1e-9 || p.Y > hi.Y+1e-9 {
				t.Errorf("%s: %v lies outside of %v", curveName(c), p, f)
			}
		}
	}
}

func TestCurveFrameCrossings(t *testing.T) {
	tests := []struct {
		name  string
		c     Curve
		f     Frame
		want  []float64
		entry float64
	}{
		{
			name:  "line through rect",
			c:     NewLine(Pt(0, 0), Pt(10, 0)),
			f:     NewRectFrame(Pt(10, 0), 1, 1, 1, 1),
			want:  []float64{0.9},
			entry: 0.9,
		},
		{
			name:  "line across rect",
			c:     NewLine(Pt(0, 0), Pt(10, 0)),
			f:     NewRectFrame(Pt(5, 0), 1, 1, 1, 1),
			want:  []float64{0.4, 0.6},
			entry: 0.4,
		},
		{
			name:  "line into circle",
			c:     NewLine(Pt(0, 0), Pt(10, 0)),
			f:     NewCircleFrame(Pt(10, 0), 2),
			want:  []float64{0.8},
			entry: 0.8,
		},
		{
			name:  "vertical line into ellipse",
			c:     NewLine(Pt(0, 0), Pt(0, 10)),
			f:     NewEllipseFrame(Pt(0, 10), 1, 1, 4, 2),
			want:  []float64{0.8},
			entry: 0.8,
		},
		{
			name:  "quad into circle",
			c:     NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0)),
			f:     NewCircleFrame(Pt(10, 0), 2),
			want:  []float64{0.8474178893465668},
			entry: 0.8474178893465668,
		},
		{
			name:  "cubic into rect",
			c:     NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)),
			f:     NewRectFrame(Pt(10, 0), 1, 1, 1, 1),
			want:  []float64{(1 + math.Sqrt(26.0/30)) / 2},
			entry: (1 + math.Sqrt(26.0/30)) / 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, tt.c.Crossings(tt.f), approx(1e-6))
			entry, ok := tt.c.ParameterAtFrameEntry(tt.f)
			if !ok {
				t.Fatal("no entry")
			}
			checkFloat(t, "entry", entry, tt.entry, 1e-6)
			exit, ok := tt.c.ParameterAtFrameExit(tt.f)
			if !ok {
				t.Fatal("no exit")
			}
			checkFloat(t, "exit", exit, tt.want[len(tt.want)-1], 1e-6)
		})
	}
}

func TestCurveEllipseSeamCrossings(t *testing.T) {
	// The last crossing lies just left of the bottom seam of an ellipse
	// whose left and right radii differ.
	c := NewCubicBez(Pt(5.86, 1.08), Pt(5.57, 0.84), Pt(-7.09, 5.82), Pt(1.33, -8.26))
	f := NewEllipseFrame(Pt(0, 0), 1.47, 3.67, 5.61, 5.80)

	const n = 20000
	var want []float64
	prev := f.ellipseNorm(c.Position(0)) > 1
	for i := 1; i <= n; i++ {
		outside := f.ellipseNorm(c.Position(float64(i)/n)) > 1
		if outside != prev {
			want = append(want, float64(i)/n)
		}
		prev = outside
	}
	if len(want) != 4 {
		t.Fatalf("sampling found %d crossings, want 4", len(want))
	}

	got := c.Crossings(f)
	diff(t, want, got, approx(1.0/n))
	for _, tt := range got {
		checkFloat(t, fmt.Sprintf("norm at %g", tt), f.ellipseNorm(c.Position(tt)), 1, 1e-6)
	}
	exit, ok := c.ParameterAtFrameExit(f)
	if !ok {
		t.Fatal("no exit")
	}
	checkFloat(t, "exit", exit, want[3], 1.0/n)
}

func TestCurveFrameMiss(t *testing.T) {
	c := NewQuadBez(Pt(0, 0), Pt(5, 5), Pt(10, 0))
	for _, f := range []Frame{
		NewRectFrame(Pt(50, 50), 1, 1, 1, 1),
		NewCircleFrame(Pt(-20, 0), 3),
		// Entirely inside the frame, so the curve never crosses the outline.
		NewRectFrame(Pt(5, 0), 100, 100, 100, 100),
	} {
		if ts := c.Crossings(f); len(ts) != 0 {
			t.Errorf("%v: unexpected crossings %v", f, ts)
		}
		if _, ok := c.ParameterAtFrameEntry(f); ok {
			t.Errorf("%v: unexpected entry", f)
		}
		if _, ok := c.ParameterAtFrameExit(f); ok {
			t.Errorf("%v: unexpected exit", f)
		}
	}
}

func TestCurvePointFrame(t *testing.T) {
	for _, c := range testCurves(t) {
		f := NewPointFrame(c.Start())
		if ts := c.Crossings(f); len(ts) != 0 {
			t.Errorf("%s: crossings with a point frame: %v", curveName(c), ts)
		}
		if entry, ok := c.ParameterAtFrameEntry(f); !ok || entry != 0 {
			t.Errorf("%s: got entry %g, %t", curveName(c), entry, ok)
		}
		if exit, ok := c.ParameterAtFrameExit(f); !ok || exit != 1 {
			t.Errorf("%s: got exit %g, %t", curveName(c), exit, ok)
		}
	}
}

func TestShave(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(10, 0))
	start := NewRectFrame(Pt(0, 0), 1, 1, 1, 1)
	end := NewCircleFrame(Pt(10, 0), 2)

	s, ok := Shave(l, start, end)
	if !ok {
		t.Fatal("shaving failed")
	}
	checkPoint(t, "start", s.Start(), Pt(1, 0), 1e-9)
	checkPoint(t, "end", s.End(), Pt(8, 0), 1e-9)

	// Point frames leave the ends alone.
	s, ok = Shave(l, NewPointFrame(Pt(0, 0)), end)
	if !ok {
		t.Fatal("shaving failed")
	}
	checkPoint(t, "point start", s.Start(), Pt(0, 0), 1e-9)
	checkPoint(t, "point end", s.End(), Pt(8, 0), 1e-9)

	s, ok = Shave(l, Frame{}, Frame{})
	if !ok {
		t.Fatal("shaving failed")
	}
	checkPoint(t, "absent start", s.Start(), Pt(0, 0), 1e-9)
	checkPoint(t, "absent end", s.End(), Pt(10, 0), 1e-9)

	// Frames that overlap leave nothing to draw.
	if _, ok := Shave(l, NewRectFrame(Pt(0, 0), 7, 7, 1, 1), NewRectFrame(Pt(10, 0), 7, 7, 1, 1)); ok {
		t.Error("expected overlapping frames to leave no visible curve")
	}
	// A frame the curve never crosses cannot be shaved against.
	if _, ok := Shave(l, NewRectFrame(Pt(0, 50), 1, 1, 1, 1), end); ok {
		t.Error("expected shaving against a missed frame to fail")
	}
}

func TestPathElements(t *testing.T) {
	for _, c := range testCurves(t) {
		els := slices.Collect(c.PathElements())
		if len(els) < 2 || els[0].Kind != MoveToKind {
			t.Fatalf("%s: bad path %v", curveName(c), els)
		}
		checkPoint(t, curveName(c)+" path start", els[0].P0, c.Start(), 1e-9)
		last := els[len(els)-1]
		var end Point
		switch last.Kind {
		case LineToKind:
			end = last.P0
		case QuadToKind:
			end = last.P1
		case CubicToKind:
			end = last.P2
		}
		checkPoint(t, curveName(c)+" path end", end, c.End(), 1e-9)
	}
}
