package xyedge

import (
	"math"
	"testing"
)

const halfPi = math.Pi / 2

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(halfPi)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(RotateAbout(math.Pi, Pt(3, 0))), Pt(3, -4), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	p := Pt(7, -3)
	assertNear(t, p.Transform(a).Transform(a.Invert()), p, epsilon)
	assertNear(t, p.Transform(a.Invert().Mul(a)), p, epsilon)
}

func TestEllipseToUnitCircle(t *testing.T) {
	// The quadrant transform of a frame maps its outline onto the unit circle.
	f := NewEllipseFrame(Pt(2, 3), 4, 6, 1, 2)
	for _, q := range f.ellipseQuadrants() {
		mid := q.angle0 + halfPi/2
		unit := Point(VecFromAngle(mid))
		on := unit.Transform(q.toUnit.Invert())
		if !f.onOutline(on) {
			t.Errorf("quadrant %v: %v is not on the outline", q.angle0, on)
		}
	}
}
