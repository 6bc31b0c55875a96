package xyedge

import (
	"testing"
)

func TestCubicBezSubsegment(t *testing.T) {
	c := NewCubicBez(
		Pt(3.1, 4.1),
		Pt(5.9, 2.6),
		Pt(5.3, 5.8),
		Pt(1.2, 0.3),
	)
	t0 := 0.1
	t1 := 0.8
	cs := c.Subsegment(t0, t1)
	epsilon := 1e-12
	n := 10
	for i := range n + 1 {
		tt := float64(i) / float64(n)
		ts := t0 + tt*(t1-t0)
		assertNear(t, c.Position(ts), cs.Position(tt), epsilon)
	}
}

func TestCubicBezSplitAt(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	a, b := c.SplitAt(0.25)
	for i := range 11 {
		tt := float64(i) / 10
		assertNear(t, a.Position(tt), c.Position(0.25*tt), 1e-12)
		assertNear(t, b.Position(tt), c.Position(0.25+0.75*tt), 1e-12)
	}
}

func TestCubicBezDifferentiate(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	d := c.Differentiate()
	diff(t, Pt(0, 30), d.P0)
	diff(t, Pt(30, 0), d.P1)
	diff(t, Pt(0, -30), d.P2)
	diff(t, Vec(15, 0), c.Derivative(0.5))
}
