package xyedge

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floating point values, including those in points and
// intervals, with an absolute tolerance.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

func checkPoint(t *testing.T, name string, got, want Point, epsilon float64) {
	t.Helper()
	if !got.ApproxEqual(want, epsilon) {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func checkFloat(t *testing.T, name string, got, want, epsilon float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}
