package xyedge

import (
	"testing"
)

func TestNewInterval(t *testing.T) {
	diff(t, Interval{1, 3}, NewInterval(3, 1))
	diff(t, Interval{1, 3}, NewInterval(1, 3))
}

func TestIntervalDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want []Interval
	}{
		{"disjoint", Interval{0, 1}, Interval{2, 3}, []Interval{{0, 1}}},
		{"inside", Interval{0, 1}, Interval{0.25, 0.5}, []Interval{{0, 0.25}, {0.5, 1}}},
		{"covering", Interval{0.25, 0.5}, Interval{0, 1}, nil},
		{"equal", Interval{0, 1}, Interval{0, 1}, nil},
		{"left", Interval{0, 1}, Interval{-1, 0.5}, []Interval{{0.5, 1}}},
		{"right", Interval{0, 1}, Interval{0.5, 2}, []Interval{{0, 0.5}}},
		{"touching start", Interval{0, 1}, Interval{0, 0.5}, []Interval{{0.5, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, tt.a.Difference(tt.b))
		})
	}
}

func TestIntervalDifferenceAll(t *testing.T) {
	unit := Interval{0, 1}
	diff(t, []Interval{{0, 1}}, unit.DifferenceAll(nil))
	diff(t, []Interval{}, unit.DifferenceAll([]Interval{{0, 1}}))

	holes := []Interval{{0.1, 0.2}, {0.5, 0.6}, {0.15, 0.3}, {0.9, 1.5}}
	want := []Interval{{0, 0.1}, {0.3, 0.5}, {0.6, 0.9}}
	diff(t, want, unit.DifferenceAll(holes))

	// The result doesn't depend on the order of the holes.
	reversed := []Interval{holes[3], holes[2], holes[1], holes[0]}
	diff(t, want, unit.DifferenceAll(reversed))
}

func TestIntervalQueries(t *testing.T) {
	iv := Interval{2, 6}
	diff(t, 4.0, iv.Width())
	diff(t, 4.0, iv.Midpoint())
	diff(t, 3.0, iv.Lerp(0.25))
	if !iv.Contains(2) || !iv.Contains(6) || iv.Contains(6.5) {
		t.Errorf("Contains is wrong for %v", iv)
	}
	if !iv.Overlaps(Interval{6, 7}) || iv.Overlaps(Interval{7, 8}) {
		t.Errorf("Overlaps is wrong for %v", iv)
	}
	diff(t, "[2, 6]", iv.String())
}
