package xyedge

import (
	"fmt"
	"math"
	"slices"
)

const (
	// ClipAccuracy is the parameter width below which a pair of segments is
	// reported as an intersection.
	ClipAccuracy = 1e-4
	// MaxClipIterations bounds the work of a single call to
	// [IntersectSegments]. Once it is exhausted, the intersections found so
	// far are returned.
	MaxClipIterations = 30

	// clipRetention is the fraction of its parameter width that a clipped
	// segment may retain for the clip to count as progress.
	clipRetention = 0.8
)

// SegmentIntersection is an intersection of two segments, localized to a
// parameter range of each. A is the range of the first segment passed to
// [IntersectSegments], B that of the second.
type SegmentIntersection struct {
	A Interval
	B Interval
}

func (si SegmentIntersection) String() string {
	return fmt.Sprintf("%v×%v", si.A, si.B)
}

// clipTask is a pending pair of segments. first supplies the fat line that
// second gets clipped against. swapped records that first is a piece of the
// second segment passed to IntersectSegments.
type clipTask struct {
	first   Segment
	second  Segment
	swapped bool
}

// IntersectSegments finds the intersections of a and b with Bézier clipping.
//
// Pending pairs are processed breadth first. For each pair, the second
// segment is clipped against the fat line of the first. A clip that keeps at
// most 80% of the segment's parameter width counts as progress, and the two
// segments trade roles for the next round. Otherwise, the wider segment is
// split in half and both halves are queued. A pair is reported once both of
// its ranges are narrower than [ClipAccuracy].
//
// The search is best effort: it stops after [MaxClipIterations] pairs have
// been processed. Intersections are returned ordered by their range on a.
func IntersectSegments(a, b Segment) []SegmentIntersection {
	queue := []clipTask{{first: a, second: b}}
	var out []SegmentIntersection
	for pops := 0; len(queue) > 0 && pops < MaxClipIterations; pops++ {
		task := queue[0]
		queue = queue[1:]

		before := task.second.Range().Width()
		clipped, ok := task.second.clip(task.first.fatLine())
		if !ok {
			continue
		}
		after := clipped.Range().Width()
		if after < ClipAccuracy && task.first.Range().Width() < ClipAccuracy {
			hit := SegmentIntersection{A: task.first.Range(), B: clipped.Range()}
			if task.swapped {
				hit.A, hit.B = hit.B, hit.A
			}
			out = append(out, hit)
			continue
		}

		if after <= clipRetention*before {
			queue = append(queue, clipTask{first: clipped, second: task.first, swapped: !task.swapped})
			continue
		}
		if task.first.Range().Width() >= after {
			f0, f1 := task.first.split()
			queue = append(queue,
				clipTask{first: f0, second: clipped, swapped: task.swapped},
				clipTask{first: f1, second: clipped, swapped: task.swapped})
		} else {
			s0, s1 := clipped.split()
			queue = append(queue,
				clipTask{first: task.first, second: s0, swapped: task.swapped},
				clipTask{first: task.first, second: s1, swapped: task.swapped})
		}
	}
	return mergeIntersections(out)
}

// mergeIntersections sorts hits by their range on the first segment and
// joins hits that describe the same intersection, as happens when it lies on
// the boundary between two halves of a split.
func mergeIntersections(hits []SegmentIntersection) []SegmentIntersection {
	slices.SortFunc(hits, func(x, y SegmentIntersection) int {
		switch {
		case x.A.Low < y.A.Low:
			return -1
		case x.A.Low > y.A.Low:
			return 1
		default:
			return 0
		}
	})
	const tolerance = 2 * ClipAccuracy
	near := func(x, y Interval) bool {
		return x.Overlaps(y) || math.Abs(x.Midpoint()-y.Midpoint()) <= tolerance
	}
	out := hits[:0]
	for _, h := range hits {
		merged := false
		for i, o := range out {
			if near(h.A, o.A) && near(h.B, o.B) {
				out[i] = SegmentIntersection{
					A: Interval{min(o.A.Low, h.A.Low), max(o.A.High, h.A.High)},
					B: Interval{min(o.B.Low, h.B.Low), max(o.B.High, h.B.High)},
				}
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, h)
		}
	}
	return out
}

// clipPiece maps a segment covering part of a curve onto the curve's
// parameter domain: parameter t of the segment is parameter domain.Lerp(t) of
// the curve.
type clipPiece struct {
	seg    Segment
	domain Interval
}

// CurveIntersection is an intersection of two curves. T1 and T2 are the
// parameters of the intersection on the first and second curve.
type CurveIntersection struct {
	T1 float64
	T2 float64
}

// IntersectCurves returns the intersections of c1 and c2, ordered by T1.
func IntersectCurves(c1, c2 Curve) []CurveIntersection {
	var out []CurveIntersection
	pieces2 := c2.clipPieces()
	for _, p1 := range c1.clipPieces() {
		for _, p2 := range pieces2 {
			for _, hit := range IntersectSegments(p1.seg, p2.seg) {
				out = append(out, CurveIntersection{
					T1: p1.domain.Lerp(hit.A.Midpoint()),
					T2: p2.domain.Lerp(hit.B.Midpoint()),
				})
			}
		}
	}
	slices.SortFunc(out, func(x, y CurveIntersection) int {
		switch {
		case x.T1 < y.T1:
			return -1
		case x.T1 > y.T1:
			return 1
		default:
			return 0
		}
	})
	// Intersections on a seam between pieces are found on both sides.
	return slices.CompactFunc(out, func(x, y CurveIntersection) bool {
		return math.Abs(x.T1-y.T1) <= 2*ClipAccuracy && math.Abs(x.T2-y.T2) <= 2*ClipAccuracy
	})
}
