package xyedge

import (
	"math"
	"sort"
)

// rootEpsilon admits roots that rounding pushed just outside [0, 1]. Such
// roots are clamped into the interval.
const rootEpsilon = 1e-9

// negligible reports whether c is zero or vanishingly small compared to the
// other coefficients of the same polynomial.
func negligible(c float64, others ...float64) bool {
	if c == 0 {
		return true
	}
	var scale float64
	for _, o := range others {
		scale = max(scale, math.Abs(o))
	}
	return math.Abs(c) <= 1e-12*scale
}

// unitRoots filters roots to those in [0, 1], clamps them, sorts them and
// drops duplicates. It returns the number of roots kept in the front of
// roots.
func unitRoots(roots []float64) int {
	n := 0
	for _, t := range roots {
		if math.IsNaN(t) || t < -rootEpsilon || t > 1+rootEpsilon {
			continue
		}
		roots[n] = min(max(t, 0), 1)
		n++
	}
	sort.Float64s(roots[:n])
	out := 0
	for i := range n {
		if out > 0 && roots[i]-roots[out-1] <= 1e-12 {
			continue
		}
		roots[out] = roots[i]
		out++
	}
	return out
}

// SolveLinear finds the root of c0 + c1 t = 0 in [0, 1].
//
// If c1 is zero, the equation is either unsolvable or satisfied everywhere;
// both cases report no roots.
func SolveLinear(c0, c1 float64) ([1]float64, int) {
	if negligible(c1, c0) {
		return [1]float64{}, 0
	}
	roots := [1]float64{-c0 / c1}
	n := unitRoots(roots[:])
	return roots, n
}

// SolveQuadratic finds the real roots of c0 + c1 t + c2 t² = 0 in [0, 1], in
// ascending order.
//
// A quadratic with a negligible t² coefficient is solved as a linear equation.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	if negligible(c2, c0, c1) {
		lin, n := SolveLinear(c0, c1)
		return [2]float64{lin[0]}, n
	}
	disc := c1*c1 - 4*c2*c0
	var roots [2]float64
	var n int
	switch {
	case disc < 0:
		return roots, 0
	case disc == 0:
		roots[0] = -c1 / (2 * c2)
		n = 1
	default:
		// See https://math.stackexchange.com/questions/866331
		q := -0.5 * (c1 + math.Copysign(math.Sqrt(disc), c1))
		roots[0] = q / c2
		roots[1] = c0 / q
		n = 2
	}
	n = unitRoots(roots[:n])
	return roots, n
}

// SolveCubic finds the real roots of c0 + c1 t + c2 t² + c3 t³ = 0 in [0, 1],
// in ascending order.
//
// The cubic is reduced to the depressed form x³ + px + q. With three real
// roots, they are found trigonometrically; otherwise Cardano's formula yields
// the single real root. A cubic with a negligible t³ coefficient is solved as
// a quadratic.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	if negligible(c3, c0, c1, c2) {
		quad, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{quad[0], quad[1]}, n
	}
	a := c2 / c3
	b := c1 / c3
	c := c0 / c3
	shift := a / 3
	p := b - a*a/3
	q := 2*a*a*a/27 - a*b/3 + c
	disc := q*q/4 + p*p*p/27

	var roots [3]float64
	var n int
	const discEpsilon = 1e-14
	switch {
	case disc < -discEpsilon:
		r := math.Sqrt(-p / 3)
		phi := math.Acos(min(max(-q/(2*r*r*r), -1), 1))
		for k := range 3 {
			roots[k] = 2*r*math.Cos((phi+2*math.Pi*float64(k))/3) - shift
		}
		n = 3
	case disc <= discEpsilon:
		u := math.Cbrt(-q / 2)
		roots[0] = 2*u - shift
		roots[1] = -u - shift
		n = 2
	default:
		sq := math.Sqrt(disc)
		roots[0] = math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq) - shift
		n = 1
	}
	n = unitRoots(roots[:n])
	return roots, n
}
