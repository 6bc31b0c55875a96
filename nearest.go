package xyedge

import "math"

// Nearest points between two curves.
//
// The global search follows "Computing the minimum distance between two
// Bézier curves", Chen et al., Journal of Computational and Applied
// Mathematics 229(2009), 294-301: the squared distance |P(u) − Q(v)|² of two
// Béziers of degrees n and m is a tensor product Bézier of degree 2n × 2m,
// whose coefficients bound it from below and whose corner coefficients are
// values of it. Levenberg–Marquardt then polishes the result on the actual
// curves.

const (
	nearestIterations = 100
	nearestDamping    = 1e-3
)

// NearestParameters searches for the parameters of the closest pair of points
// on c1 and c2, starting from t1 and t2. It runs a damped least squares
// (Levenberg–Marquardt) iteration on c1(t1) − c2(t2), keeping both parameters
// within [0, 1], and finds a local minimum only.
func NearestParameters(c1, c2 Curve, t1, t2 float64) (float64, float64) {
	t1 = min(max(t1, 0), 1)
	t2 = min(max(t2, 0), 1)
	residual := func(t1, t2 float64) Vec2 { return c1.Position(t1).Sub(c2.Position(t2)) }
	r := residual(t1, t2)
	cost := r.Hypot2()
	lambda := nearestDamping
	for range nearestIterations {
		if cost == 0 {
			break
		}
		// The Jacobian has columns c1′(t1) and −c2′(t2).
		j1 := c1.Derivative(t1)
		j2 := c2.Derivative(t2).Negate()
		a11 := j1.Hypot2() + lambda
		a12 := j1.Dot(j2)
		a22 := j2.Hypot2() + lambda
		g1 := -j1.Dot(r)
		g2 := -j2.Dot(r)
		det := a11*a22 - a12*a12
		if det == 0 || math.IsNaN(det) {
			break
		}
		d1 := (g1*a22 - g2*a12) / det
		d2 := (a11*g2 - a12*g1) / det
		n1 := min(max(t1+d1, 0), 1)
		n2 := min(max(t2+d2, 0), 1)
		nr := residual(n1, n2)
		if nc := nr.Hypot2(); nc < cost {
			converged := math.Abs(n1-t1) < 1e-15 && math.Abs(n2-t2) < 1e-15
			t1, t2, r, cost = n1, n2, nr, nc
			lambda /= 10
			if converged {
				break
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}
	}
	return t1, t2
}

// Intercept returns the parameters at which c1 and c2 meet. If they don't
// intersect, it returns the parameters of the closest pair of points and
// reports false.
func Intercept(c1, c2 Curve) (t1, t2 float64, exact bool) {
	if hits := IntersectCurves(c1, c2); len(hits) > 0 {
		return hits[0].T1, hits[0].T2, true
	}
	best := math.Inf(1)
	for _, p1 := range c1.clipPieces() {
		b1, ok := p1.seg.(bezierSegment)
		if !ok {
			continue
		}
		for _, p2 := range c2.clipPieces() {
			b2, ok := p2.seg.(bezierSegment)
			if !ok {
				continue
			}
			d, u, v := bezierMinDistance(b1.orig, b2.orig)
			if d < best {
				best = d
				t1, t2 = p1.domain.Lerp(u), p2.domain.Lerp(v)
			}
		}
	}
	t1, t2 = NearestParameters(c1, c2, t1, t2)
	return t1, t2, false
}

// bezierMinDistance returns the smallest squared distance between the Bézier
// curves p and q and the parameters at which it occurs.
func bezierMinDistance(p, q []Point) (dist2, u, v float64) {
	s := minDistSearch{epsilon: 1e-7, best: math.Inf(1)}
	s.search(p, q, Interval{0, 1}, Interval{0, 1}, 0)
	return s.best, s.u, s.v
}

type minDistSearch struct {
	epsilon float64
	best    float64
	u, v    float64
	// visits bounds the search for nearly parallel curves, whose distance
	// surface is too flat to prune.
	visits int
}

const maxMinDistVisits = 4096

// search examines the pieces p and q, which cover us and vs of the original
// curves.
func (s *minDistSearch) search(p, q []Point, us, vs Interval, depth int) {
	s.visits++
	n, m := len(p)-1, len(q)-1
	var d [7][7]float64
	lowest := math.Inf(1)
	for r := range 2*n + 1 {
		for k := range 2*m + 1 {
			d[r][k] = distanceCoefficient(r, k, p, q)
			lowest = min(lowest, d[r][k])
		}
	}

	corners := [4]struct {
		d    float64
		u, v float64
	}{
		{d[0][0], us.Low, vs.Low},
		{d[0][2*m], us.Low, vs.High},
		{d[2*n][0], us.High, vs.Low},
		{d[2*n][2*m], us.High, vs.High},
	}
	for _, c := range corners {
		if c.d < s.best {
			s.best, s.u, s.v = c.d, c.u, c.v
		}
	}

	// The surface lies above its lowest coefficient.
	if lowest >= s.best-1e-12*max(1, s.best) {
		return
	}
	if us.Width() < s.epsilon || vs.Width() < s.epsilon || depth > 40 || s.visits > maxMinDistVisits {
		return
	}

	var p0, p1, q0, q1 [4]Point
	bezierSplit(p, 0.5, p0[:len(p)], p1[:len(p)])
	bezierSplit(q, 0.5, q0[:len(q)], q1[:len(q)])
	um, vm := us.Midpoint(), vs.Midpoint()
	s.search(p0[:len(p)], q0[:len(q)], Interval{us.Low, um}, Interval{vs.Low, vm}, depth+1)
	s.search(p0[:len(p)], q1[:len(q)], Interval{us.Low, um}, Interval{vm, vs.High}, depth+1)
	s.search(p1[:len(p)], q0[:len(q)], Interval{um, us.High}, Interval{vs.Low, vm}, depth+1)
	s.search(p1[:len(p)], q1[:len(q)], Interval{um, us.High}, Interval{vm, vs.High}, depth+1)
}

// distanceCoefficient returns coefficient (r, k) of |P(u) − Q(v)|² in the
// tensor product Bernstein basis of degree 2n × 2m.
func distanceCoefficient(r, k int, p, q []Point) float64 {
	return selfProduct(r, p) + selfProduct(k, q) - 2*elevated(r, p).Dot(elevated(k, q))
}

// selfProduct returns coefficient r of P(u)·P(u) in the Bernstein basis of
// degree 2n.
func selfProduct(r int, p []Point) float64 {
	n := len(p) - 1
	var sum float64
	for i := max(0, r-n); i <= min(r, n); i++ {
		sum += Vec2(p[i]).Dot(Vec2(p[r-i])) * elevationWeight(n, i, r)
	}
	return sum
}

// elevated returns control point r of P raised from degree n to degree 2n.
func elevated(r int, p []Point) Vec2 {
	n := len(p) - 1
	var sum Vec2
	for i := max(0, r-n); i <= min(r, n); i++ {
		sum = sum.Add(Vec2(p[i]).Mul(elevationWeight(n, i, r)))
	}
	return sum
}

// elevationWeight is C(n, i)·C(n, r−i) / C(2n, r).
func elevationWeight(n, i, r int) float64 {
	return float64(choose(n, i)*choose(n, r-i)) / float64(choose(2*n, r))
}

// choose returns the binomial coefficient, or zero for k outside [0, n].
func choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	p := 1
	for i := 1; i <= k; i++ {
		p = p * (n - k + i) / i
	}
	return p
}
