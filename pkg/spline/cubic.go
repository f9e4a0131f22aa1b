// Package spline implements the 1-D natural cubic spline and the
// tensor-product bicubic surface used by the daily interpolator cache.
// No spline/interpolation library in the reference corpus exposes a
// closed-form 2-D integral, so this package hand-rolls the separable
// construction RectBivariateSpline itself uses: fit one axis, then
// fit a second spline through the results across the other axis.
package spline

import (
	"sort"

	"github.com/worldpop-io/wpp-engine/pkg/wpperr"
)

// Cubic1D is a natural cubic spline through a strictly increasing set
// of knots. Evaluation and definite integration are both closed-form.
type Cubic1D struct {
	x  []float64
	y  []float64
	m  []float64 // second derivatives at each knot
}

// NewCubic1D fits a natural cubic spline (zero second derivative at
// both boundary knots) through the given points. x must be strictly
// increasing and len(x) == len(y) >= 2.
func NewCubic1D(x, y []float64) (*Cubic1D, error) {
	n := len(x)
	if n != len(y) {
		return nil, wpperr.New(wpperr.Internal, "spline.NewCubic1D", "len(x) != len(y)")
	}
	if n < 2 {
		return nil, wpperr.New(wpperr.Internal, "spline.NewCubic1D", "need at least 2 knots")
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, wpperr.New(wpperr.Internal, "spline.NewCubic1D", "x must be strictly increasing")
		}
	}

	m := solveNaturalSecondDerivatives(x, y)
	return &Cubic1D{x: append([]float64(nil), x...), y: append([]float64(nil), y...), m: m}, nil
}

// solveNaturalSecondDerivatives solves the standard tridiagonal system
// for natural cubic spline second derivatives via the Thomas algorithm.
func solveNaturalSecondDerivatives(x, y []float64) []float64 {
	n := len(x)
	m := make([]float64, n)
	if n == 2 {
		return m // a single segment is linear: zero curvature everywhere
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
	}

	// Tridiagonal system for interior points 1..n-2 (natural: m[0]=m[n-1]=0).
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	diag[0], diag[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		sub[i] = h[i-1]
		diag[i] = 2 * (h[i-1] + h[i])
		sup[i] = h[i]
		rhs[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	// forward sweep
	for i := 1; i < n-1; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	// back substitution
	m[n-1] = 0
	for i := n - 2; i >= 1; i-- {
		m[i] = (rhs[i] - sup[i]*m[i+1]) / diag[i]
	}
	m[0] = 0
	return m
}

func (s *Cubic1D) segment(v float64) int {
	i := sort.SearchFloat64s(s.x, v)
	if i > 0 {
		i--
	}
	if i > len(s.x)-2 {
		i = len(s.x) - 2
	}
	return i
}

// Eval evaluates the spline at v, clamping to the boundary segments
// when v falls outside [x[0], x[n-1]].
func (s *Cubic1D) Eval(v float64) float64 {
	i := s.segment(v)
	h := s.x[i+1] - s.x[i]
	a := (s.x[i+1] - v) / h
	b := (v - s.x[i]) / h
	return a*s.y[i] + b*s.y[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*(h*h)/6
}

// Integrate returns the definite integral of the spline over [lo, hi].
// Arguments need not be ordered or confined to the knot range; the
// call is clamped to the spline's domain and negated if lo > hi.
func (s *Cubic1D) Integrate(lo, hi float64) float64 {
	if lo == hi {
		return 0
	}
	sign := 1.0
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}
	xmin, xmax := s.x[0], s.x[len(s.x)-1]
	if hi < xmin || lo > xmax {
		return 0
	}
	if lo < xmin {
		lo = xmin
	}
	if hi > xmax {
		hi = xmax
	}

	total := 0.0
	for i := 0; i < len(s.x)-1; i++ {
		segLo, segHi := s.x[i], s.x[i+1]
		a, b := maxF(segLo, lo), minF(segHi, hi)
		if a >= b {
			continue
		}
		total += s.segmentIntegral(i, a, b)
	}
	return sign * total
}

// segmentIntegral integrates the cubic over [a,b] within segment i
// (a,b must lie within [x[i], x[i+1]]), using the closed-form
// antiderivative of the standard natural-cubic-spline piece.
func (s *Cubic1D) segmentIntegral(i int, a, b float64) float64 {
	x0, x1 := s.x[i], s.x[i+1]
	h := x1 - x0
	y0, y1 := s.y[i], s.y[i+1]
	m0, m1 := s.m[i], s.m[i+1]

	// F(t) is the antiderivative with t measured from x0, 0<=t<=h.
	F := func(t float64) float64 {
		aC := (h - t) / h
		bC := t / h
		// integral of linear part: y0*aC + y1*bC over t is
		// y0*t - y0*t^2/(2h) + y1*t^2/(2h)
		linear := y0*t + (y1-y0)*t*t/(2*h)
		// Antiderivatives of (aC^3-aC) and (bC^3-bC) w.r.t. t; the
		// missing constant term on the aC side cancels in F(b)-F(a).
		aCInt := -(h/4)*pow4((h-t)/h) + (h/2)*((h-t)/h)*((h-t)/h)
		bCInt := (h/4)*pow4(t/h) - (h/2)*(t/h)*(t/h)
		cubic := (m0*aCInt + m1*bCInt) * (h * h) / 6
		return linear + cubic
	}
	return F(b-x0) - F(a-x0)
}

func pow4(v float64) float64 { v2 := v * v; return v2 * v2 }

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
