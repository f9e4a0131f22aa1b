package spline

import "github.com/worldpop-io/wpp-engine/pkg/wpperr"

// Quadratic3 is the unique quadratic polynomial through exactly three
// points, evaluated via Lagrange's formula. This mirrors the original
// model's use of InterpolatedUnivariateSpline(..., k=2) on a 3-point
// window, which is an exact polynomial fit, not a smoothing spline.
type Quadratic3 struct {
	x [3]float64
	y [3]float64
}

// NewQuadratic3 builds the fit through three distinct x values.
func NewQuadratic3(x, y [3]float64) (*Quadratic3, error) {
	if x[0] == x[1] || x[1] == x[2] || x[0] == x[2] {
		return nil, wpperr.New(wpperr.Internal, "spline.NewQuadratic3", "x values must be distinct")
	}
	return &Quadratic3{x: x, y: y}, nil
}

// Eval evaluates the fitted quadratic at v.
func (q *Quadratic3) Eval(v float64) float64 {
	total := 0.0
	for i := 0; i < 3; i++ {
		term := q.y[i]
		for j := 0; j < 3; j++ {
			if j == i {
				continue
			}
			term *= (v - q.x[j]) / (q.x[i] - q.x[j])
		}
		total += term
	}
	return total
}
