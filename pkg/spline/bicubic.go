package spline

import "github.com/worldpop-io/wpp-engine/pkg/wpperr"

// Bicubic is a tensor-product cubic spline surface over a rectangular
// grid, built and evaluated the way RectBivariateSpline composes two
// 1-D fits: one cubic spline per column across the row axis, and a
// second cubic spline across the column axis built from the first
// layer's outputs at the query point. Fubini's theorem gives the same
// construction a closed-form double integral: integrate the row axis
// first (per column), refit across columns, integrate that.
type Bicubic struct {
	rows, cols []float64
	colSplines []*Cubic1D // one per column, fit across rows
}

// NewBicubic builds the surface from rows (e.g. age knots) and cols
// (e.g. date knots) with z indexed [row][col].
func NewBicubic(rows, cols []float64, z [][]float64) (*Bicubic, error) {
	if len(z) != len(rows) {
		return nil, wpperr.New(wpperr.Internal, "spline.NewBicubic", "len(z) != len(rows)")
	}
	for _, r := range z {
		if len(r) != len(cols) {
			return nil, wpperr.New(wpperr.Internal, "spline.NewBicubic", "row length != len(cols)")
		}
	}

	colSplines := make([]*Cubic1D, len(cols))
	colVals := make([]float64, len(rows))
	for c := range cols {
		for r := range rows {
			colVals[r] = z[r][c]
		}
		s, err := NewCubic1D(rows, append([]float64(nil), colVals...))
		if err != nil {
			return nil, err
		}
		colSplines[c] = s
	}

	return &Bicubic{
		rows:       append([]float64(nil), rows...),
		cols:       append([]float64(nil), cols...),
		colSplines: colSplines,
	}, nil
}

// acrossColumns builds the cross-column vector of a per-row operation (either
// point evaluation or definite integration) evaluated at/over the row
// axis, then fits a spline of that vector across the column axis.
func (b *Bicubic) acrossColumns(rowOp func(*Cubic1D) float64) (*Cubic1D, error) {
	vals := make([]float64, len(b.cols))
	for c, s := range b.colSplines {
		vals[c] = rowOp(s)
	}
	return NewCubic1D(b.cols, vals)
}

// Eval returns the surface value at (row, col), e.g. population at a
// given age on a given epoch day.
func (b *Bicubic) Eval(row, col float64) (float64, error) {
	s, err := b.acrossColumns(func(cs *Cubic1D) float64 { return cs.Eval(row) })
	if err != nil {
		return 0, err
	}
	return s.Eval(col), nil
}

// Integrate returns the double integral of the surface over
// [rowFrom, rowTo] x [colFrom, colTo].
func (b *Bicubic) Integrate(rowFrom, rowTo, colFrom, colTo float64) (float64, error) {
	s, err := b.acrossColumns(func(cs *Cubic1D) float64 { return cs.Integrate(rowFrom, rowTo) })
	if err != nil {
		return 0, err
	}
	return s.Integrate(colFrom, colTo), nil
}
