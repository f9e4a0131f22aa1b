package spline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubic1DReproducesKnots(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16}
	s, err := NewCubic1D(x, y)
	require.NoError(t, err)
	for i, xi := range x {
		assert.InDelta(t, y[i], s.Eval(xi), 1e-9)
	}
}

func TestCubic1DLinearCaseIsExact(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 2, 4, 6}
	s, err := NewCubic1D(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, s.Eval(1.5), 1e-9)
	assert.InDelta(t, 9.0, s.Integrate(0, 3), 1e-6) // area under y=2x from 0..3 is 9
}

func TestCubic1DIntegrateConstantFunction(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{5, 5, 5, 5, 5}
	s, err := NewCubic1D(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, s.Integrate(0, 4), 1e-6)
	assert.InDelta(t, 10.0, s.Integrate(1, 3), 1e-6)
}

func TestCubic1DIntegrateOutOfRangeClamps(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}
	s, err := NewCubic1D(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Integrate(5, 6))
	assert.InDelta(t, s.Integrate(0, 2), s.Integrate(-5, 10), 1e-9)
}

func TestQuadratic3ExactFit(t *testing.T) {
	q, err := NewQuadratic3([3]float64{0, 1, 2}, [3]float64{1, 3, 9})
	require.NoError(t, err)
	// unique quadratic through these points is y = 2x^2 + 1
	assert.InDelta(t, 1.0, q.Eval(0), 1e-9)
	assert.InDelta(t, 3.0, q.Eval(1), 1e-9)
	assert.InDelta(t, 9.0, q.Eval(2), 1e-9)
	assert.InDelta(t, 2*1.5*1.5+1, q.Eval(1.5), 1e-9)
}

func TestQuadratic3RejectsDuplicateX(t *testing.T) {
	_, err := NewQuadratic3([3]float64{0, 1, 1}, [3]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestBicubicReproducesGridPoints(t *testing.T) {
	rows := []float64{0, 1, 2, 3}
	cols := []float64{0, 1, 2, 3}
	z := make([][]float64, len(rows))
	for i, r := range rows {
		z[i] = make([]float64, len(cols))
		for j, c := range cols {
			z[i][j] = r + c // plane z = row + col, should be reproduced closely
		}
	}
	surf, err := NewBicubic(rows, cols, z)
	require.NoError(t, err)
	for i, r := range rows {
		for j, c := range cols {
			v, err := surf.Eval(r, c)
			require.NoError(t, err)
			assert.InDelta(t, z[i][j], v, 1e-6)
		}
	}
}

func TestBicubicIntegratePlane(t *testing.T) {
	rows := []float64{0, 1, 2, 3}
	cols := []float64{0, 1, 2, 3}
	z := make([][]float64, len(rows))
	for i := range rows {
		z[i] = make([]float64, len(cols))
		for j := range cols {
			z[i][j] = 1 // constant surface
		}
	}
	surf, err := NewBicubic(rows, cols, z)
	require.NoError(t, err)
	v, err := surf.Integrate(0, 3, 0, 3)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, v, 1e-6) // area of 3x3 square at height 1
}
