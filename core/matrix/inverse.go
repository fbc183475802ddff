package matrix

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// DefaultPivotTolerance is the relative pivot threshold used by Inverse.
// A pivot is treated as zero when |pivot| <= tol * s, where s is the largest
// magnitude its diagonal entry held during elimination.
const DefaultPivotTolerance = 64 * epsilon

// epsilon is the float64 machine epsilon, 2⁻⁵².
const epsilon = 1.0 / (1 << 52)

// Inverse returns m⁻¹ using DefaultPivotTolerance.
func (m *Dense) Inverse() (*Dense, error) {
	return m.InverseWithTolerance(DefaultPivotTolerance)
}

// InverseWithTolerance inverts a square matrix by Gauss–Jordan elimination on
// the augmented matrix [A | I].
//
// No row exchanges are made: each row is normalized by its own diagonal pivot
// and that column is then cleared from every other row. A pivot at or below
// tol times the largest magnitude its diagonal entry reached during
// elimination yields a *errors.SingularMatrixError. The threshold is local to
// each pivot, not to max|A|, so normal equations for x far from zero still
// invert. Ill-conditioned inputs may lose precision.
func (m *Dense) InverseWithTolerance(tol float64) (*Dense, error) {
	const op = "Dense.Inverse"
	if m.rows != m.cols {
		return nil, errors.NewDimensionError(op, m.rows, m.cols, errors.AxisCols)
	}
	if tol < 0 || math.IsNaN(tol) {
		return nil, errors.NewValueError(op, fmt.Sprintf("tolerance must be non-negative, got %g", tol))
	}

	n := m.rows
	// aug is n×2n: left half A, right half I.
	w := 2 * n
	aug := make([]float64, n*w)
	for i := 0; i < n; i++ {
		copy(aug[i*w:i*w+n], m.data[i*n:(i+1)*n])
		aug[i*w+n+i] = 1
	}

	// diag[i] tracks the cancellation scale of the i-th diagonal entry.
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = math.Abs(m.data[i*n+i])
	}

	for i := 0; i < n; i++ {
		rowI := aug[i*w : (i+1)*w]
		pivot := rowI[i]
		if math.Abs(pivot) <= tol*diag[i] || math.IsNaN(pivot) {
			return nil, errors.NewSingularMatrixError(op, i, pivot)
		}
		for j := range rowI {
			rowI[j] /= pivot
		}
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			rowK := aug[k*w : (k+1)*w]
			factor := rowK[i]
			if factor == 0 {
				continue
			}
			if u := math.Abs(factor * rowI[k]); u > diag[k] {
				diag[k] = u
			}
			for j := range rowK {
				rowK[j] -= factor * rowI[j]
			}
		}
	}

	out := &Dense{rows: n, cols: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], aug[i*w+n:(i+1)*w])
	}
	return out, nil
}
