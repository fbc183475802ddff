// Package matrix provides a small dense row-major matrix with bounds-checked
// access, multiplication, transposition and Gauss–Jordan inversion.
//
// Every Dense exclusively owns its backing slice. Constructors copy caller
// data and every operation returns a freshly allocated result, so two Dense
// values never alias each other.
package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// Dense is a rows×cols matrix of float64 stored in row-major order.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense allocates a zero-filled rows×cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValueError("NewDense", fmt.Sprintf("dimensions must be positive (%dx%d)", rows, cols))
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom allocates a rows×cols matrix filled from values in row-major
// order. values must hold exactly rows*cols elements; it is copied.
func NewDenseFrom(rows, cols int, values []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, errors.NewDimensionError("NewDenseFrom", rows*cols, len(values), errors.AxisElements)
	}
	copy(m.data, values)
	return m, nil
}

// NewDenseFromRows builds a matrix from a slice of equally sized rows.
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, errors.NewValueError("NewDenseFromRows", "no rows")
	}
	cols := len(rows[0])
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.NewDimensionError("NewDenseFromRows", cols, len(row), errors.AxisCols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Dense) Dims() (rows, cols int) { return m.rows, m.cols }

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

func (m *Dense) indexOf(op string, i, j int) (int, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, errors.NewIndexError(op, i, j, m.rows, m.cols)
	}
	return i*m.cols + j, nil
}

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) (float64, error) {
	idx, err := m.indexOf("Dense.At", i, j)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set stores v at row i, column j.
func (m *Dense) Set(i, j int, v float64) error {
	idx, err := m.indexOf("Dense.Set", i, j)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// RawData returns a copy of the row-major backing data.
func (m *Dense) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if _, err := m.indexOf("Dense.Row", i, 0); err != nil {
		return nil, err
	}
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out, nil
}

// Col returns a copy of column j.
func (m *Dense) Col(j int) ([]float64, error) {
	if _, err := m.indexOf("Dense.Col", 0, j); err != nil {
		return nil, err
	}
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i*m.cols+j]
	}
	return out, nil
}

// Clone returns a deep copy of m.
func (m *Dense) Clone() *Dense {
	return &Dense{rows: m.rows, cols: m.cols, data: m.RawData()}
}

// EqualApprox reports whether m and b have the same shape and every pair of
// elements differs by at most tol.
func (m *Dense) EqualApprox(b *Dense, tol float64) bool {
	if b == nil || m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for i, v := range m.data {
		if math.Abs(v-b.data[i]) > tol {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
