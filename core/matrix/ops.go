package matrix

import (
	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// Mul returns the matrix product m×b. m.Cols() must equal b.Rows().
func (m *Dense) Mul(b *Dense) (*Dense, error) {
	if b == nil {
		return nil, errors.NewValueError("Dense.Mul", "nil operand")
	}
	if m.cols != b.rows {
		return nil, errors.NewDimensionError("Dense.Mul", m.cols, b.rows, errors.AxisRows)
	}
	out := &Dense{rows: m.rows, cols: b.cols, data: make([]float64, m.rows*b.cols)}
	// i→k→j keeps both inner accesses sequential in row-major storage.
	for i := 0; i < m.rows; i++ {
		outRow := out.data[i*b.cols : (i+1)*b.cols]
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			if a == 0 {
				continue
			}
			bRow := b.data[k*b.cols : (k+1)*b.cols]
			for j, bv := range bRow {
				outRow[j] += a * bv
			}
		}
	}
	return out, nil
}

// T returns the transpose of m as a new matrix.
func (m *Dense) T() *Dense {
	out := &Dense{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}
