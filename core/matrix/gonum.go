package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// FromGonum copies any gonum matrix into a new Dense.
func FromGonum(a mat.Matrix) (*Dense, error) {
	if a == nil {
		return nil, errors.NewValueError("FromGonum", "nil matrix")
	}
	r, c := a.Dims()
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = a.At(i, j)
		}
	}
	return m, nil
}

// ToGonum returns a gonum *mat.Dense holding a copy of m.
func (m *Dense) ToGonum() *mat.Dense {
	return mat.NewDense(m.rows, m.cols, m.RawData())
}
