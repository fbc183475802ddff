package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

func randomDense(t *testing.T, rng *rand.Rand, rows, cols int) *Dense {
	t.Helper()
	values := make([]float64, rows*cols)
	for i := range values {
		values[i] = rng.Float64()*20 - 10
	}
	m, err := NewDenseFrom(rows, cols, values)
	require.NoError(t, err)
	return m
}

// diagonallyDominant returns an n×n matrix whose Gauss–Jordan pivots never vanish.
func diagonallyDominant(t *testing.T, rng *rand.Rand, n int) *Dense {
	t.Helper()
	m := randomDense(t, rng, n, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			v, _ := m.At(i, j)
			if v < 0 {
				v = -v
			}
			sum += v
		}
		require.NoError(t, m.Set(i, i, sum+1))
	}
	return m
}

func TestMul(t *testing.T) {
	a, _ := NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b, _ := NewDenseFrom(3, 2, []float64{7, 8, 9, 10, 11, 12})

	got, err := a.Mul(b)
	require.NoError(t, err)

	r, c := got.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{58, 64, 139, 154}, got.RawData())
}

func TestMul_DimensionMismatch(t *testing.T) {
	a, _ := NewDense(2, 3)
	b, _ := NewDense(2, 3)

	_, err := a.Mul(b)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "expected DimensionError, got %v", err)
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)

	_, err = a.Mul(nil)
	assert.Error(t, err)
}

func TestMul_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, shape := range [][3]int{{1, 1, 1}, {3, 4, 2}, {5, 2, 7}, {6, 6, 6}} {
		a := randomDense(t, rng, shape[0], shape[1])
		b := randomDense(t, rng, shape[1], shape[2])

		got, err := a.Mul(b)
		require.NoError(t, err)

		var want mat.Dense
		want.Mul(a.ToGonum(), b.ToGonum())
		assert.True(t, mat.EqualApprox(got.ToGonum(), &want, 1e-12), "shape %v", shape)
	}
}

func TestMul_DoesNotMutateOperands(t *testing.T) {
	a, _ := NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	b, _ := NewDenseFrom(2, 2, []float64{5, 6, 7, 8})
	aBefore, bBefore := a.Clone(), b.Clone()

	_, err := a.Mul(b)
	require.NoError(t, err)
	assert.True(t, a.EqualApprox(aBefore, 0))
	assert.True(t, b.EqualApprox(bBefore, 0))
}

func TestTranspose(t *testing.T) {
	a, _ := NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})

	at := a.T()
	r, c := at.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, at.RawData())

	require.NoError(t, at.Set(0, 0, 99))
	v, _ := a.At(0, 0)
	assert.Equal(t, 1.0, v, "transpose must not share storage")
}

func TestTranspose_Involution(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, shape := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {3, 4}, {7, 7}} {
		a := randomDense(t, rng, shape[0], shape[1])
		assert.True(t, a.T().T().EqualApprox(a, 0), "shape %v", shape)
	}
}

func TestFromGonum(t *testing.T) {
	g := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	m, err := FromGonum(g.T())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 2, 4}, m.RawData())

	_, err = FromGonum(nil)
	assert.Error(t, err)
}
