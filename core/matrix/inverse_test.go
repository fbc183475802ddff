package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

func TestInverse_Known(t *testing.T) {
	a, _ := NewDenseFrom(2, 2, []float64{4, 7, 2, 6})

	inv, err := a.Inverse()
	require.NoError(t, err)

	want, _ := NewDenseFrom(2, 2, []float64{0.6, -0.7, -0.2, 0.4})
	assert.True(t, inv.EqualApprox(want, 1e-12), "got\n%v", inv)
}

func TestInverse_TimesSelfIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 3, 5, 8} {
		a := diagonallyDominant(t, rng, n)

		inv, err := a.Inverse()
		require.NoError(t, err)

		prod, err := a.Mul(inv)
		require.NoError(t, err)

		id, _ := Identity(n)
		assert.True(t, prod.EqualApprox(id, 1e-9), "n=%d\n%v", n, prod)

		var want mat.Dense
		require.NoError(t, want.Inverse(a.ToGonum()))
		assert.True(t, mat.EqualApprox(inv.ToGonum(), &want, 1e-9), "n=%d differs from gonum", n)
	}
}

func TestInverse_NormalEquations(t *testing.T) {
	// XᵀX for x = 1..5 with an intercept column.
	x, _ := NewDenseFrom(5, 2, []float64{1, 1, 2, 1, 3, 1, 4, 1, 5, 1})
	xtx, err := x.T().Mul(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{55, 15, 15, 5}, xtx.RawData())

	inv, err := xtx.Inverse()
	require.NoError(t, err)

	prod, err := xtx.Mul(inv)
	require.NoError(t, err)
	id, _ := Identity(2)
	assert.True(t, prod.EqualApprox(id, 1e-9))
}

func TestInverse_LargeScale(t *testing.T) {
	testData := map[string]struct {
		values  []float64
		want    []float64
		prodTol float64
	}{
		// XᵀX for x = 2000..2004; the second pivot is 10 while max|A| is 2e7.
		"offset normal equations": {
			values:  []float64{20040030, 10010, 10010, 5},
			want:    []float64{0.1, -200.2, -200.2, 400800.6},
			prodTol: 1e-6,
		},
		"separated pivot": {
			values:  []float64{3e6, 3e3, 3e3, 3.0000001},
			want:    inverse2x2(3e6, 3e3, 3e3, 3.0000001),
			prodTol: 1e-4,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			a, err := NewDenseFrom(2, 2, td.values)
			require.NoError(t, err)

			inv, err := a.Inverse()
			require.NoError(t, err)

			for i, v := range inv.RawData() {
				assert.InEpsilon(t, td.want[i], v, 1e-6, "element %d", i)
			}

			prod, err := a.Mul(inv)
			require.NoError(t, err)
			id, _ := Identity(2)
			assert.True(t, prod.EqualApprox(id, td.prodTol), "A·A⁻¹\n%v", prod)
		})
	}
}

// inverse2x2 is the closed-form inverse of [[a b] [c d]].
func inverse2x2(a, b, c, d float64) []float64 {
	det := a*d - b*c
	return []float64{d / det, -b / det, -c / det, a / det}
}

func TestInverse_DoesNotMutate(t *testing.T) {
	a, _ := NewDenseFrom(2, 2, []float64{4, 7, 2, 6})
	before := a.Clone()

	_, err := a.Inverse()
	require.NoError(t, err)
	assert.True(t, a.EqualApprox(before, 0))
}

func TestInverse_NonSquare(t *testing.T) {
	a, _ := NewDense(2, 3)

	_, err := a.Inverse()
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "expected DimensionError, got %v", err)
}

func TestInverse_Singular(t *testing.T) {
	testData := map[string]struct {
		values []float64
		n      int
		pivot  int
	}{
		"rank deficient":   {[]float64{1, 2, 2, 4}, 2, 1},
		"all zero":         {[]float64{0, 0, 0, 0}, 2, 0},
		"repeated x":       {[]float64{75, 15, 15, 3}, 2, 1},
		"repeated large x": {[]float64{3e6, 3e3, 3e3, 3}, 2, 1},
		"zero row 3x3":     {[]float64{1, 2, 3, 0, 0, 0, 4, 5, 6}, 3, 1},
		// No row exchanges are made, so a leading zero pivot is reported as
		// singular even though the permutation matrix is invertible.
		"leading zero pivot": {[]float64{0, 1, 1, 0}, 2, 0},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			a, err := NewDenseFrom(td.n, td.n, td.values)
			require.NoError(t, err)

			_, err = a.Inverse()
			require.True(t, errors.Is(err, errors.ErrSingularMatrix), "expected singular matrix error, got %v", err)

			var singular *errors.SingularMatrixError
			require.True(t, errors.As(err, &singular))
			assert.Equal(t, td.pivot, singular.Pivot)
		})
	}
}

func TestInverseWithTolerance(t *testing.T) {
	// Second pivot is 1e-8 relative to a scale of 1.
	a, _ := NewDenseFrom(2, 2, []float64{1, 1, 1, 1 + 1e-8})

	_, err := a.InverseWithTolerance(1e-12)
	require.NoError(t, err)

	_, err = a.InverseWithTolerance(1e-6)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))

	_, err = a.InverseWithTolerance(-1)
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}
