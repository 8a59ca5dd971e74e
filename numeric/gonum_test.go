package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGonumSolveSquare(t *testing.T) {
	backend := Gonum{}

	t.Run("Known2x2", func(t *testing.T) {
		// 2x + y = 5, x - y = 1  =>  x = 2, y = 1
		x, err := backend.SolveSquare([][]float64{
			{2, 1},
			{1, -1},
		}, []float64{5, 1})
		require.NoError(t, err)
		require.Len(t, x, 2)
		assert.InDelta(t, 2.0, x[0], 1e-12)
		assert.InDelta(t, 1.0, x[1], 1e-12)
	})

	t.Run("Identity", func(t *testing.T) {
		x, err := backend.SolveSquare([][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		}, []float64{3, -2, 7})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, x[0], 1e-12)
		assert.InDelta(t, -2.0, x[1], 1e-12)
		assert.InDelta(t, 7.0, x[2], 1e-12)
	})

	t.Run("Singular", func(t *testing.T) {
		_, err := backend.SolveSquare([][]float64{
			{1, 1},
			{1, 1},
		}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrSingular)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		_, err := backend.SolveSquare(nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, err = backend.SolveSquare([][]float64{{1, 2}}, []float64{1})
		assert.ErrorIs(t, err, ErrShapeMismatch)

		_, err = backend.SolveSquare([][]float64{{1, 2}, {3}}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestGonumNullSpace(t *testing.T) {
	backend := Gonum{}

	checkBasis := func(t *testing.T, v []float64, basis [][]float64) {
		t.Helper()
		require.Len(t, basis, len(v)-1)

		for i, u := range basis {
			require.Len(t, u, len(v))

			// Unit norm.
			var norm float64
			for _, x := range u {
				norm += x * x
			}
			assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-10)

			// Orthogonal to v.
			var dv float64
			for k := range v {
				dv += u[k] * v[k]
			}
			assert.InDelta(t, 0.0, dv, 1e-10)

			// Orthogonal to the other basis vectors.
			for j := i + 1; j < len(basis); j++ {
				var dot float64
				for k := range u {
					dot += u[k] * basis[j][k]
				}
				assert.InDelta(t, 0.0, dot, 1e-10)
			}
		}
	}

	t.Run("AxisAligned", func(t *testing.T) {
		v := []float64{0, 0, 1, 0}
		basis, err := backend.NullSpace(v)
		require.NoError(t, err)
		checkBasis(t, v, basis)
	})

	t.Run("General", func(t *testing.T) {
		v := []float64{1, -2, 3, 0.5, -0.25}
		basis, err := backend.NullSpace(v)
		require.NoError(t, err)
		checkBasis(t, v, basis)
	})

	t.Run("OneDimensional", func(t *testing.T) {
		basis, err := backend.NullSpace([]float64{2})
		require.NoError(t, err)
		assert.Empty(t, basis)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		_, err := backend.NullSpace([]float64{0, 0, 0})
		assert.ErrorIs(t, err, ErrSingular)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := backend.NullSpace(nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestGonumInputNotMutated(t *testing.T) {
	backend := Gonum{}

	v := []float64{3, 4}
	_, err := backend.NullSpace(v)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, v)

	a := [][]float64{{2, 0}, {0, 2}}
	b := []float64{4, 6}
	_, err = backend.SolveSquare(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0}, {0, 2}}, a)
	assert.Equal(t, []float64{4, 6}, b)
}
