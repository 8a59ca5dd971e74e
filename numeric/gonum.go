package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gonum is the default Backend, implemented on gonum/mat dense solvers.
// The zero value is ready to use.
type Gonum struct{}

var _ Backend = Gonum{}

// SolveSquare solves a·x = b via LU decomposition.
func (Gonum) SolveSquare(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("%w: %d×%d system with rhs of length %d", ErrShapeMismatch, n, n, len(b))
	}

	flat := make([]float64, 0, n*n)

	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrShapeMismatch, i, len(row), n)
		}

		flat = append(flat, row...)
	}

	var x mat.VecDense
	if err := x.SolveVec(mat.NewDense(n, n, flat), mat.NewVecDense(n, b)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		// Ill-conditioned but solved. The caller's residual check decides
		// whether the solution is acceptable.
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out, nil
}

// NullSpace computes the orthogonal complement of v from the full right
// singular vectors of the 1×d matrix [v].
func (Gonum) NullSpace(v []float64) ([][]float64, error) {
	d := len(v)
	if d == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrShapeMismatch)
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}

	if norm == 0 {
		return nil, fmt.Errorf("%w: zero vector has no oriented complement", ErrSingular)
	}

	row := make([]float64, d)
	copy(row, v)

	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(1, d, row), mat.SVDFullV); !ok {
		return nil, fmt.Errorf("%w: svd factorization failed", ErrSingular)
	}

	var vv mat.Dense
	svd.VTo(&vv)

	// Column 0 of V is v/|v|; the remaining d-1 columns span its
	// orthogonal complement.
	basis := make([][]float64, 0, d-1)

	for j := 1; j < d; j++ {
		col := make([]float64, d)
		mat.Col(col, j, &vv)
		basis = append(basis, col)
	}

	return basis, nil
}
