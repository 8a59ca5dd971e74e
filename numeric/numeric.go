// Package numeric provides the dense linear-algebra backend used by the
// embedding pipeline.
//
// The embedder assembles small square hyperplane systems and, for
// higher-dimensional subspaces, needs an orthonormal basis of the
// orthogonal complement of a direction vector. Both operations are
// behind the Backend interface so the implementation can be swapped;
// Gonum is the default.
package numeric

import "errors"

var (
	// ErrSingular is returned when a system has no usable solution.
	ErrSingular = errors.New("singular system")
	// ErrShapeMismatch is returned when backend inputs are malformed.
	ErrShapeMismatch = errors.New("backend input shape mismatch")
)

// Backend solves the dense systems assembled during placement.
// Implementations must be safe for concurrent use.
type Backend interface {
	// SolveSquare solves the square system a·x = b and returns x.
	//
	// Near-singular systems may still return a solution; callers are
	// expected to verify the residual. Exactly singular systems return
	// ErrSingular.
	SolveSquare(a [][]float64, b []float64) ([]float64, error)

	// NullSpace returns an orthonormal basis of the orthogonal
	// complement of v: len(v)-1 vectors, each of length len(v) and unit
	// norm, all orthogonal to v and to each other.
	NullSpace(v []float64) ([][]float64, error)
}
