package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMatrix is returned when a distance matrix has no rows.
	ErrEmptyMatrix = errors.New("empty distance matrix")
	// ErrNotSquare is returned when the rows do not form a square n×n layout.
	ErrNotSquare = errors.New("distance matrix is not square")
)

// DistanceMatrix holds pairwise target distances for n items in a dense
// row-major layout.
//
// Only the shape is validated. Symmetry, a zero diagonal and metric
// properties (triangle inequality) are assumed, not verified; violations
// surface later as placement failures during embedding.
type DistanceMatrix struct {
	n    int
	data []float64
}

// NewDistanceMatrix returns a zero-initialized n×n distance matrix.
func NewDistanceMatrix(n int) (*DistanceMatrix, error) {
	if n <= 0 {
		return nil, ErrEmptyMatrix
	}

	return &DistanceMatrix{n: n, data: make([]float64, n*n)}, nil
}

// DistanceMatrixFromRows builds a distance matrix from row slices.
// The data is copied.
func DistanceMatrixFromRows(rows [][]float64) (*DistanceMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}

	m := &DistanceMatrix{n: n, data: make([]float64, 0, n*n)}

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: %d rows but row %d has %d entries", ErrNotSquare, n, i, len(row))
		}

		m.data = append(m.data, row...)
	}

	return m, nil
}

// N returns the number of items.
func (m *DistanceMatrix) N() int { return m.n }

// At returns the target distance between items i and j.
func (m *DistanceMatrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Set stores the target distance between items i and j symmetrically.
func (m *DistanceMatrix) Set(i, j int, d float64) {
	m.data[i*m.n+j] = d
	m.data[j*m.n+i] = d
}

// Row returns a copy of row i.
func (m *DistanceMatrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])

	return row
}
