package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidShape is returned when embedding rows are not n×(n-1).
	ErrInvalidShape = errors.New("invalid embedding shape")
	// ErrSizeMismatch is returned when an embedding and a distance matrix
	// describe a different number of items.
	ErrSizeMismatch = errors.New("embedding and distance matrix size mismatch")
)

// Embedding is a computed n×(n-1) Euclidean point configuration.
// Row c holds the coordinates of item c; by construction only the first
// c coordinates of row c can be non-zero.
type Embedding struct {
	n    int
	dim  int
	data []float64
}

// EmbeddingFromRows builds an embedding from row slices. Every row must
// have length n-1 where n is the number of rows. The data is copied.
func EmbeddingFromRows(rows [][]float64) (*Embedding, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}

	dim := n - 1
	e := &Embedding{n: n, dim: dim, data: make([]float64, 0, n*dim)}

	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: %d rows but row %d has %d coordinates, want %d", ErrInvalidShape, n, i, len(row), dim)
		}

		e.data = append(e.data, row...)
	}

	return e, nil
}

// N returns the number of embedded items.
func (e *Embedding) N() int { return e.n }

// Dim returns the ambient dimensionality, n-1.
func (e *Embedding) Dim() int { return e.dim }

// At returns coordinate j of item i.
func (e *Embedding) At(i, j int) float64 { return e.data[i*e.dim+j] }

// Row returns a copy of the coordinates of item i.
func (e *Embedding) Row(i int) []float64 {
	row := make([]float64, e.dim)
	copy(row, e.data[i*e.dim:(i+1)*e.dim])

	return row
}

// Rows returns a copy of all coordinate rows.
func (e *Embedding) Rows() [][]float64 {
	rows := make([][]float64, e.n)
	for i := range rows {
		rows[i] = e.Row(i)
	}

	return rows
}

// Distance returns the realized Euclidean distance between items i and j.
func (e *Embedding) Distance(i, j int) float64 {
	var sum float64

	for k := 0; k < e.dim; k++ {
		d := e.data[i*e.dim+k] - e.data[j*e.dim+k]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// MaxDeviation returns the largest absolute difference between realized
// pairwise distances and the targets in dm.
func (e *Embedding) MaxDeviation(dm *DistanceMatrix) (float64, error) {
	if dm == nil || dm.N() != e.n {
		return 0, ErrSizeMismatch
	}

	var max float64

	for i := 0; i < e.n; i++ {
		for j := i + 1; j < e.n; j++ {
			dev := math.Abs(e.Distance(i, j) - dm.At(i, j))
			if dev > max {
				max = dev
			}
		}
	}

	return max, nil
}
