package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistanceMatrix(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := NewDistanceMatrix(3)
		require.NoError(t, err)
		assert.Equal(t, 3, m.N())
		assert.Equal(t, 0.0, m.At(1, 2))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewDistanceMatrix(0)
		assert.ErrorIs(t, err, ErrEmptyMatrix)

		_, err = NewDistanceMatrix(-1)
		assert.ErrorIs(t, err, ErrEmptyMatrix)
	})
}

func TestDistanceMatrixFromRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		wantErr error
	}{
		{"Square", [][]float64{{0, 1}, {1, 0}}, nil},
		{"Single", [][]float64{{0}}, nil},
		{"Empty", nil, ErrEmptyMatrix},
		{"Ragged", [][]float64{{0, 1}, {1}}, ErrNotSquare},
		{"Rectangular", [][]float64{{0, 1, 2}, {1, 0, 3}}, ErrNotSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DistanceMatrixFromRows(tt.rows)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), m.N())
		})
	}
}

func TestDistanceMatrixAccess(t *testing.T) {
	m, err := DistanceMatrixFromRows([][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 3.0, m.At(2, 1))

	m.Set(0, 2, 5)
	assert.Equal(t, 5.0, m.At(0, 2))
	assert.Equal(t, 5.0, m.At(2, 0), "Set must be symmetric")

	row := m.Row(1)
	assert.Equal(t, []float64{1, 0, 3}, row)

	// Row returns a copy, mutating it must not touch the matrix.
	row[2] = 99
	assert.Equal(t, 3.0, m.At(1, 2))
}

func TestDistanceMatrixCopiesInput(t *testing.T) {
	rows := [][]float64{{0, 1}, {1, 0}}
	m, err := DistanceMatrixFromRows(rows)
	require.NoError(t, err)

	rows[0][1] = 42
	assert.Equal(t, 1.0, m.At(0, 1))
}
