package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(7).GaussianPoints(4, 3)
	b := NewRNG(7).GaussianPoints(4, 3)
	assert.Equal(t, a, b)

	rng := NewRNG(7)
	first := rng.UniformPoints(2, 2)
	rng.Reset()
	second := rng.UniformPoints(2, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(7), rng.Seed())
}

func TestUniformPointsRange(t *testing.T) {
	points := NewRNG(1).UniformPoints(16, 4)
	require.Len(t, points, 16)

	for _, p := range points {
		require.Len(t, p, 4)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestPairwiseDistances(t *testing.T) {
	rows := PairwiseDistances([][]float64{
		{0, 0},
		{3, 4},
		{0, 1},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, 0.0, rows[0][0])
	assert.InDelta(t, 5.0, rows[0][1], 1e-12)
	assert.InDelta(t, 5.0, rows[1][0], 1e-12)
	assert.InDelta(t, 1.0, rows[0][2], 1e-12)
	assert.InDelta(t, math.Sqrt(9+9), rows[1][2], 1e-12)
}
