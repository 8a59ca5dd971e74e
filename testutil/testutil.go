package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points in dim-dimensional space with
// coordinates in [-1, 1). Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)

	for i := 0; i < num; i++ {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()*2 - 1
		}
		points[i] = p
	}

	return points
}

// GaussianPoints generates num points with coordinates drawn from a
// standard normal distribution. With probability one the points are in
// general position, which keeps sequential placement well-conditioned.
func (r *RNG) GaussianPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)

	for i := 0; i < num; i++ {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.NormFloat64()
		}
		points[i] = p
	}

	return points
}

// PairwiseDistances returns the Euclidean distance matrix of the given
// points as row slices, symmetric with a zero diagonal.
func PairwiseDistances(points [][]float64) [][]float64 {
	n := len(points)

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(points[i], points[j])
			rows[i][j] = d
			rows[j][i] = d
		}
	}

	return rows
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b []float64) float64 {
	var sum float64

	for k := range a {
		d := a[k] - b[k]
		sum += d * d
	}

	return math.Sqrt(sum)
}
