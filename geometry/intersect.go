// Package geometry implements the closed-form intersection of two
// hyperspheres, the placement primitive of the embedding pipeline.
//
// Where two n-spheres intersect, their intersection is an (n-1)-sphere
// lying on a hyperplane. Intersect returns that sphere's center, the
// unit normal of its hyperplane and, on request, its radius and an
// orthonormal in-plane basis.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/hierembed/numeric"
)

var (
	// ErrDisjoint is returned when the spheres do not intersect, either
	// because they are too far apart or because one contains the other.
	ErrDisjoint = errors.New("spheres do not intersect")

	// ErrCoincidentCenters is returned when both spheres share one
	// center, leaving the intersection plane without an orientation.
	ErrCoincidentCenters = errors.New("sphere centers coincide")
)

// ErrDimensionMismatch indicates that the two sphere centers live in
// spaces of different dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Intersection describes the (n-1)-sphere in which two n-spheres meet.
type Intersection struct {
	// Center is the center of the intersection sphere.
	Center []float64

	// Radius is the radius of the intersection sphere.
	// Only computed when requested via Options.Radius.
	Radius float64

	// Normal is the unit normal of the hyperplane containing the
	// intersection, pointing from the first center to the second.
	Normal []float64

	// Basis is an orthonormal basis of that hyperplane, spanning the
	// subspace orthogonal to Normal.
	// Only computed when requested via Options.Basis.
	Basis [][]float64
}

// Options configures Intersect.
type Options struct {
	// Radius requests computation of the intersection sphere's radius.
	Radius bool

	// Basis requests an orthonormal in-plane basis of the intersection
	// hyperplane.
	Basis bool

	// Backend supplies the null-space computation used for ambient
	// dimensionalities above three. Defaults to numeric.Gonum.
	Backend numeric.Backend
}

// Intersect computes the intersection of the sphere around c1 with
// radius r1 and the sphere around c2 with radius r2.
//
// Touching spheres yield a zero-radius intersection rather than an
// error; callers decide whether that is acceptable.
func Intersect(c1, c2 []float64, r1, r2 float64, optFns ...func(o *Options)) (*Intersection, error) {
	opts := Options{
		Backend: numeric.Gonum{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	dim := len(c1)
	if len(c2) != dim {
		return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(c2)}
	}

	dir := make([]float64, dim)

	var distSq float64

	for i := range dir {
		dir[i] = c2[i] - c1[i]
		distSq += dir[i] * dir[i]
	}

	dist := math.Sqrt(distSq)

	if r1+r2 < dist || math.Abs(r1-r2) > dist {
		return nil, fmt.Errorf("%w: |c2-c1|=%g, r1=%g, r2=%g", ErrDisjoint, dist, r1, r2)
	}

	if dist == 0 {
		return nil, ErrCoincidentCenters
	}

	for i := range dir {
		dir[i] /= dist
	}

	// Signed distance from c1 to the intersection plane along dir.
	r1Sq := r1 * r1
	r2Sq := r2 * r2
	x := (r1Sq-r2Sq)/(2*dist) + dist/2

	center := make([]float64, dim)
	for i := range center {
		center[i] = c1[i] + x*dir[i]
	}

	its := &Intersection{
		Center: center,
		Normal: dir,
	}

	if opts.Radius {
		// Third side of the right triangle with hypotenuse r1 and leg x.
		// The max guards against rounding underflow for touching spheres.
		its.Radius = math.Sqrt(math.Max(0, r1Sq-x*x))
	}

	if opts.Basis {
		basis, err := planeBasis(dir, opts.Backend)
		if err != nil {
			return nil, err
		}

		its.Basis = basis
	}

	return its, nil
}

// planeBasis returns an orthonormal basis of the hyperplane orthogonal
// to the unit vector dir. Two and three dimensions use closed forms;
// everything else falls back to the backend's null space.
func planeBasis(dir []float64, backend numeric.Backend) ([][]float64, error) {
	switch len(dir) {
	case 2:
		return [][]float64{{-dir[1], dir[0]}}, nil
	case 3:
		b1 := make([]float64, 3)

		if s := math.Hypot(dir[0], dir[1]); s > 0 {
			b1[0] = -dir[1] / s
			b1[1] = dir[0] / s
		} else {
			// dir is aligned with the third axis.
			s = math.Hypot(dir[1], dir[2])
			b1[1] = -dir[2] / s
			b1[2] = dir[1] / s
		}

		return [][]float64{b1, cross(dir, b1)}, nil
	default:
		return backend.NullSpace(dir)
	}
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
