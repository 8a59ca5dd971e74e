package hierembed

import (
	"fmt"

	"github.com/hupe1980/hierembed/model"
)

var (
	// ErrEmptyMatrix is returned when the distance matrix has no items.
	ErrEmptyMatrix = model.ErrEmptyMatrix

	// ErrNotSquare is returned when the rows of a distance matrix do not
	// form a square n×n layout.
	ErrNotSquare = model.ErrNotSquare
)

// ErrNonIntersectingSpheres reports that the target spheres around two
// already placed items do not intersect, so the new item cannot be
// placed. The target distances violate the triangle inequality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrNonIntersectingSpheres struct {
	I, J int // indices of the placed anchor items
	Item int // index of the item being placed
	cause error
}

func (e *ErrNonIntersectingSpheres) Error() string {
	return fmt.Sprintf("cannot place item %d: spheres around items %d and %d do not intersect", e.Item, e.I, e.J)
}

func (e *ErrNonIntersectingSpheres) Unwrap() error { return e.cause }

// ErrDegenerateIntersection reports that the target spheres around two
// already placed items touch in a single point. The target distances
// satisfy the triangle inequality with equality where a strict
// inequality is required.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDegenerateIntersection struct {
	I, J int // indices of the placed anchor items
	Item int // index of the item being placed
	cause error
}

func (e *ErrDegenerateIntersection) Error() string {
	return fmt.Sprintf("cannot place item %d: spheres around items %d and %d intersect in a single point", e.Item, e.I, e.J)
}

func (e *ErrDegenerateIntersection) Unwrap() error { return e.cause }

// ErrSingularSystem reports that the hyperplane system assembled for an
// item has no acceptable solution: the cut planes do not intersect in a
// single line.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrSingularSystem struct {
	Item  int // index of the item being placed
	cause error
}

func (e *ErrSingularSystem) Error() string {
	return fmt.Sprintf("cannot place item %d: hyperplanes do not intersect in a single line", e.Item)
}

func (e *ErrSingularSystem) Unwrap() error { return e.cause }

// ErrOutsideSphere reports that the line defined by the hyperplane
// intersection misses the sphere around the first item. Offset is the
// distance by which it misses.
type ErrOutsideSphere struct {
	Item   int     // index of the item being placed
	Offset float64 // distance between the line and the sphere surface
}

func (e *ErrOutsideSphere) Error() string {
	return fmt.Sprintf("cannot place item %d: plane intersection lies outside the first sphere (offset: %g)", e.Item, e.Offset)
}
