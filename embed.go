package hierembed

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hierembed/geometry"
	"github.com/hupe1980/hierembed/model"
	"github.com/hupe1980/hierembed/numeric"
)

const (
	// degenerateRadius is the threshold below which an intersection
	// sphere counts as a single point, indicating that the target
	// distances satisfy the triangle inequality only with equality.
	degenerateRadius = 1e-12

	// residualAbsTol and residualRelTol bound the acceptable per-element
	// residual |A·x-b| of the hyperplane solve.
	residualAbsTol = 1e-8
	residualRelTol = 1e-5
)

// errResidual marks solutions rejected by the residual check.
var errResidual = errors.New("solution fails residual check")

// Embedder computes exact Euclidean embeddings from target distance
// matrices. It is safe for concurrent use; every Embed call works on
// its own state.
type Embedder struct {
	backend     numeric.Backend
	logger      *Logger
	observer    Observer
	parallelism int
}

// New creates an Embedder.
func New(optFns ...Option) *Embedder {
	o := applyOptions(optFns)

	return &Embedder{
		backend:     o.backend,
		logger:      o.logger,
		observer:    o.observer,
		parallelism: o.parallelism,
	}
}

// Embed places the n items described by dm in (n-1)-dimensional space
// so that their pairwise Euclidean distances reproduce the targets.
//
// Items are placed in index order: item 0 at the origin, item 1 on the
// first axis, item 2 on the intersection of the circles around the
// first two, and every further item c at the intersection of the
// hyperspheres around all previously placed items, lifted into the
// newly added dimension. The positive branch is taken at every
// placement, making the result deterministic.
//
// The result depends on the item order: permuting dm permutes and
// changes the coordinates, but pairwise distances still match the
// permuted targets.
//
// Distances that violate the strict triangle inequality surface as
// *ErrNonIntersectingSpheres, *ErrDegenerateIntersection,
// *ErrSingularSystem or *ErrOutsideSphere, all fatal.
func (e *Embedder) Embed(ctx context.Context, dm *model.DistanceMatrix) (*model.Embedding, error) {
	start := time.Now()

	emb, err := e.embed(ctx, dm)

	var n int
	if dm != nil {
		n = dm.N()
	}

	dur := time.Since(start)
	e.observer.ObserveEmbed(n, dur, err)
	e.logger.LogEmbed(ctx, n, dur, err)

	return emb, err
}

func (e *Embedder) embed(ctx context.Context, dm *model.DistanceMatrix) (*model.Embedding, error) {
	if dm == nil || dm.N() == 0 {
		return nil, ErrEmptyMatrix
	}

	n := dm.N()

	// Row c only ever uses its first c coordinates; the rest stay zero.
	points := make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, n-1)
	}

	// Item 0 sits at the origin.
	e.observer.ObserveStep(StepTiming{Item: 0})
	e.logger.LogPlacement(ctx, 0, 0, nil)

	// Item 1 sits on the first axis at the target distance.
	if n > 1 {
		points[1][0] = dm.At(0, 1)
		e.observer.ObserveStep(StepTiming{Item: 1})
		e.logger.LogPlacement(ctx, 1, 1, nil)
	}

	if n > 2 {
		if err := e.placeThird(ctx, dm, points); err != nil {
			return nil, err
		}
	}

	for c := 3; c < n; c++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := e.place(ctx, dm, points, c); err != nil {
			return nil, err
		}
	}

	return model.EmbeddingFromRows(points)
}

// placeThird puts item 2 on the intersection of the two circles around
// the first two items, on the positive side of the first axis.
func (e *Embedder) placeThird(ctx context.Context, dm *model.DistanceMatrix, points [][]float64) error {
	start := time.Now()

	its, err := geometry.Intersect(points[0][:2], points[1][:2], dm.At(0, 2), dm.At(1, 2), func(o *geometry.Options) {
		o.Radius = true
		o.Basis = true
		o.Backend = e.backend
	})
	if err != nil {
		err = placementError(0, 1, 2, err)
		e.logger.LogPlacement(ctx, 2, 2, err)

		return err
	}

	if its.Radius < degenerateRadius {
		err := &ErrDegenerateIntersection{I: 0, J: 1, Item: 2}
		e.logger.LogPlacement(ctx, 2, 2, err)

		return err
	}

	for i := 0; i < 2; i++ {
		points[2][i] = its.Center[i] + its.Radius*its.Basis[0][i]
	}

	e.observer.ObserveStep(StepTiming{Item: 2, Intersect: time.Since(start)})
	e.logger.LogPlacement(ctx, 2, 2, nil)

	return nil
}

// place puts item c on the common intersection of the hyperspheres
// around all previously placed items.
//
// Each sphere pair (0, i) cuts along a hyperplane; the planes meet in a
// line parallel to the newly added axis once that dimension is
// appended. The point on the line at target distance from item 0 is
// necessarily at target distance from every other placed item as well.
func (e *Embedder) place(ctx context.Context, dm *model.DistanceMatrix, points [][]float64, c int) error {
	sub := c - 1
	r0 := dm.At(0, c)

	startIntersect := time.Now()

	normals := make([][]float64, c-1)
	rhs := make([]float64, c-1)

	if err := e.cutPlanes(ctx, dm, points, c, normals, rhs); err != nil {
		e.logger.LogPlacement(ctx, c, sub+1, err)

		return err
	}

	intersectDur := time.Since(startIntersect)
	startSolve := time.Now()

	x, err := e.backend.SolveSquare(normals, rhs)
	if err != nil {
		err = &ErrSingularSystem{Item: c, cause: err}
		e.logger.LogPlacement(ctx, c, sub+1, err)

		return err
	}

	if !residualOK(normals, x, rhs) {
		err := &ErrSingularSystem{Item: c, cause: errResidual}
		e.logger.LogPlacement(ctx, c, sub+1, err)

		return err
	}

	solveDur := time.Since(startSolve)
	startExtend := time.Now()

	// The plane intersection pins the first c-1 coordinates. The last
	// one follows from the distance to item 0 at the origin.
	r0Sq := r0 * r0

	var dSq float64
	for _, v := range x {
		dSq += v * v
	}

	if dSq > r0Sq {
		err := &ErrOutsideSphere{Item: c, Offset: math.Sqrt(dSq) - r0}
		e.logger.LogPlacement(ctx, c, sub+1, err)

		return err
	}

	copy(points[c][:sub], x)
	points[c][sub] = math.Sqrt(r0Sq - dSq)

	e.observer.ObserveStep(StepTiming{
		Item:      c,
		Intersect: intersectDur,
		Solve:     solveDur,
		Extend:    time.Since(startExtend),
	})
	e.logger.LogPlacement(ctx, c, sub+1, nil)

	return nil
}

// cutPlanes intersects the sphere around item 0 with the sphere around
// every other placed item and collects the resulting hyperplanes as
// rows of a square system: normals · x = rhs.
//
// The intersections are independent and read-only, so they fan out
// when parallelism allows it. Results land in index-addressed slots
// and the lowest-index failure wins, keeping output and errors
// deterministic regardless of schedule.
func (e *Embedder) cutPlanes(ctx context.Context, dm *model.DistanceMatrix, points [][]float64, c int, normals [][]float64, rhs []float64) error {
	sub := c - 1
	r0 := dm.At(0, c)

	cut := func(i int) error {
		its, err := geometry.Intersect(points[0][:sub], points[i][:sub], r0, dm.At(i, c), func(o *geometry.Options) {
			o.Radius = true
		})
		if err != nil {
			return placementError(0, i, c, err)
		}

		if its.Radius < degenerateRadius {
			return &ErrDegenerateIntersection{I: 0, J: i, Item: c}
		}

		var dot float64
		for k := range its.Normal {
			dot += its.Normal[k] * its.Center[k]
		}

		normals[i-1] = its.Normal
		rhs[i-1] = dot

		return nil
	}

	if e.parallelism < 2 || c-1 < 2 {
		for i := 1; i < c; i++ {
			if err := cut(i); err != nil {
				return err
			}
		}

		return nil
	}

	errs := make([]error, c-1)

	var g errgroup.Group
	g.SetLimit(e.parallelism)

	for i := 1; i < c; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i-1] = err
				return nil
			}

			errs[i-1] = cut(i)

			return nil
		})
	}

	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// placementError translates geometry failures into placement errors for
// the anchor pair (i, j) and the item being placed.
func placementError(i, j, item int, err error) error {
	switch {
	case errors.Is(err, geometry.ErrDisjoint):
		return &ErrNonIntersectingSpheres{I: i, J: j, Item: item, cause: err}
	case errors.Is(err, geometry.ErrCoincidentCenters):
		// Coincident centers mean two placed items occupy the same
		// point, another shape of a non-strict triangle inequality.
		return &ErrDegenerateIntersection{I: i, J: j, Item: item, cause: err}
	default:
		return err
	}
}

func residualOK(a [][]float64, x, b []float64) bool {
	for i, row := range a {
		var dot float64
		for k, v := range row {
			dot += v * x[k]
		}

		if math.Abs(dot-b[i]) > residualAbsTol+residualRelTol*math.Abs(b[i]) {
			return false
		}
	}

	return true
}
