// Package hierembed computes exact Euclidean embeddings of discrete
// items from a matrix of pairwise target distances.
//
// Given an n×n distance matrix satisfying the strict triangle
// inequality, the embedder places all n items in (n-1)-dimensional
// space so that their pairwise Euclidean distances reproduce the
// targets, using closed-form hypersphere intersections instead of
// iterative fitting.
//
// # Quick Start
//
//	dm, _ := model.DistanceMatrixFromRows([][]float64{
//	    {0, 1, 1},
//	    {1, 0, 1},
//	    {1, 1, 0},
//	})
//
//	e := hierembed.New()
//	emb, err := e.Embed(ctx, dm)
//	// emb.Row(2) == [0.5, 0.866...]: the unit equilateral triangle
//
// Items are placed one at a time: the first at the origin, the second
// on the first axis, and every further item at the intersection of the
// hyperspheres around all previously placed items, lifted into a newly
// added dimension. Distances that cannot be realized surface as typed
// placement errors naming the offending items; there is no approximate
// fallback.
//
// # Distance Sources
//
// The embedder does not care where distances come from. The hierarchy
// package derives them from parent-child class hierarchies as the
// normalized height of the lowest common subsumer, the construction
// used for semantic class embeddings:
//
//	h, _ := hierarchy.FromFile("wordnet.parent-child.txt")
//	dm, _ := h.Distances(classes)
//	emb, _ := hierembed.New().Embed(ctx, dm)
//
// # Persistence
//
// The artifact package wraps a computed embedding together with its
// label maps in a self-describing container, stored on any BlobStore
// (local filesystem, S3, MinIO, in-memory):
//
//	art, _ := artifact.New(classes, emb)
//	err = artifact.Save(ctx, store, "embedding.heb", art)
//
// # Key Properties
//
//   - Exact closed-form placement, no iterative approximation
//   - Deterministic: the same matrix always yields the same embedding
//   - Typed errors pinpoint the first unplaceable item and its anchors
//   - Pluggable linear-algebra backend (gonum by default)
//   - Optional intra-step parallelism with identical results
package hierembed
