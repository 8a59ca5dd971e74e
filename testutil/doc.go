// Package testutil provides testing utilities for hierembed.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic random point clouds
// and computing their exact pairwise distances.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.GaussianPoints(8, 7)    // 8 points in 7 dimensions
//	rows := testutil.PairwiseDistances(points)
package testutil
