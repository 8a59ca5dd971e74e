// Package model defines the core value types shared across hierembed.
//
// # Types
//
//   - DistanceMatrix: dense n×n target distances (shape-validated only)
//   - Embedding: computed n×(n-1) Euclidean point configuration
//
// A DistanceMatrix is treated as immutable once handed to the embedder.
// An Embedding is read-only after construction; Distance and MaxDeviation
// check the realized geometry against its targets:
//
//	emb, _ := model.EmbeddingFromRows(rows)
//	dev, _ := emb.MaxDeviation(dm)
package model
