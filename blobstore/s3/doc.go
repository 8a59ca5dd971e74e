// Package s3 provides an S3 implementation of the blobstore.BlobStore
// interface, for persisting embedding artifacts in Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(s3.NewFromConfig(cfg), "my-bucket", "embeddings/")
//
//	err = artifact.Save(ctx, store, "classes.heb", art)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large artifacts
//   - Automatic pagination for listing
//   - Configurable prefix for shared buckets
package s3
