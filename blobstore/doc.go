// Package blobstore provides storage abstraction for embedding artifacts.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - Local: local filesystem, writes are atomic (temp file + fsync + rename)
//   - Memory: in-memory store for tests
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and other S3-compatible object storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Open(ctx, name) (Blob, error)      // Open for reading
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Missing blobs must surface as an error satisfying
// errors.Is(err, ErrNotFound).
package blobstore
