// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: the filesystem operations the local blob store relies on
//
// # Implementations
//
//   - [LocalFS]: production implementation using the standard os package
//   - [FaultyFS]: test utility for fault injection (simulated I/O errors)
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests can inject [FaultyFS] to verify that atomic writes stay atomic
// when a write or sync fails partway:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.SetLimit(1024) // fail writes after 1KB
//	store := blobstore.NewLocalFS(ffs, dir)
//
// The interfaces intentionally carry no context.Context: local
// filesystem calls are fast and non-interruptible at the syscall
// level. Cancellation lives one layer up, in the blob store.
package fs
