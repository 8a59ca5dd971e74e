package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/hierembed/internal/fs"
)

// Local implements BlobStore on the local file system.
//
// Put is atomic: data goes to a temporary file that is synced and then
// renamed over the final name, so readers either see the previous blob
// or the complete new one, never a partial write.
type Local struct {
	fs   fs.FileSystem
	root string
}

// NewLocal creates a Local store rooted at the given directory.
func NewLocal(root string) *Local {
	return NewLocalFS(fs.Default, root)
}

// NewLocalFS creates a Local store on the given file system.
// Tests use this to inject fault-injecting file systems.
func NewLocalFS(fsys fs.FileSystem, root string) *Local {
	return &Local{fs: fsys, root: root}
}

// Put writes a blob atomically.
func (s *Local) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.root, 0o755); err != nil {
		return err
	}

	path := filepath.Join(s.root, name)
	tmp := path + ".tmp"

	if err := s.writeFile(tmp, data); err != nil {
		_ = s.fs.Remove(tmp)

		return err
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)

		return err
	}

	// Persist the rename itself. Best effort: not every platform
	// supports fsync on directories.
	s.syncDir()

	return nil
}

// Open opens a blob for reading.
func (s *Local) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fs.OpenFile(filepath.Join(s.root, name), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return &localBlob{f: f, size: info.Size()}, nil
}

// Delete removes a blob.
func (s *Local) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.fs.Remove(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// List returns all blob names with the given prefix, sorted.
// Temporary files from in-flight writes are excluded.
func (s *Local) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.fs.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var names []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".tmp") {
			continue
		}

		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names, nil
}

func (s *Local) writeFile(path string, data []byte) error {
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

// syncDir flushes the directory entry so the rename survives a crash.
func (s *Local) syncDir() {
	d, err := s.fs.OpenFile(s.root, os.O_RDONLY, 0)
	if err != nil {
		return
	}
	defer d.Close()

	_ = d.Sync()
}

// localBlob implements Blob over an open file.
type localBlob struct {
	f    fs.File
	size int64
}

func (b *localBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if off >= b.size {
		return 0, io.EOF
	}

	return b.f.ReadAt(p, off)
}

func (b *localBlob) Size() int64 {
	return b.size
}

func (b *localBlob) Close() error {
	return b.f.Close()
}
