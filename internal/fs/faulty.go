package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault")

// Fault defines failure behavior for files matching a rule.
type Fault struct {
	// FailAfterBytes fails writes once this many bytes have been
	// written to the file. Zero disables the per-file limit.
	FailAfterBytes int64
	// FailOnSync fails the first Sync call.
	FailOnSync bool
	// FailOnClose fails Close after closing the underlying file.
	FailOnClose bool
	// Err overrides ErrInjected for this rule.
	Err error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}

	return ErrInjected
}

// FaultyFS is a FileSystem wrapper that injects errors into file
// operations, for testing crash and partial-write behavior.
type FaultyFS struct {
	fs FileSystem

	mu      sync.Mutex
	rules   map[string]Fault // filename substring -> fault
	written int64            // total bytes written across all files
	limit   int64            // global write budget, -1 = unlimited
}

// NewFaultyFS creates a FaultyFS wrapping fsys (or Default if nil).
// Without rules or a limit it behaves exactly like the wrapped FS.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}

	return &FaultyFS{
		fs:    fsys,
		rules: make(map[string]Fault),
		limit: -1,
	}
}

// Written returns the total bytes written through this FS so far.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.written
}

// SetLimit makes all writes fail once the total written bytes would
// exceed limit. Negative values disable the limit.
func (f *FaultyFS) SetLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.limit = limit
}

// AddRule injects the fault into every file whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules[pattern] = fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	var fault Fault
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
			break
		}
	}
	f.mu.Unlock()

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error             { return f.fs.Remove(name) }
func (f *FaultyFS) Rename(oldpath, newpath string) error { return f.fs.Rename(oldpath, newpath) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.fs.Stat(name)
}
func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.fs.MkdirAll(path, perm)
}
func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) { return f.fs.ReadDir(name) }

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes > 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, ff.fault.err()
	}

	ff.fs.mu.Lock()
	exceeded := ff.fs.limit >= 0 && ff.fs.written+int64(len(p)) > ff.fs.limit
	if !exceeded {
		ff.fs.written += int64(len(p))
	}
	ff.fs.mu.Unlock()

	if exceeded {
		return 0, ff.fault.err()
	}

	n, err := ff.File.Write(p)
	if n > 0 {
		ff.written += int64(n)
	}

	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}

	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()

		return ff.fault.err()
	}

	return ff.File.Close()
}
