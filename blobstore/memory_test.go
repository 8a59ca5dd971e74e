package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "blob", data))

	// Mutating the caller's slice must not affect the stored blob.
	data[0] = 'X'

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(10), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.Equal(t, "6789", string(buf))

	_, err = blob.ReadAt(ctx, buf, 8)
	assert.ErrorIs(t, err, io.EOF)

	_, err = blob.ReadAt(ctx, buf, 20)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, store.Put(ctx, "other", nil))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"blob", "other"}, names)

	require.NoError(t, store.Delete(ctx, "blob"))

	names, err = store.List(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, names)
}
