package artifact

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hierembed/blobstore"
	"github.com/hupe1980/hierembed/codec"
	"github.com/hupe1980/hierembed/model"
)

func testArtifact(t *testing.T) *Artifact {
	t.Helper()

	emb, err := model.EmbeddingFromRows([][]float64{
		{0, 0},
		{1, 0},
		{0.5, 0.8660254037844386},
	})
	require.NoError(t, err)

	art, err := New([]string{"cat", "dog", "tree"}, emb)
	require.NoError(t, err)

	return art
}

func TestNew(t *testing.T) {
	art := testArtifact(t)

	assert.Equal(t, []string{"cat", "dog", "tree"}, art.Labels)
	assert.Equal(t, map[string]int{"cat": 0, "dog": 1, "tree": 2}, art.Index)

	row, ok := art.Row("dog")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0}, row)

	_, ok = art.Row("fungus")
	assert.False(t, ok)

	m, err := art.Matrix()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.Distance(0, 1), 1e-12)
}

func TestNewValidation(t *testing.T) {
	emb, err := model.EmbeddingFromRows([][]float64{{0}, {1}})
	require.NoError(t, err)

	_, err = New([]string{"a"}, emb)
	assert.ErrorIs(t, err, ErrLabelCount)

	_, err = New([]string{"a", "a"}, emb)
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	_, err = New([]string{"a"}, nil)
	assert.ErrorIs(t, err, ErrLabelCount)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	art := testArtifact(t)

	codecs := []codec.Codec{codec.JSON{}, codec.GoJSON{}}
	compressions := []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD}

	for _, c := range codecs {
		for _, ctype := range compressions {
			t.Run(fmt.Sprintf("%s/%s", c.Name(), ctype), func(t *testing.T) {
				store := blobstore.NewMemory()

				err := Save(ctx, store, "art.heb", art, WithCodec(c), WithCompression(ctype))
				require.NoError(t, err)

				got, err := Load(ctx, store, "art.heb")
				require.NoError(t, err)

				assert.Equal(t, art.Labels, got.Labels)
				assert.Equal(t, art.Index, got.Index)
				assert.Equal(t, art.Embedding, got.Embedding)
			})
		}
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemory()

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(ctx, store, "missing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bad", []byte("PKL0 something else entirely")))

		_, err := Load(ctx, store, "bad")
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("Truncated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "short", []byte(Magic)))

		_, err := Load(ctx, store, "short")
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		data := []byte(Magic)
		data = append(data, byte(len("msgpack")))
		data = append(data, "msgpack"...)
		data = append(data, 0)
		data = append(data, make([]byte, 8)...)
		require.NoError(t, store.Put(ctx, "codec", data))

		_, err := Load(ctx, store, "codec")
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		data := []byte(Magic)
		data = append(data, byte(len("json")))
		data = append(data, "json"...)
		data = append(data, 9) // no such compression type
		data = append(data, make([]byte, 8)...)
		require.NoError(t, store.Put(ctx, "compression", data))

		_, err := Load(ctx, store, "compression")
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		art := testArtifact(t)
		require.NoError(t, Save(ctx, store, "art.heb", art))

		raw, err := blobstore.ReadAll(ctx, store, "art.heb")
		require.NoError(t, err)

		// Chop the payload; the recorded length no longer matches.
		require.NoError(t, store.Put(ctx, "chopped", raw[:len(raw)-4]))

		_, err = Load(ctx, store, "chopped")
		assert.ErrorIs(t, err, ErrCorrupted)
	})
}

func TestCompressionFallback(t *testing.T) {
	// High-entropy tiny payloads are incompressible; the container must
	// record CompressionNone and still round-trip.
	ctx := context.Background()
	store := blobstore.NewMemory()
	art := testArtifact(t)

	require.NoError(t, Save(ctx, store, "art.heb", art, WithCompression(CompressionLZ4)))

	got, err := Load(ctx, store, "art.heb")
	require.NoError(t, err)
	assert.Equal(t, art.Labels, got.Labels)
}

func TestCompressionByName(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"":     CompressionNone,
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZSTD,
	} {
		got, ok := CompressionByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got)
		if name != "" {
			assert.Equal(t, name, got.String())
		}
	}

	_, ok := CompressionByName("gzip")
	assert.False(t, ok)
}
