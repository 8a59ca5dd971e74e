package artifact

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/hierembed/blobstore"
	"github.com/hupe1980/hierembed/codec"
)

// Magic identifies hierarchy embedding artifact files (ASCII "HEB1").
const Magic = "HEB1"

var (
	// ErrInvalidMagic is returned when a blob does not start with the
	// artifact magic bytes.
	ErrInvalidMagic = errors.New("invalid magic bytes")

	// ErrUnknownCodec is returned when an artifact header names a codec
	// this build does not provide.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownCompression is returned when an artifact header carries
	// an unsupported compression byte.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrCorrupted is returned when an artifact fails structural checks
	// (truncated header, payload size mismatch, failed decompression).
	ErrCorrupted = errors.New("corrupted artifact")
)

// Container layout, all integers little-endian:
//
//	[4]  magic "HEB1"
//	[1]  codec name length
//	[n]  codec name
//	[1]  compression type
//	[8]  uncompressed payload length
//	[..] payload (compressed as recorded)
const headerFixedSize = 4 + 1 + 1 + 8

type saveOptions struct {
	codec       codec.Codec
	compression CompressionType
}

// SaveOption configures Save.
type SaveOption func(*saveOptions)

// WithCodec selects the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression.
// Defaults to CompressionNone.
func WithCompression(ctype CompressionType) SaveOption {
	return func(o *saveOptions) {
		o.compression = ctype
	}
}

// Save encodes the artifact into the self-describing container format
// and writes it to the store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, art *Artifact, optFns ...SaveOption) error {
	o := saveOptions{
		codec:       codec.Default,
		compression: CompressionNone,
	}

	for _, fn := range optFns {
		fn(&o)
	}

	codecName := o.codec.Name()
	if len(codecName) > math.MaxUint8 {
		return fmt.Errorf("codec name %q too long", codecName)
	}

	payload, err := o.codec.Marshal(art)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	compressed, ctype, err := compress(payload, o.compression)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, headerFixedSize+len(codecName)+len(compressed))
	buf = append(buf, Magic...)
	buf = append(buf, byte(len(codecName)))
	buf = append(buf, codecName...)
	buf = append(buf, byte(ctype))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(payload)))
	buf = append(buf, compressed...)

	return store.Put(ctx, name, buf)
}

// Load reads the named artifact from the store, selecting codec and
// compression from the recorded header.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Artifact, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}

	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, ErrInvalidMagic
	}

	rest := data[len(Magic):]
	if len(rest) < 1 {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupted)
	}

	nameLen := int(rest[0])
	rest = rest[1:]

	if len(rest) < nameLen+1+8 {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupted)
	}

	codecName := string(rest[:nameLen])
	rest = rest[nameLen:]

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	ctype := CompressionType(rest[0])
	size := binary.LittleEndian.Uint64(rest[1 : 1+8])

	payload, err := decompress(rest[1+8:], ctype, size)
	if err != nil {
		return nil, err
	}

	var art Artifact
	if err := c.Unmarshal(payload, &art); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	return &art, nil
}
