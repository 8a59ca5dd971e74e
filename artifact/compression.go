package artifact

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the payload compression algorithm.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// String returns the stable name of the compression type.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// CompressionByName returns a compression type by its stable name.
func CompressionByName(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	default:
		return CompressionNone, false
	}
}

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil)

	return dec
}

// compress compresses the payload and returns it together with the
// compression type actually recorded. Incompressible payloads fall back
// to CompressionNone so the container never grows from compression.
func compress(data []byte, ctype CompressionType) ([]byte, CompressionType, error) {
	if ctype == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	switch ctype {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))

		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}

		if n == 0 || n >= len(data) {
			return data, CompressionNone, nil
		}

		return buf[:n], CompressionLZ4, nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		out := enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)

		if len(out) >= len(data) {
			return data, CompressionNone, nil
		}

		return out, CompressionZSTD, nil
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, ctype)
	}
}

// decompress restores a payload of the given uncompressed size.
func decompress(data []byte, ctype CompressionType, size uint64) ([]byte, error) {
	switch ctype {
	case CompressionNone:
		if uint64(len(data)) != size {
			return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupted, len(data), size)
		}

		return data, nil
	case CompressionLZ4:
		out := make([]byte, size)

		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupted, err)
		}

		if uint64(n) != size {
			return nil, fmt.Errorf("%w: lz4 decompressed to %d bytes, header says %d", ErrCorrupted, n, size)
		}

		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(data, make([]byte, 0, size))
		zstdDecoderPool.Put(dec)

		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupted, err)
		}

		if uint64(len(out)) != size {
			return nil, fmt.Errorf("%w: zstd decompressed to %d bytes, header says %d", ErrCorrupted, len(out), size)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, ctype)
	}
}
