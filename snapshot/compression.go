package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm applied to the snapshot body.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression.
	CompressionZSTD Compression = 2
)

// String returns the name of the algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools for efficiency
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

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	// Single goroutine keeps stream decoding synchronous, so pooled decoders
	// never hold background workers.
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress returns the stored payload and the algorithm actually applied.
// Falls back to CompressionNone when compression does not shrink data.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("lz4 compress: %w", err)
		}
		out = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		out = enc.EncodeAll(data, nil)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}

	if len(out) == 0 || len(out) >= len(data) {
		return data, CompressionNone, nil
	}
	return out, c, nil
}

// decompress reverses compress. rawLen is the expected decompressed size.
func decompress(data []byte, c Compression, rawLen uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		if uint64(len(data)) != rawLen {
			return nil, fmt.Errorf("%w: body length mismatch (got %d bytes, expected %d)", ErrInvalidData, len(data), rawLen)
		}
		return data, nil

	case CompressionLZ4:
		result := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, result)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrInvalidData, err)
		}
		if uint64(n) != rawLen {
			return nil, errors.Join(ErrInvalidData, errors.New("decompressed size mismatch"))
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		if err := dec.Reset(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrInvalidData, err)
		}

		// Stream into a buffer capped one byte past rawLen so the output
		// only grows with data the frame really produces.
		var out bytes.Buffer
		if _, err := io.Copy(&out, io.LimitReader(dec, int64(rawLen)+1)); err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrInvalidData, err)
		}
		if uint64(out.Len()) != rawLen {
			return nil, errors.Join(ErrInvalidData, errors.New("decompressed size mismatch"))
		}
		return out.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
