// Package compress applies optional block compression to persisted stores.
package compress

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm. The value is persisted.
type Type uint8

const (
	// None stores the payload as is.
	None Type = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Type = 1
	// ZSTD uses zstd (better ratio).
	ZSTD Type = 2
)

// MaxDecodedSize bounds the uncompressed size Decompress accepts.
const MaxDecodedSize = 64 << 20

// maxLZ4Ratio is the largest expansion an LZ4 block can encode.
const maxLZ4Ratio = 255

var (
	// ErrSizeMismatch is returned when a payload does not decompress to its recorded size.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
	// ErrTooLarge is returned when a recorded size is out of bounds.
	ErrTooLarge = errors.New("decompressed size out of bounds")
)

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
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	return dec
}

// String returns the configuration name of t.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(t))
	}
}

// Parse maps a configuration name to a Type.
func Parse(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("unknown compression %q", name)
	}
}

// Compress compresses data with t. It returns None and the input unchanged
// when compression does not shrink the payload.
func Compress(data []byte, t Type) ([]byte, Type, error) {
	if t == None || len(data) == 0 {
		return data, None, nil
	}

	var (
		out []byte
		err error
	)
	switch t {
	case LZ4:
		out, err = compressLZ4(data)
	case ZSTD:
		out = compressZSTD(data)
	default:
		return nil, None, fmt.Errorf("unsupported compression %s", t)
	}
	if err != nil {
		return nil, None, err
	}

	if len(out) == 0 || len(out) >= len(data) {
		return data, None, nil
	}
	return out, t, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible.
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}

// Decompress reverses Compress. rawSize is the recorded uncompressed length;
// it is not trusted for allocation beyond what data can expand to.
func Decompress(data []byte, t Type, rawSize int) ([]byte, error) {
	if rawSize < 0 || rawSize > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, rawSize)
	}

	switch t {
	case None:
		if len(data) != rawSize {
			return nil, ErrSizeMismatch
		}
		return data, nil
	case LZ4:
		if rawSize > len(data)*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: %d bytes from %d", ErrTooLarge, rawSize, len(data))
		}
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, ErrSizeMismatch
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		if len(out) != rawSize {
			return nil, ErrSizeMismatch
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", t)
	}
}
