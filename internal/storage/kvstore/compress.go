package kvstore

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// Values are framed with a one-byte flag so stored data stays self-describing:
// raw values pass through untouched apart from the flag, compressed values
// carry the original length for exact-size decompression buffers.
const (
	frameRaw = 0x00
	frameLZ4 = 0x01

	// Values below this size gain nothing from compression.
	compressThreshold = 128
)

func compressValue(data []byte) ([]byte, error) {
	if len(data) < compressThreshold {
		framed := make([]byte, 1+len(data))
		framed[0] = frameRaw
		copy(framed[1:], data)
		return framed, nil
	}

	bound := lz4.CompressBlockBound(len(data))
	framed := make([]byte, 1+4+bound)
	framed[0] = frameLZ4
	binary.BigEndian.PutUint32(framed[1:5], uint32(len(data)))

	n, err := lz4.CompressBlock(data, framed[5:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		// Incompressible; store raw.
		framed = make([]byte, 1+len(data))
		framed[0] = frameRaw
		copy(framed[1:], data)
		return framed, nil
	}
	return framed[:1+4+n], nil
}

func decompressValue(framed []byte) ([]byte, error) {
	if len(framed) == 0 {
		return nil, fmt.Errorf("empty framed value")
	}
	switch framed[0] {
	case frameRaw:
		out := make([]byte, len(framed)-1)
		copy(out, framed[1:])
		return out, nil
	case frameLZ4:
		if len(framed) < 5 {
			return nil, fmt.Errorf("truncated lz4 frame")
		}
		size := binary.BigEndian.Uint32(framed[1:5])
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(framed[5:], out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("lz4 frame length mismatch: got %d want %d", n, size)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown value frame 0x%02x", framed[0])
	}
}
