// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podcapture

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compressor applied to a frame body
// before it was written to a capture file.
type CompressionTag uint8

const (
	// CompressionNone means Frame.Body is stored uncompressed.
	CompressionNone CompressionTag = 0
	// CompressionLZ4 is the fast default for frame bodies not known
	// to be text-like (video/audio buffers, raw POD structs).
	CompressionLZ4 CompressionTag = 1
	// CompressionZstd gives a better ratio for text-like bodies
	// (Format/Props objects made mostly of strings and small ints).
	CompressionZstd CompressionTag = 2
)

func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// compressThreshold is the smallest body size worth attempting to
// compress; below it, per-frame compressor overhead outweighs any
// saving.
const compressThreshold = 256

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("podcapture: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("podcapture: zstd decoder initialization failed: " + err.Error())
	}
}

// selectCompression probes body and returns the tag and the encoded
// bytes to store. Only one compressor is tried: zstd when isTextLike
// reports a body known to be mostly strings/properties (a Format or
// Props object), lz4 otherwise. It falls back to CompressionNone when
// body is below the threshold or the chosen compressor does not
// shrink it.
func selectCompression(body []byte, isTextLike bool) (CompressionTag, []byte) {
	if len(body) < compressThreshold {
		return CompressionNone, body
	}

	if isTextLike {
		if compressed := zstdEncoder.EncodeAll(body, nil); len(compressed) < len(body) {
			return CompressionZstd, compressed
		}
		return CompressionNone, body
	}

	bound := lz4.CompressBlockBound(len(body))
	destination := make([]byte, bound)
	written, err := lz4.CompressBlock(body, destination, nil)
	if err == nil && written > 0 && written < len(body) {
		return CompressionLZ4, destination[:written]
	}
	return CompressionNone, body
}

// decompressBody reverses selectCompression, given the original
// uncompressed size recorded in the frame envelope.
func decompressBody(tag CompressionTag, data []byte, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(data, destination)
		if err != nil {
			return nil, fmt.Errorf("podcapture: lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("podcapture: lz4 decompress: got %d bytes, want %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("podcapture: zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("podcapture: zstd decompress: got %d bytes, want %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("podcapture: unsupported compression tag %d", tag)
	}
}
