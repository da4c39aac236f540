// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import "encoding/binary"

// HeaderSize is the fixed size in bytes of every POD header: a
// size:u32 field followed by a type:u32 field, little-endian.
const HeaderSize = 8

// header is the 8-byte fixed prefix of every POD value.
type header struct {
	size uint32
	tag  Tag
}

// putHeader writes h into buf[:8], little-endian. The caller must
// ensure len(buf) >= HeaderSize.
func putHeader(buf []byte, h header) {
	binary.LittleEndian.PutUint32(buf[0:4], h.size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.tag))
}

// getHeader reads a header from the start of buf. It returns a
// [*MalformedError] (via [Malformed]) if buf is shorter than HeaderSize.
func getHeader(buf []byte, offset int) (header, error) {
	if len(buf) < HeaderSize {
		return header{}, Malformed(offset, "truncated header: %d bytes remaining, need %d", len(buf), HeaderSize)
	}
	return header{
		size: binary.LittleEndian.Uint32(buf[0:4]),
		tag:  Tag(binary.LittleEndian.Uint32(buf[4:8])),
	}, nil
}

// align8 rounds n up to the next multiple of 8.
func align8(n int) int {
	return (n + 7) &^ 7
}

// align8u rounds n up to the next multiple of 8, operating on uint32
// sizes as they appear on the wire. Callers must ensure n does not
// overflow uint32 after rounding.
func align8u(n uint32) uint32 {
	return (n + 7) &^ 7
}

// footprint returns the total on-wire size of a POD with the given
// body size: 8 + align8(bodySize) -- the header plus the body padded
// to an 8-byte boundary.
func footprint(bodySize uint32) int {
	return HeaderSize + int(align8u(bodySize))
}
