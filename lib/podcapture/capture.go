// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podcapture

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/graphpod/pod/lib/codec"
)

// Direction records which side of a connection produced a Frame.
type Direction string

const (
	// DirectionOutbound is a message this process sent.
	DirectionOutbound Direction = "outbound"
	// DirectionInbound is a message this process received.
	DirectionInbound Direction = "inbound"
)

// Frame is one recorded POD message: a timestamp, which direction it
// travelled, which client (by global object id) it concerns, and the
// POD body itself -- compressed per compress.go when it is large
// enough to be worth it.
type Frame struct {
	Timestamp   time.Time      `cbor:"ts"`
	Direction   Direction      `cbor:"dir"`
	ClientID    uint32         `cbor:"client_id"`
	Compression CompressionTag `cbor:"comp"`
	// RawSize is the uncompressed body length, needed to size the
	// decompression buffer and to validate decompressBody's output.
	RawSize int    `cbor:"raw_size"`
	Body    []byte `cbor:"body"`
}

// SessionID identifies one capture recording; it is the sqlite index
// key (store.go).
type SessionID string

// NewSessionID generates a fresh random capture session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Writer records a sequence of Frames to an underlying stream as CBOR
// values, one per WriteFrame call. CBOR values are self-delimiting, so no
// additional framing is needed -- a [Reader] on the same stream reads
// exactly one Frame per decode.
type Writer struct {
	enc *codec.Encoder
}

// NewWriter returns a Writer that appends encoded frames to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: codec.NewEncoder(w)}
}

// WriteFrame encodes a frame of direction/clientID/body recorded at
// the given timestamp, compressing body first when it is large enough
// to benefit (see compress.go). isTextLike should be true for bodies
// that are mostly Property/string content (Format, Props objects) and
// false for opaque Bytes/Array payloads.
func (w *Writer) WriteFrame(timestamp time.Time, direction Direction, clientID uint32, body []byte, isTextLike bool) error {
	tag, stored := selectCompression(body, isTextLike)
	frame := Frame{
		Timestamp:   timestamp,
		Direction:   direction,
		ClientID:    clientID,
		Compression: tag,
		RawSize:     len(body),
		Body:        stored,
	}
	if err := w.enc.Encode(&frame); err != nil {
		return fmt.Errorf("podcapture: encoding frame: %w", err)
	}
	return nil
}
