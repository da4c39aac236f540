// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podcapture

import (
	"errors"
	"fmt"
	"io"

	"github.com/graphpod/pod/lib/codec"
)

// Reader replays a sequence of Frames previously written by a
// [Writer], decompressing each body transparently.
type Reader struct {
	dec *codec.Decoder
}

// NewReader returns a Reader that decodes frames from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: codec.NewDecoder(r)}
}

// ErrReplayDone is returned by [Reader.ReadFrame] once every frame in
// the capture has been read.
var ErrReplayDone = errors.New("podcapture: no more frames")

// ReadFrame decodes the next frame and decompresses its body,
// returning [ErrReplayDone] when the underlying stream is exhausted.
func (r *Reader) ReadFrame() (*Frame, error) {
	var frame Frame
	if err := r.dec.Decode(&frame); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrReplayDone
		}
		return nil, fmt.Errorf("podcapture: decoding frame: %w", err)
	}

	body, err := decompressBody(frame.Compression, frame.Body, frame.RawSize)
	if err != nil {
		return nil, err
	}
	frame.Body = body
	frame.Compression = CompressionNone

	return &frame, nil
}

// ReadAll replays every remaining frame in the capture into a slice,
// for tests and small fixtures. Large captures should use ReadFrame
// in a loop instead.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		frame, err := r.ReadFrame()
		if errors.Is(err, ErrReplayDone) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
}
