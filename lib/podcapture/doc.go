// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package podcapture records and replays sequences of POD frames to
// and from disk, for test fixtures and offline debugging of a POD
// producer/consumer pair.
//
// A capture file is a sequence of CBOR-encoded [Frame] envelopes, each
// wrapping a raw POD body (as produced by [lib/pod.Builder]) together
// with its timestamp, direction, and originating client id. Frame
// bodies above a size threshold are transparently compressed
// (compress.go). A capture stream can be encrypted at rest by wrapping
// it with [EncryptWriter] (encrypt.go); [Writer] does not encrypt on
// its own. A sqlite index (store.go) tracks every capture file an
// operator has recorded, for `podump capture captures`.
//
// Key exports:
//
//   - [Frame] -- one recorded POD message
//   - [Writer] and [NewWriter] -- record frames to a capture file
//   - [Reader] and [NewReader] -- replay frames from a capture file
//   - [Index] and [OpenIndex] -- the sqlite capture catalog
package podcapture
