// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pod implements the POD (Plain Old Data) binary value codec: a
// self-describing, tagged, 8-byte-aligned wire format for primitive
// scalars, strings, byte arrays, rectangles, fractions, homogeneous
// arrays, heterogeneous structs, typed objects with keyed properties,
// and constrained Choice values.
//
// Every POD is an 8-byte header (size, type) followed by a body padded
// to an 8-byte boundary. [Builder] appends POD trees into a
// caller-supplied byte buffer; [Parser] walks an existing tree without
// copying scalar-sized reads.
//
// Key exports:
//
//   - [Tag] -- the closed set of wire type tags
//   - [Builder] -- append-only frame-based encoder
//   - [Parser] -- structural cursor-based decoder
//   - [ChoiceType] -- Choice constraint discipline (Range, Step, Enum, Flags)
//   - [FilterValues] -- intersects two Choices over the same key
//
// This package performs no I/O and depends on no other package in this
// module; it is safe to import from any context, including Choice
// filtering used during parameter negotiation.
package pod
