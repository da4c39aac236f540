// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/graphpod/pod/lib/pod"
	"github.com/graphpod/pod/lib/podfs"
	"github.com/graphpod/pod/lib/remap"
)

// decodeSnapshot decodes a top-level sequence of Objects (the same
// shape [pod.NewParser] treats a buffer as) into a [podfs.Snapshot],
// for `podump fs` to mount. Non-Object top-level values are skipped --
// podfs only models live Objects, not arbitrary PODs.
func decodeSnapshot(buf []byte, names *remap.GlobalTypeTable) (podfs.Snapshot, error) {
	parser := pod.NewParser(buf)
	var snapshot podfs.Snapshot

	for {
		if err := parser.Enter(); err != nil {
			if err == pod.ErrEnd {
				break
			}
			var shapeErr *pod.ShapeError
			if errors.As(err, &shapeErr) {
				// A scalar: Next has already stepped past it.
				continue
			}
			return podfs.Snapshot{}, fmt.Errorf("entering top-level value: %w", err)
		}

		objectType, objectID, ok := parser.CurrentObject()
		if !ok {
			if err := parser.Leave(); err != nil {
				return podfs.Snapshot{}, err
			}
			continue
		}

		properties, err := parser.Properties()
		if err != nil {
			return podfs.Snapshot{}, fmt.Errorf("reading properties of object %d: %w", objectID, err)
		}

		values := make(map[string]string, len(properties))
		for _, prop := range properties {
			values[names.NameOf(prop.Key)] = formatPropertyValue(prop.ValueType, prop.Value)
		}

		snapshot.Objects = append(snapshot.Objects, podfs.ObjectSnapshot{
			ID:         objectID,
			Type:       names.NameOf(objectType),
			Properties: values,
		})

		if err := parser.Leave(); err != nil {
			return podfs.Snapshot{}, err
		}
	}

	return snapshot, nil
}

// formatPropertyValue renders a property's scalar value as a display
// string for podfs, trimmed to the tags property values commonly
// carry. Numbers and bools are formatted as podinspect formats a
// scalar leaf node; strings are returned unquoted.
func formatPropertyValue(tag pod.Tag, body []byte) string {
	valueParser := pod.NewParser(wrapTopLevel(tag, body))
	switch tag {
	case pod.TagBool:
		v, err := valueParser.GetBool()
		if err != nil {
			return "<malformed bool>"
		}
		return fmt.Sprintf("%t", v)
	case pod.TagInt:
		v, err := valueParser.GetInt()
		if err != nil {
			return "<malformed int>"
		}
		return fmt.Sprintf("%d", v)
	case pod.TagLong:
		v, err := valueParser.GetLong()
		if err != nil {
			return "<malformed long>"
		}
		return fmt.Sprintf("%d", v)
	case pod.TagFloat:
		v, err := valueParser.GetFloat()
		if err != nil {
			return "<malformed float>"
		}
		return fmt.Sprintf("%g", v)
	case pod.TagDouble:
		v, err := valueParser.GetDouble()
		if err != nil {
			return "<malformed double>"
		}
		return fmt.Sprintf("%g", v)
	case pod.TagString:
		v, err := valueParser.GetString()
		if err != nil {
			return "<malformed string>"
		}
		return v
	default:
		return fmt.Sprintf("%d byte(s)", len(body))
	}
}

// wrapTopLevel reconstructs an 8-byte header around a bare value body
// so a fresh [pod.Parser] can read it with [pod.Parser.Next] (which
// expects a self-delimiting, already-tagged buffer) followed by the
// matching Get* call -- mirroring podinspect.wrapAsChild's same need,
// since property values are handed to us post-header-strip by
// [pod.Parser.Properties].
func wrapTopLevel(tag pod.Tag, body []byte) []byte {
	header := make([]byte, pod.HeaderSize)
	putLE32(header[0:4], uint32(len(body)))
	putLE32(header[4:8], uint32(tag))
	buf := append(header, body...)
	if pad := (8 - len(body)%8) % 8; pad != 0 {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
