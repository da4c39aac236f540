// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"encoding/binary"

	"github.com/graphpod/pod/lib/pod"
)

// This file decodes the documented prefix shapes of Object and Choice
// bodies directly, the way the C walker dereferences spa_pod_object_body
// and spa_pod_prop_body0 fields in protocol-native.c. pod.Tag's doc
// comments are the public contract for these layouts (Object:
// object_type:u32, object_id:u32, N Property children; Choice:
// choice_type:u32, flags:u32, child_size:u32, child_type:u32, N raw
// elements); remap decodes them itself rather than driving a second
// [pod.Parser] cursor through an Enter/Leave dance for every level,
// since it rewrites every field anyway.

func leUint32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

func putLE32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// objectPrefix splits an Object's raw body into its (type, id) header
// fields and the remaining bytes, which are a sequence of tagged
// Property children readable with [pod.NewParser].
func objectPrefix(body []byte) (objectType, objectID uint32, children []byte, err error) {
	if len(body) < 8 {
		return 0, 0, nil, pod.Malformed(0, "object body shorter than its (type, id) prefix")
	}
	return leUint32(body[0:4]), leUint32(body[4:8]), body[8:], nil
}

// choicePrefix splits a Choice's raw body into its header fields and
// its element region.
func choicePrefix(body []byte) (choiceType pod.ChoiceType, flags uint32, childType pod.Tag, childSize uint32, err error) {
	if len(body) < 16 {
		return 0, 0, 0, 0, pod.Malformed(0, "choice body shorter than its prefix")
	}
	choiceType = pod.ChoiceType(leUint32(body[0:4]))
	flags = leUint32(body[4:8])
	childSize = leUint32(body[8:12])
	childType = pod.Tag(leUint32(body[12:16]))
	return choiceType, flags, childType, childSize, nil
}
