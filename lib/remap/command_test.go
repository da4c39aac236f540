// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"testing"

	"github.com/graphpod/pod/lib/pod"
)

// FromV0 hardcodes a Node command object's current-format type field
// to 0 and carries only the translated v0 id field into the output's
// id slot, bypassing the general type/id swap entirely.
func TestFromV0CommandNodeHardcodesType(t *testing.T) {
	client := newTestTables([]string{
		commandNodeObjectTypeName,    // global 0, the v0 "type" field's target
		"Spa:Enum:NodeCommand:Start", // global 1, the command id
	})

	// v0 (type, id) = (0, 1): type field names Command:Node once
	// translated, triggering the special case.
	v0Body := objectBodyV0(0, 1)

	buf := make([]byte, 128)
	b := pod.NewBuilder(buf)
	if err := FromV0(pod.TagObject, v0Body, client, b); err != nil {
		t.Fatalf("FromV0: %v", err)
	}

	p := pod.NewParser(b.Bytes())
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	objType, objID, ok := p.CurrentObject()
	if !ok {
		t.Fatalf("CurrentObject not ok")
	}
	if objType != 0 {
		t.Fatalf("object type = %d, want 0 (hardcoded)", objType)
	}
	if objID != 1 {
		t.Fatalf("object id = %d, want 1 (translated from v0 id field)", objID)
	}
}

// Ordinary (non-Command:Node) objects still go through the general
// swap, confirming the special case doesn't misfire.
func TestFromV0NonCommandObjectUsesGeneralSwap(t *testing.T) {
	client := newTestTables([]string{
		commandNodeObjectTypeName,
		"Spa:Pod:Object:Param:Props",
		"param.props",
	})

	v0Body := objectBodyV0(2, 1)

	buf := make([]byte, 128)
	b := pod.NewBuilder(buf)
	if err := FromV0(pod.TagObject, v0Body, client, b); err != nil {
		t.Fatalf("FromV0: %v", err)
	}

	p := pod.NewParser(b.Bytes())
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	objType, objID, ok := p.CurrentObject()
	if !ok {
		t.Fatalf("CurrentObject not ok")
	}
	if objType != 1 || objID != 2 {
		t.Fatalf("CurrentObject = %d, %d, want 1, 2 (swapped)", objType, objID)
	}
}
