// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import "github.com/graphpod/pod/lib/pod"

// commandNodeObjectTypeName is the well-known object type whose v0
// encoding does not follow the general Object type/id swap, grounded
// on protocol-native.c's remap_to_v2 SPA_TYPE_COMMAND_Node branch:
// `push_object(builder, 0, type_to_v2(client, ..., b->id))` -- the
// current-format object's type field is hardcoded to 0 and its id
// field carries only the translated v0 id, with the v0 "type" field
// otherwise unused. remap_from_v2, the reverse (current-to-v0) walker,
// has no matching branch: it swaps Node commands the same as any other
// object. See to_v0.go's toV0Object doc comment.
//
// The original detects this case from the untranslated raw v0 "type"
// wire field compared directly against the global constant. This
// package instead translates that same field through the client table
// and compares its resolved name, avoiding a second, translation-free
// code path for one field; see DESIGN.md's "Command object v0 layout"
// note.
const commandNodeObjectTypeName = "Spa:Pod:Object:Command:Node"

func isCommandNodeObjectType(table *ClientTypeTable, globalObjectType uint32) bool {
	return table.global.NameOf(globalObjectType) == commandNodeObjectTypeName
}

// fromV0CommandNode re-encodes a Node command object read off the v0
// wire: the current-format object's type field is hardcoded to 0 and
// its id field carries the translated v0 id (the v0 "type" field was
// read only to recognise this case by fromV0Object and is otherwise
// discarded).
func fromV0CommandNode(v0ID uint32, children []byte, table *ClientTypeTable, b *pod.Builder) error {
	globalID, err := table.FromV0(v0ID)
	if err != nil {
		return err
	}
	if err := b.OpenObject(0, globalID); err != nil {
		return err
	}
	p := pod.NewParser(children)
	for {
		childTag, childBody, err := p.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}
		if childTag != pod.TagProperty {
			return pod.Shape("command object child is %s, expected Property", childTag)
		}
		if err := fromV0Property(childBody, table, b); err != nil {
			return err
		}
	}
	return b.Close()
}
