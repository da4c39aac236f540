// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"fmt"

	"github.com/graphpod/pod/lib/pod"
)

// FromV0 walks a v0-encoded POD value (tag, body) and re-encodes it
// into b using the current representation, translating every Id value
// and Object (type, id) pair through table. Grounded on
// protocol-native.c's remap_to_v2 (named there from the v0 module's
// own point of view: its job is translating legacy input "to" the
// format this package calls current throughout).
//
// Choice-valued properties round-trip as a nested Choice POD on both
// sides; see DESIGN.md's "v0 Choice/Prop layout" note for why this
// package does not reproduce the historical flat spa_pod_prop_body0
// inline-alternatives layout bit-for-bit.
func FromV0(tag pod.Tag, body []byte, table *ClientTypeTable, b *pod.Builder) error {
	switch tag {
	case pod.TagID:
		if len(body) < 4 {
			return pod.Malformed(0, "id body too short")
		}
		globalID, err := table.FromV0(leUint32(body))
		if err != nil {
			return err
		}
		return b.ID(globalID)

	case pod.TagChoice:
		return fromV0Choice(body, table, b)

	case pod.TagObject:
		return fromV0Object(body, table, b)

	case pod.TagStruct:
		return fromV0Struct(body, table, b)

	case pod.TagArray:
		return fromV0Array(body, table, b)

	default:
		// Every other tag is version-agnostic: copy verbatim.
		return b.Primitive(tag, body)
	}
}

func fromV0Array(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	if len(body) < 8 {
		return pod.Malformed(0, "array body shorter than its (child_size, child_type) prefix")
	}
	childSize := leUint32(body[0:4])
	childType := pod.Tag(leUint32(body[4:8]))
	elements := body[8:]

	if err := b.OpenArray(childType, childSize); err != nil {
		return err
	}
	if childType != pod.TagID || childSize != 4 {
		for off := uint32(0); off < uint32(len(elements)); off += childSize {
			if err := b.Raw(elements[off : off+childSize]); err != nil {
				return err
			}
		}
		return b.Close()
	}
	for off := uint32(0); off < uint32(len(elements)); off += 4 {
		globalID, err := table.FromV0(leUint32(elements[off : off+4]))
		if err != nil {
			return err
		}
		idBody := make([]byte, 4)
		putLE32(idBody, globalID)
		if err := b.Raw(idBody); err != nil {
			return err
		}
	}
	return b.Close()
}

func fromV0Struct(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	if err := b.OpenStruct(); err != nil {
		return err
	}
	p := pod.NewParser(body)
	for {
		tag, child, err := p.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}
		if err := FromV0(tag, child, table, b); err != nil {
			return err
		}
	}
	return b.Close()
}

func fromV0Choice(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	choiceType, flags, childType, childSize, err := choicePrefix(body)
	if err != nil {
		return err
	}
	elements, err := pod.ChoiceElements(body)
	if err != nil {
		return err
	}

	if childType == pod.TagID {
		if err := b.OpenChoice(choiceType, flags, pod.TagID, 4); err != nil {
			return err
		}
		for _, elem := range elements {
			globalID, err := table.FromV0(leUint32(elem))
			if err != nil {
				return err
			}
			idBody := make([]byte, 4)
			putLE32(idBody, globalID)
			if err := b.Raw(idBody); err != nil {
				return err
			}
		}
		return b.Close()
	}

	if err := b.OpenChoice(choiceType, flags, childType, childSize); err != nil {
		return err
	}
	for _, elem := range elements {
		if err := b.Raw(elem); err != nil {
			return err
		}
	}
	return b.Close()
}

// fromV0Object translates an Object value, handling the type/id field
// swap (grounded on remap_to_v2's SPA_TYPE_Object case) and the
// Format media-type/subtype special case (grounded on the same
// function's count<2 bare-Id branch).
func fromV0Object(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	v0Type, v0ID, children, err := objectPrefix(body)
	if err != nil {
		return err
	}

	// The v0 wire swaps the two header fields relative to the current
	// encoding: this payload's "type" field carries what the current
	// format calls the object id, and vice versa. Node commands are the
	// one exception (command.go): detected by translating the raw v0
	// "type" field and checking whether it names Command:Node, mirroring
	// the original's untranslated comparison against the same field.
	globalObjectID, err := table.FromV0(v0Type)
	if err != nil {
		return err
	}
	if isCommandNodeObjectType(table, globalObjectID) {
		return fromV0CommandNode(v0ID, children, table, b)
	}
	globalObjectType, err := table.FromV0(v0ID)
	if err != nil {
		return err
	}

	if err := b.OpenObject(globalObjectType, globalObjectID); err != nil {
		return err
	}

	mediaType, mediaSubtype, formatOK := formatMediaKeys(table)
	isFormat := formatOK && isFormatObjectType(table, globalObjectType)
	formatFieldIndex := 0

	p := pod.NewParser(children)
	for {
		childTag, childBody, err := p.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}

		if isFormat && formatFieldIndex < 2 && childTag == pod.TagID {
			key := mediaType
			if formatFieldIndex == 1 {
				key = mediaSubtype
			}
			formatFieldIndex++
			globalIDValue, err := table.FromV0(leUint32(childBody))
			if err != nil {
				return err
			}
			if err := b.OpenProperty(key, pod.PropRead); err != nil {
				return err
			}
			if err := b.ID(globalIDValue); err != nil {
				return err
			}
			if err := b.Close(); err != nil {
				return err
			}
			continue
		}

		if childTag != pod.TagProperty {
			return fmt.Errorf("remap: v0 object child is %s, expected Property", childTag)
		}
		if err := fromV0Property(childBody, table, b); err != nil {
			return err
		}
	}
	return b.Close()
}

func fromV0Property(propertyBody []byte, table *ClientTypeTable, b *pod.Builder) error {
	if len(propertyBody) < 8 {
		return pod.Malformed(0, "v0 property body shorter than its (key, flags) prefix")
	}
	v0Key := leUint32(propertyBody[0:4])
	v0Flags := leUint32(propertyBody[4:8])

	globalKey, err := table.FromV0(v0Key)
	if err != nil {
		return err
	}

	pv := pod.NewParser(propertyBody[8:])
	valueTag, valueBody, err := pv.Next()
	if err != nil {
		return err
	}

	if err := b.OpenProperty(globalKey, pod.PropertyFlag(v0Flags)); err != nil {
		return err
	}
	if err := FromV0(valueTag, valueBody, table, b); err != nil {
		return err
	}
	return b.Close()
}
