// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"fmt"

	"github.com/graphpod/pod/lib/pod"
)

// ToV0 walks a current-format POD value (tag, body) and re-encodes it
// into b using the legacy v0 representation, translating every Id
// value and Object (type, id) pair through table. Grounded on
// protocol-native.c's remap_from_v2 (named there from the v0 module's
// point of view: its job is translating internal data "from" the
// current format this package calls current throughout, into the
// legacy wire shape).
func ToV0(tag pod.Tag, body []byte, table *ClientTypeTable, b *pod.Builder) error {
	switch tag {
	case pod.TagID:
		if len(body) < 4 {
			return pod.Malformed(0, "id body too short")
		}
		clientIndex, err := table.ToV0(leUint32(body))
		if err != nil {
			return err
		}
		return b.ID(clientIndex)

	case pod.TagChoice:
		return toV0Choice(body, table, b)

	case pod.TagObject:
		return toV0Object(body, table, b)

	case pod.TagStruct:
		return toV0Struct(body, table, b)

	case pod.TagArray:
		return toV0Array(body, table, b)

	default:
		return b.Primitive(tag, body)
	}
}

func toV0Struct(body []byte, table *ClientTypeTable, b *pod.Builder) error {
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
		if err := ToV0(tag, child, table, b); err != nil {
			return err
		}
	}
	return b.Close()
}

func toV0Array(body []byte, table *ClientTypeTable, b *pod.Builder) error {
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
		clientIndex, err := table.ToV0(leUint32(elements[off : off+4]))
		if err != nil {
			return err
		}
		idBody := make([]byte, 4)
		putLE32(idBody, clientIndex)
		if err := b.Raw(idBody); err != nil {
			return err
		}
	}
	return b.Close()
}

func toV0Choice(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	choiceType, flags, childType, childSize, err := choicePrefix(body)
	if err != nil {
		return err
	}
	elements, err := pod.ChoiceElements(body)
	if err != nil {
		return err
	}

	if childType != pod.TagID {
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

	if err := b.OpenChoice(choiceType, flags, pod.TagID, 4); err != nil {
		return err
	}
	for _, elem := range elements {
		clientIndex, err := table.ToV0(leUint32(elem))
		if err != nil {
			return err
		}
		idBody := make([]byte, 4)
		putLE32(idBody, clientIndex)
		if err := b.Raw(idBody); err != nil {
			return err
		}
	}
	return b.Close()
}

// toV0Object is the inverse of fromV0Object: it reintroduces the
// type/id field swap and collapses the mediaType/mediaSubtype
// properties of a Format object back into two bare Id children. The
// Command/Node asymmetry (command.go) is specific to the from_v0
// direction and has no counterpart here: remap_from_v2, the original's
// current-to-v0 walker, applies the general swap uniformly to every
// object including Node commands.
func toV0Object(body []byte, table *ClientTypeTable, b *pod.Builder) error {
	globalObjectType, globalObjectID, children, err := objectPrefix(body)
	if err != nil {
		return err
	}

	v0Type, err := table.ToV0(globalObjectID)
	if err != nil {
		return err
	}
	v0ID, err := table.ToV0(globalObjectType)
	if err != nil {
		return err
	}
	if err := b.OpenObject(v0Type, v0ID); err != nil {
		return err
	}

	mediaType, mediaSubtype, formatOK := formatMediaKeys(table)
	isFormat := formatOK && isFormatObjectType(table, globalObjectType)

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
			return fmt.Errorf("remap: current object child is %s, expected Property", childTag)
		}
		if err := toV0PropertyOrBareID(childBody, isFormat, mediaType, mediaSubtype, table, b); err != nil {
			return err
		}
	}
	return b.Close()
}

// collapseNoneChoice reports whether a Choice value degenerates to a
// single ChoiceNone element, returning that element's tag and body if
// so.
func collapseNoneChoice(choiceBody []byte) (pod.Tag, []byte, bool, error) {
	choiceType, _, childType, _, err := choicePrefix(choiceBody)
	if err != nil {
		return 0, nil, false, err
	}
	if choiceType != pod.ChoiceNone {
		return 0, nil, false, nil
	}
	elements, err := pod.ChoiceElements(choiceBody)
	if err != nil {
		return 0, nil, false, err
	}
	if len(elements) != 1 {
		return 0, nil, false, nil
	}
	return childType, elements[0], true, nil
}

func toV0PropertyOrBareID(propertyBody []byte, isFormat bool, mediaType, mediaSubtype uint32, table *ClientTypeTable, b *pod.Builder) error {
	if len(propertyBody) < 8 {
		return pod.Malformed(0, "current property body shorter than its (key, flags) prefix")
	}
	globalKey := leUint32(propertyBody[0:4])
	flags := leUint32(propertyBody[4:8])

	pv := pod.NewParser(propertyBody[8:])
	valueTag, valueBody, err := pv.Next()
	if err != nil {
		return err
	}

	// A Choice with choice_type=None collapses back to a bare value:
	// the Property carries the single element directly rather than a
	// nested Choice.
	if valueTag == pod.TagChoice {
		if collapsedTag, collapsedBody, collapsed, err := collapseNoneChoice(valueBody); err != nil {
			return err
		} else if collapsed {
			valueTag, valueBody = collapsedTag, collapsedBody
		}
	}

	if isFormat && (globalKey == mediaType || globalKey == mediaSubtype) && valueTag == pod.TagID {
		clientIndex, err := table.ToV0(leUint32(valueBody))
		if err != nil {
			return err
		}
		return b.ID(clientIndex)
	}

	v0Key, err := table.ToV0(globalKey)
	if err != nil {
		return err
	}
	if err := b.OpenProperty(v0Key, pod.PropertyFlag(flags)); err != nil {
		return err
	}
	if err := ToV0(valueTag, valueBody, table, b); err != nil {
		return err
	}
	return b.Close()
}
