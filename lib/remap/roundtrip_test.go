// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/graphpod/pod/lib/pod"
)

// --- v0 fixture encoders, built directly with encoding/binary so
// these tests exercise remap without depending on pod.Builder for the
// v0 side (remap's whole job is bridging the two wire shapes).

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func align8(n int) int { return (n + 7) &^ 7 }

// taggedV0 encodes one complete header-delimited POD: (size, tag,
// body, pad).
func taggedV0(tag pod.Tag, body []byte) []byte {
	out := make([]byte, 8+align8(len(body)))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[4:8], uint32(tag))
	copy(out[8:], body)
	return out
}

func floatBodyV0(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func propertyV0(key, flags uint32, valueTag pod.Tag, valueBody []byte) []byte {
	body := append(le32(key), le32(flags)...)
	return append(body, taggedV0(valueTag, valueBody)...)
}

func objectBodyV0(v0Type, v0ID uint32, children ...[]byte) []byte {
	body := append(le32(v0Type), le32(v0ID)...)
	for _, c := range children {
		body = append(body, taggedV0(pod.TagProperty, c)...)
	}
	return body
}

func newTestTables(names []string) *ClientTypeTable {
	global := NewGlobalTypeTable(names)
	client := NewClientTypeTable(global)
	client.Update(0, names)
	return client
}

func TestFromV0ObjectSwapsTypeAndID(t *testing.T) {
	// Global ids: 0 = the object's current "type", 1 = its current
	// "id", 2 = a property key. The v0 wire carries them swapped: its
	// "type" field holds what the current format calls the id, and
	// vice versa.
	client := newTestTables([]string{
		"Spa:Pod:Object:Param:Props",
		"param.props",
		"prop.key.volume",
	})

	v0Body := objectBodyV0(1, 0, propertyV0(2, uint32(pod.PropRead), pod.TagFloat, floatBodyV0(0.5)))

	buf := make([]byte, 256)
	b := pod.NewBuilder(buf)
	if err := FromV0(pod.TagObject, v0Body, client, b); err != nil {
		t.Fatalf("FromV0: %v", err)
	}
	if b.Overflowed() {
		t.Fatalf("builder overflowed, need %d bytes", b.Required())
	}

	p := pod.NewParser(b.Bytes())
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	objType, objID, ok := p.CurrentObject()
	if !ok || objType != 0 || objID != 1 {
		t.Fatalf("CurrentObject() = %d, %d, %v; want 0, 1, true", objType, objID, ok)
	}

	prop, found, err := p.FindProp(2)
	if err != nil || !found {
		t.Fatalf("FindProp(2) = %v, %v, %v", prop, found, err)
	}
	if prop.ValueType != pod.TagFloat {
		t.Fatalf("property value type = %s, want Float", prop.ValueType)
	}
	got := math.Float32frombits(binary.LittleEndian.Uint32(prop.Value))
	if got != 0.5 {
		t.Fatalf("property value = %v, want 0.5", got)
	}
}

func TestToV0ObjectSwapsTypeAndID(t *testing.T) {
	client := newTestTables([]string{
		"Spa:Pod:Object:Param:Props",
		"param.props",
		"prop.key.volume",
	})

	buf := make([]byte, 256)
	cb := pod.NewBuilder(buf)
	if err := cb.OpenObject(0, 1); err != nil {
		t.Fatalf("OpenObject: %v", err)
	}
	if err := cb.OpenProperty(2, pod.PropRead); err != nil {
		t.Fatalf("OpenProperty: %v", err)
	}
	if err := cb.Float(0.5); err != nil {
		t.Fatalf("Float: %v", err)
	}
	if err := cb.Close(); err != nil {
		t.Fatalf("Close property: %v", err)
	}
	if err := cb.Close(); err != nil {
		t.Fatalf("Close object: %v", err)
	}

	p := pod.NewParser(cb.Bytes())
	tag, body, err := p.Next()
	if err != nil || tag != pod.TagObject {
		t.Fatalf("Next() = %v, %v, want TagObject", tag, err)
	}

	out := make([]byte, 256)
	ob := pod.NewBuilder(out)
	if err := ToV0(tag, body, client, ob); err != nil {
		t.Fatalf("ToV0: %v", err)
	}
	if ob.Overflowed() {
		t.Fatalf("builder overflowed, need %d bytes", ob.Required())
	}

	v0Type, v0ID, children, err := objectPrefix(ob.Bytes()[8:])
	if err != nil {
		t.Fatalf("objectPrefix: %v", err)
	}
	if v0Type != 1 || v0ID != 0 {
		t.Fatalf("v0 (type, id) = (%d, %d), want (1, 0)", v0Type, v0ID)
	}

	vp := pod.NewParser(children)
	childTag, childBody, err := vp.Next()
	if err != nil || childTag != pod.TagProperty {
		t.Fatalf("first v0 child = %s, %v, want Property", childTag, err)
	}
	key := binary.LittleEndian.Uint32(childBody[0:4])
	if key != 2 {
		t.Fatalf("v0 property key = %d, want 2", key)
	}
}

func TestFromV0IDArrayTranslatesEveryElement(t *testing.T) {
	client := newTestTables([]string{"Spa:Id:A", "Spa:Id:B"})

	v0Body := append(le32(4), le32(uint32(pod.TagID))...)
	v0Body = append(v0Body, le32(1)...)
	v0Body = append(v0Body, le32(0)...)

	buf := make([]byte, 128)
	b := pod.NewBuilder(buf)
	if err := FromV0(pod.TagArray, v0Body, client, b); err != nil {
		t.Fatalf("FromV0: %v", err)
	}

	p := pod.NewParser(b.Bytes())
	if err := p.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	first, err := p.GetID()
	if err != nil || first != 1 {
		t.Fatalf("element 0 = %d, %v, want 1", first, err)
	}
	second, err := p.GetID()
	if err != nil || second != 0 {
		t.Fatalf("element 1 = %d, %v, want 0", second, err)
	}
}

func TestToV0CollapsesNoneChoiceToBareValue(t *testing.T) {
	client := newTestTables([]string{
		"Spa:Pod:Object:Param:Props",
		"param.props",
		"prop.key.volume",
	})

	buf := make([]byte, 256)
	cb := pod.NewBuilder(buf)
	if err := cb.OpenObject(0, 1); err != nil {
		t.Fatalf("OpenObject: %v", err)
	}
	if err := cb.OpenProperty(2, pod.PropRead); err != nil {
		t.Fatalf("OpenProperty: %v", err)
	}
	if err := cb.OpenChoice(pod.ChoiceNone, 0, pod.TagFloat, 4); err != nil {
		t.Fatalf("OpenChoice: %v", err)
	}
	if err := cb.Raw(floatBodyV0(0.5)); err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if err := cb.Close(); err != nil {
		t.Fatalf("Close choice: %v", err)
	}
	if err := cb.Close(); err != nil {
		t.Fatalf("Close property: %v", err)
	}
	if err := cb.Close(); err != nil {
		t.Fatalf("Close object: %v", err)
	}

	p := pod.NewParser(cb.Bytes())
	tag, body, err := p.Next()
	if err != nil || tag != pod.TagObject {
		t.Fatalf("Next() = %v, %v, want TagObject", tag, err)
	}

	out := make([]byte, 256)
	ob := pod.NewBuilder(out)
	if err := ToV0(tag, body, client, ob); err != nil {
		t.Fatalf("ToV0: %v", err)
	}
	if ob.Overflowed() {
		t.Fatalf("builder overflowed, need %d bytes", ob.Required())
	}

	_, _, children, err := objectPrefix(ob.Bytes()[8:])
	if err != nil {
		t.Fatalf("objectPrefix: %v", err)
	}
	vp := pod.NewParser(children)
	propTag, propBody, err := vp.Next()
	if err != nil || propTag != pod.TagProperty {
		t.Fatalf("first v0 child = %s, %v, want Property", propTag, err)
	}

	vv := pod.NewParser(propBody[8:])
	valueTag, valueBody, err := vv.Next()
	if err != nil {
		t.Fatalf("value Next: %v", err)
	}
	if valueTag != pod.TagFloat {
		t.Fatalf("collapsed value type = %s, want Float (bare, not wrapped in Choice)", valueTag)
	}
	if math.Float32frombits(binary.LittleEndian.Uint32(valueBody)) != 0.5 {
		t.Fatalf("collapsed value = %v, want 0.5", math.Float32frombits(binary.LittleEndian.Uint32(valueBody)))
	}
}

func TestRoundtripFromV0ThenToV0IsIdentity(t *testing.T) {
	client := newTestTables([]string{
		"Spa:Pod:Object:Param:Props",
		"param.props",
		"prop.key.volume",
	})

	original := objectBodyV0(1, 0, propertyV0(2, uint32(pod.PropRead), pod.TagFloat, floatBodyV0(0.5)))

	mid := make([]byte, 256)
	mb := pod.NewBuilder(mid)
	if err := FromV0(pod.TagObject, original, client, mb); err != nil {
		t.Fatalf("FromV0: %v", err)
	}

	p := pod.NewParser(mb.Bytes())
	tag, body, err := p.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	back := make([]byte, 256)
	bb := pod.NewBuilder(back)
	if err := ToV0(tag, body, client, bb); err != nil {
		t.Fatalf("ToV0: %v", err)
	}

	v0Type, v0ID, children, err := objectPrefix(bb.Bytes()[8:])
	if err != nil {
		t.Fatalf("objectPrefix: %v", err)
	}
	if v0Type != 1 || v0ID != 0 {
		t.Fatalf("round-tripped (type, id) = (%d, %d), want (1, 0)", v0Type, v0ID)
	}
	cp := pod.NewParser(children)
	childTag, childBody, err := cp.Next()
	if err != nil || childTag != pod.TagProperty {
		t.Fatalf("round-tripped child = %s, %v, want Property", childTag, err)
	}
	if binary.LittleEndian.Uint32(childBody[0:4]) != 2 {
		t.Fatalf("round-tripped property key = %d, want 2", binary.LittleEndian.Uint32(childBody[0:4]))
	}
}
