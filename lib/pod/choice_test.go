// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"encoding/binary"
	"errors"
	"testing"
)

func int32Body(v int32) []byte {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint32(body, uint32(v))
	return body
}

func buildEnumChoice(t *testing.T, values ...int32) (Tag, []byte) {
	t.Helper()
	buf := make([]byte, 128)
	b := NewBuilder(buf)
	if err := b.OpenChoice(ChoiceEnum, 0, TagInt, 4); err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		if err := b.Raw(int32Body(v)); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	p := NewParser(b.Bytes())
	tag, body, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	return tag, body
}

func TestGetValuesBareValueSynthesizesNone(t *testing.T) {
	buf := make([]byte, 32)
	b := NewBuilder(buf)
	if err := b.Int(7); err != nil {
		t.Fatal(err)
	}
	p := NewParser(b.Bytes())
	tag, body, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	values, err := GetValues(tag, body)
	if err != nil {
		t.Fatal(err)
	}
	if values.ChoiceType != ChoiceNone || values.Count != 1 {
		t.Fatalf("GetValues on bare Int = %+v, want synthesized None/1", values)
	}
	if int32(binary.LittleEndian.Uint32(values.Default)) != 7 {
		t.Fatalf("Default = %v, want encoding of 7", values.Default)
	}
}

func TestGetValuesChoiceEnum(t *testing.T) {
	tag, body := buildEnumChoice(t, 1, 2, 3)
	if tag != TagChoice {
		t.Fatalf("tag = %s, want Choice", tag)
	}
	values, err := GetValues(tag, body)
	if err != nil {
		t.Fatal(err)
	}
	if values.ChoiceType != ChoiceEnum || values.Count != 3 {
		t.Fatalf("values = %+v, want Enum/3", values)
	}
	elements, err := ChoiceElements(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(elements) != 3 {
		t.Fatalf("len(elements) = %d, want 3", len(elements))
	}
	for i, want := range []int32{1, 2, 3} {
		if got := int32(binary.LittleEndian.Uint32(elements[i])); got != want {
			t.Errorf("elements[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestFilterEnumEnumIntersection(t *testing.T) {
	_, aBody := buildEnumChoice(t, 1, 2, 3)
	_, bBody := buildEnumChoice(t, 2, 3, 4)

	values, elements, err := FilterValues(1, TagChoice, aBody, TagChoice, bBody)
	if err != nil {
		t.Fatalf("FilterValues: %v", err)
	}
	if values.Count != 2 {
		t.Fatalf("Count = %d, want 2", values.Count)
	}
	got := make([]int32, len(elements))
	for i, e := range elements {
		got[i] = int32(binary.LittleEndian.Uint32(e))
	}
	if got[0] != 2 || got[1] != 3 {
		t.Fatalf("intersection = %v, want [2 3]", got)
	}
}

func TestFilterEnumEnumNoIntersection(t *testing.T) {
	_, aBody := buildEnumChoice(t, 1, 2)
	_, bBody := buildEnumChoice(t, 3, 4)

	_, _, err := FilterValues(1, TagChoice, aBody, TagChoice, bBody)
	var noInt *NoIntersectionError
	if !errors.As(err, &noInt) {
		t.Fatalf("expected *NoIntersectionError, got %v", err)
	}
}

func buildRangeChoice(t *testing.T, def, min, max int32) (Tag, []byte) {
	t.Helper()
	buf := make([]byte, 128)
	b := NewBuilder(buf)
	if err := b.OpenChoice(ChoiceRange, 0, TagInt, 4); err != nil {
		t.Fatal(err)
	}
	for _, v := range []int32{def, min, max} {
		if err := b.Raw(int32Body(v)); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	p := NewParser(b.Bytes())
	tag, body, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	return tag, body
}

func TestFilterRangeRangeIntersection(t *testing.T) {
	_, aBody := buildRangeChoice(t, 5, 0, 10)
	_, bBody := buildRangeChoice(t, 8, 3, 8)

	values, elements, err := FilterValues(1, TagChoice, aBody, TagChoice, bBody)
	if err != nil {
		t.Fatalf("FilterValues: %v", err)
	}
	if values.ChoiceType != ChoiceRange || len(elements) != 3 {
		t.Fatalf("unexpected result %+v / %v", values, elements)
	}
	def := int32(binary.LittleEndian.Uint32(elements[0]))
	min := int32(binary.LittleEndian.Uint32(elements[1]))
	max := int32(binary.LittleEndian.Uint32(elements[2]))
	if min != 3 || max != 8 {
		t.Fatalf("intersected range = [%d,%d], want [3,8]", min, max)
	}
	if def != 8 {
		t.Fatalf("intersected default = %d, want 8", def)
	}
}

func TestFilterRangeRangeEmptyIntersection(t *testing.T) {
	_, aBody := buildRangeChoice(t, 1, 0, 2)
	_, bBody := buildRangeChoice(t, 9, 5, 10)

	_, _, err := FilterValues(1, TagChoice, aBody, TagChoice, bBody)
	var noInt *NoIntersectionError
	if !errors.As(err, &noInt) {
		t.Fatalf("expected *NoIntersectionError, got %v", err)
	}
}
