// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestBuilderPrimitiveInt(t *testing.T) {
	buf := make([]byte, 64)
	b := NewBuilder(buf)
	if err := b.Int(42); err != nil {
		t.Fatalf("Int: %v", err)
	}
	if b.Overflowed() {
		t.Fatal("unexpected overflow")
	}

	out := b.Bytes()
	if len(out) != 16 { // header(8) + body(4) padded to 8
		t.Fatalf("expected 16 bytes, got %d", len(out))
	}
	h, err := getHeader(out, 0)
	if err != nil {
		t.Fatalf("getHeader: %v", err)
	}
	if h.tag != TagInt {
		t.Errorf("tag = %s, want Int", h.tag)
	}
	if h.size != 4 {
		t.Errorf("size = %d, want 4", h.size)
	}
	if v := int32(binary.LittleEndian.Uint32(out[8:12])); v != 42 {
		t.Errorf("value = %d, want 42", v)
	}
}

func TestBuilderStructRoundCloseSizesHeader(t *testing.T) {
	buf := make([]byte, 128)
	b := NewBuilder(buf)
	if err := b.OpenStruct(); err != nil {
		t.Fatal(err)
	}
	if err := b.Int(1); err != nil {
		t.Fatal(err)
	}
	if err := b.String("hi"); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := b.Bytes()
	h, err := getHeader(out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h.tag != TagStruct {
		t.Errorf("tag = %s, want Struct", h.tag)
	}
	if int(h.size) != len(out)-HeaderSize {
		t.Errorf("struct size %d does not match body length %d", h.size, len(out)-HeaderSize)
	}
}

func TestBuilderOverflowTracksRequiredCapacity(t *testing.T) {
	small := make([]byte, 4)
	b := NewBuilder(small)
	if err := b.Int(1); err != nil {
		t.Fatalf("Int: %v", err)
	}
	if !b.Overflowed() {
		t.Fatal("expected overflow with a 4-byte buffer")
	}
	required := b.Required()
	if required != 16 {
		t.Fatalf("Required() = %d, want 16", required)
	}

	// Retry with exactly the reported capacity should succeed.
	retry := make([]byte, required)
	b2 := NewBuilder(retry)
	if err := b2.Int(1); err != nil {
		t.Fatalf("Int on retry: %v", err)
	}
	if b2.Overflowed() {
		t.Fatal("unexpected overflow on retry with Required() capacity")
	}
}

func TestBuilderArrayRejectsVariableChildType(t *testing.T) {
	b := NewBuilder(make([]byte, 64))
	if err := b.OpenArray(TagString, 0); err == nil {
		t.Fatal("expected error opening an Array of String children")
	}
}

func TestBuilderArrayHeterogeneousElementRejected(t *testing.T) {
	b := NewBuilder(make([]byte, 64))
	if err := b.OpenArray(TagInt, 4); err != nil {
		t.Fatal(err)
	}
	body := make([]byte, 8) // wrong size for an Int element
	if err := b.Raw(body); err == nil {
		t.Fatal("expected error appending a mis-sized Raw element")
	}
}

func TestBuilderPropertyOnlyLegalInsideObject(t *testing.T) {
	b := NewBuilder(make([]byte, 64))
	if err := b.OpenProperty(1, PropRead); err == nil {
		t.Fatal("expected error opening a Property outside an Object")
	}
}

func TestBuilderChoiceElementCountValidation(t *testing.T) {
	b := NewBuilder(make([]byte, 128))
	if err := b.OpenChoice(ChoiceRange, 0, TagInt, 4); err != nil {
		t.Fatal(err)
	}
	one := make([]byte, 4)
	if err := b.Raw(one); err != nil {
		t.Fatal(err)
	}
	if err := b.Raw(one); err != nil {
		t.Fatal(err)
	}
	// Only 2 elements pushed; Range requires exactly 3.
	var shapeErr *ShapeError
	if err := b.Close(); err == nil || !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError for incomplete Range choice, got %v", err)
	}
}

func TestBuilderCloseWithoutOpen(t *testing.T) {
	b := NewBuilder(make([]byte, 16))
	if err := b.Close(); err == nil {
		t.Fatal("expected error closing with no open frame")
	}
}
