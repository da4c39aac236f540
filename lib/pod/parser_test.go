// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"errors"
	"log/slog"
	"testing"
)

func buildSimpleObject(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 256)
	b := NewBuilder(buf)
	if err := b.OpenObject(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := b.OpenProperty(10, PropRead|PropWrite); err != nil {
		t.Fatal(err)
	}
	if err := b.Int(100); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil { // close Property
		t.Fatal(err)
	}
	if err := b.OpenProperty(20, PropRead); err != nil {
		t.Fatal(err)
	}
	if err := b.String("value"); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil { // close Property
		t.Fatal(err)
	}
	if err := b.Close(); err != nil { // close Object
		t.Fatal(err)
	}
	if b.Overflowed() {
		t.Fatal("unexpected overflow")
	}
	return b.Bytes()
}

func TestParserObjectPropertyLookup(t *testing.T) {
	data := buildSimpleObject(t)

	p := NewParser(data)
	tag, body, err := p.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if tag != TagObject {
		t.Fatalf("tag = %s, want Object", tag)
	}
	if err := p.enterBody(tag, body); err != nil {
		t.Fatalf("enterBody: %v", err)
	}
	objType, objID, ok := p.CurrentObject()
	if !ok || objType != 1 || objID != 2 {
		t.Fatalf("CurrentObject = (%d, %d, %v), want (1, 2, true)", objType, objID, ok)
	}

	prop, ok, err := p.FindProp(20)
	if err != nil {
		t.Fatalf("FindProp: %v", err)
	}
	if !ok {
		t.Fatal("expected to find property 20")
	}
	if prop.ValueType != TagString {
		t.Fatalf("ValueType = %s, want String", prop.ValueType)
	}

	props, err := p.Properties()
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("len(Properties) = %d, want 2", len(props))
	}
	if props[0].Key != 10 || props[1].Key != 20 {
		t.Fatalf("Properties order = %d, %d; want 10, 20", props[0].Key, props[1].Key)
	}
}

func TestParserFindPropMissing(t *testing.T) {
	data := buildSimpleObject(t)
	p := NewParser(data)
	tag, body, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.enterBody(tag, body); err != nil {
		t.Fatal(err)
	}
	_, ok, err := p.FindProp(999)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected FindProp to report not found")
	}
}

func TestParserEndOfContainer(t *testing.T) {
	buf := make([]byte, 64)
	b := NewBuilder(buf)
	if err := b.Int(1); err != nil {
		t.Fatal(err)
	}
	p := NewParser(b.Bytes())
	if _, _, err := p.Next(); err != nil {
		t.Fatalf("first Next: %v", err)
	}
	_, _, err := p.Next()
	if !errors.Is(err, ErrEnd) {
		t.Fatalf("second Next err = %v, want ErrEnd", err)
	}
}

func TestParserRejectsTruncatedHeader(t *testing.T) {
	p := NewParser([]byte{1, 2, 3})
	_, _, err := p.Next()
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestParserRejectsOverrunningChildSize(t *testing.T) {
	hdr := make([]byte, HeaderSize)
	putHeader(hdr, header{size: 1000, tag: TagInt})
	p := NewParser(hdr)
	_, _, err := p.Next()
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError for overrunning body size, got %v", err)
	}
}

func TestParserLeaveWithoutEnter(t *testing.T) {
	p := NewParser(nil)
	if err := p.Leave(); err == nil {
		t.Fatal("expected error leaving the implicit top frame")
	}
}

func TestParserDuplicateKeyFirstWins(t *testing.T) {
	buf := make([]byte, 256)
	b := NewBuilder(buf)
	if err := b.OpenObject(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.OpenProperty(5, PropRead); err != nil {
		t.Fatal(err)
	}
	if err := b.Int(1); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.OpenProperty(5, PropRead); err != nil {
		t.Fatal(err)
	}
	if err := b.Int(2); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	p := NewParser(b.Bytes())
	tag, body, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.enterBody(tag, body); err != nil {
		t.Fatal(err)
	}

	var loggedCount int
	p.SetDuplicateKeyLogger(func(_ *slog.Logger, _ uint32) { loggedCount++ })

	prop, ok, err := p.FindProp(5)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected property 5")
	}
	v, err := GetValues(prop.ValueType, prop.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Default) != 4 || v.Default[0] != 1 {
		t.Fatalf("default = %v, want the first occurrence's Int(1)", v.Default)
	}
	if loggedCount != 1 {
		t.Fatalf("duplicate key logger called %d times, want 1", loggedCount)
	}
}
