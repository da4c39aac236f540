// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"encoding/binary"
	"math"
)

// frameKind identifies the kind of container an open Builder frame
// represents.
type frameKind int

const (
	frameStruct frameKind = iota
	frameArray
	frameObject
	frameChoice
	frameSequence
	frameProperty
)

// frame is Builder bookkeeping for one open container: the byte
// offset of its not-yet-sized header, and (for Array/Choice) the
// homogeneous element type/size its children must match.
type frame struct {
	kind        frameKind
	tag         Tag
	headerStart int
	bodyStart   int
	childType   Tag
	childSize   uint32
	elemCount   int
	choiceType  ChoiceType
}

// Builder appends POD trees into a caller-supplied byte buffer. It
// maintains a stack of open frames; [Builder.Close] patches a frame's
// size header from the current write cursor. A Builder binds to a
// buffer of fixed capacity: once an append would exceed
// it, the Builder enters an overflow state, continues tracking the
// logical cursor so the caller can learn the required capacity, but
// stops writing bytes.
//
// A Builder is not safe for concurrent use; it is meant to be used by
// a single goroutine constructing one message.
type Builder struct {
	buf      []byte
	capacity int
	pos      int
	overflow bool
	frames   []frame
}

// NewBuilder returns a Builder that writes into buf, treating len(buf)
// as the fixed capacity. buf's existing contents are ignored and will
// be overwritten as the Builder writes.
func NewBuilder(buf []byte) *Builder {
	return &Builder{buf: buf, capacity: len(buf)}
}

// Overflowed reports whether any append so far has exceeded the
// buffer's capacity.
func (b *Builder) Overflowed() bool { return b.overflow }

// Required returns the total number of bytes the outermost frame
// would need to complete without overflow. Valid at any point, but
// only meaningful as "the capacity to retry with" after the outermost
// frame has been closed.
func (b *Builder) Required() int { return b.pos }

// Bytes returns the encoded bytes written so far. It is only valid to
// call once every opened frame has been closed and [Builder.Overflowed]
// is false; otherwise the buffer is incomplete or was never fully
// written.
func (b *Builder) Bytes() []byte {
	return b.buf[:b.pos]
}

// appendRaw writes data at the current cursor if it fits within
// capacity, and advances the logical cursor by len(data) regardless.
func (b *Builder) appendRaw(data []byte) {
	n := len(data)
	if !b.overflow && b.pos+n <= b.capacity {
		copy(b.buf[b.pos:b.pos+n], data)
	} else {
		b.overflow = true
	}
	b.pos += n
}

// appendZero appends n zero bytes (alignment padding), respecting
// capacity the same way appendRaw does.
func (b *Builder) appendZero(n int) {
	if n <= 0 {
		return
	}
	if !b.overflow && b.pos+n <= b.capacity {
		for i := range b.buf[b.pos : b.pos+n] {
			b.buf[b.pos+i] = 0
		}
	} else {
		b.overflow = true
	}
	b.pos += n
}

// top returns the innermost open frame, or nil if the frame stack is
// empty.
func (b *Builder) top() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return &b.frames[len(b.frames)-1]
}

// openContainer writes a placeholder header (size=0) followed by
// prefix, then pushes a frame recording where the header and body
// begin so Close can patch the size later.
func (b *Builder) openContainer(tag Tag, kind frameKind, prefix []byte, childType Tag, childSize uint32) {
	headerStart := b.pos
	hdr := make([]byte, HeaderSize)
	putHeader(hdr, header{size: 0, tag: tag})
	b.appendRaw(hdr)
	bodyStart := b.pos
	b.appendRaw(prefix)
	b.frames = append(b.frames, frame{
		kind:        kind,
		tag:         tag,
		headerStart: headerStart,
		bodyStart:   bodyStart,
		childType:   childType,
		childSize:   childSize,
	})
}

// OpenStruct opens a Struct frame: a sequence of arbitrary tagged
// children, closed by [Builder.Close].
func (b *Builder) OpenStruct() error {
	b.openContainer(TagStruct, frameStruct, nil, 0, 0)
	return nil
}

// OpenArray opens an Array frame. childType must report a fixed size
// via [Tag.FixedSize]; elements are pushed with [Builder.Raw] and must
// all be exactly childSize bytes.
func (b *Builder) OpenArray(childType Tag, childSize uint32) error {
	if _, ok := childType.FixedSize(); !ok {
		return Shape("array child type %s is not a fixed-size primitive", childType)
	}
	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint32(prefix[0:4], childSize)
	binary.LittleEndian.PutUint32(prefix[4:8], uint32(childType))
	b.openContainer(TagArray, frameArray, prefix, childType, childSize)
	return nil
}

// OpenObject opens an Object frame: (object_type, object_id) followed
// by Property children, each opened via [Builder.OpenProperty].
func (b *Builder) OpenObject(objectType, objectID uint32) error {
	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint32(prefix[0:4], objectType)
	binary.LittleEndian.PutUint32(prefix[4:8], objectID)
	b.openContainer(TagObject, frameObject, prefix, 0, 0)
	return nil
}

// OpenChoice opens a Choice frame. choiceType constrains how many
// elements [Builder.Close] will expect (validated against
// b.top().elemCount when the frame closes for Range/Step/None);
// childType/childSize describe each homogeneous alternative, pushed
// via [Builder.Raw] exactly like an Array.
func (b *Builder) OpenChoice(choiceType ChoiceType, flags uint32, childType Tag, childSize uint32) error {
	if _, ok := childType.FixedSize(); !ok {
		return Shape("choice child type %s is not a fixed-size primitive", childType)
	}
	prefix := make([]byte, 16)
	binary.LittleEndian.PutUint32(prefix[0:4], uint32(choiceType))
	binary.LittleEndian.PutUint32(prefix[4:8], flags)
	binary.LittleEndian.PutUint32(prefix[8:12], childSize)
	binary.LittleEndian.PutUint32(prefix[12:16], uint32(childType))
	b.openContainer(TagChoice, frameChoice, prefix, childType, childSize)
	b.top().choiceType = choiceType
	return nil
}

// OpenSequence opens a Sequence frame: a timestamped control stream.
// Entries are appended with [Builder.AppendControl].
func (b *Builder) OpenSequence(unit uint32) error {
	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint32(prefix[0:4], unit)
	b.openContainer(TagSequence, frameSequence, prefix, 0, 0)
	return nil
}

// OpenProperty opens a Property frame. Property frames are legal only
// directly inside an Object frame; the caller
// pushes exactly one value (via a primitive method or a nested
// Open*/Close pair) before calling [Builder.Close].
func (b *Builder) OpenProperty(key uint32, flags PropertyFlag) error {
	parent := b.top()
	if parent == nil || parent.kind != frameObject {
		return Shape("OpenProperty is only legal directly inside an Object frame")
	}
	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint32(prefix[0:4], key)
	binary.LittleEndian.PutUint32(prefix[4:8], uint32(flags))
	b.openContainer(TagProperty, frameProperty, prefix, 0, 0)
	return nil
}

// Close pops the innermost frame, patches its size header from the
// current cursor, and emits alignment padding. Close is the only
// Builder operation that writes behind the cursor; after the
// outermost Close, the written bytes are immutable.
func (b *Builder) Close() error {
	if len(b.frames) == 0 {
		return Shape("close without a matching open")
	}
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]

	if f.kind == frameArray || f.kind == frameChoice {
		bodyLen := uint32(b.pos - f.bodyStart)
		if f.childSize > 0 && bodyLen%f.childSize != 0 {
			return Shape("%s body size %d is not a multiple of child size %d", f.tag, bodyLen, f.childSize)
		}
	}
	if f.kind == frameChoice && f.childSize > 0 {
		n := f.elemCount
		if exact, isExact := f.choiceType.exactElements(); isExact {
			if n != exact {
				return Shape("choice type %s requires exactly %d elements, got %d", f.choiceType, exact, n)
			}
		} else if n < f.choiceType.minElements() {
			return Shape("choice type %s requires at least %d elements, got %d", f.choiceType, f.choiceType.minElements(), n)
		}
	}

	size := uint32(b.pos - f.bodyStart)
	pad := int(align8u(size)) - int(size)
	b.appendZero(pad)

	if f.headerStart+HeaderSize <= b.capacity {
		hdr := make([]byte, HeaderSize)
		putHeader(hdr, header{size: size, tag: f.tag})
		copy(b.buf[f.headerStart:f.headerStart+HeaderSize], hdr)
	}
	return nil
}

// Primitive writes a fully tagged leaf value: an 8-byte header
// followed by body and alignment padding. Primitive is for children
// of Struct, Property, Sequence control entries, and top-level
// values; inside an Array or Choice frame use [Builder.Raw] instead,
// since array/choice elements carry no per-element header.
func (b *Builder) Primitive(tag Tag, body []byte) error {
	if top := b.top(); top != nil && (top.kind == frameArray || top.kind == frameChoice) {
		return Shape("use Raw to append %s elements inside a %s frame, not Primitive", tag, top.tag)
	}
	hdr := make([]byte, HeaderSize)
	putHeader(hdr, header{size: uint32(len(body)), tag: tag})
	b.appendRaw(hdr)
	b.appendRaw(body)
	pad := align8(len(body)) - len(body)
	b.appendZero(pad)
	return nil
}

// Raw appends an untagged, unheadered element inside an open Array or
// Choice frame. body must be exactly the frame's declared child size;
// a mismatch is a Shape violation caught before any bytes are written.
func (b *Builder) Raw(body []byte) error {
	top := b.top()
	if top == nil || (top.kind != frameArray && top.kind != frameChoice) {
		return Shape("Raw is only legal directly inside an Array or Choice frame")
	}
	if uint32(len(body)) != top.childSize {
		return Shape("raw element is %d bytes, frame expects %d", len(body), top.childSize)
	}
	b.appendRaw(body)
	top.elemCount++
	return nil
}

// AppendControl appends one Sequence control entry: an offset, then a
// fully self-delimiting POD value (its own header is written, unlike
// Array/Choice elements, since a control stream is heterogeneous).
// Legal only directly inside a Sequence frame.
func (b *Builder) AppendControl(offset uint32, tag Tag, body []byte) error {
	top := b.top()
	if top == nil || top.kind != frameSequence {
		return Shape("AppendControl is only legal directly inside a Sequence frame")
	}
	prefix := make([]byte, 8)
	binary.LittleEndian.PutUint32(prefix[0:4], offset)
	b.appendRaw(prefix)
	return b.Primitive(tag, body)
}

// --- Scalar convenience wrappers over Primitive ---

func (b *Builder) None() error { return b.Primitive(TagNone, nil) }

func (b *Builder) Bool(v bool) error {
	var word uint32
	if v {
		word = 1
	}
	body := make([]byte, 4)
	binary.LittleEndian.PutUint32(body, word)
	return b.Primitive(TagBool, body)
}

func (b *Builder) ID(v uint32) error {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint32(body, v)
	return b.Primitive(TagID, body)
}

func (b *Builder) Int(v int32) error {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint32(body, uint32(v))
	return b.Primitive(TagInt, body)
}

func (b *Builder) Long(v int64) error {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint64(body, uint64(v))
	return b.Primitive(TagLong, body)
}

func (b *Builder) Float(v float32) error {
	body := make([]byte, 4)
	binary.LittleEndian.PutUint32(body, math.Float32bits(v))
	return b.Primitive(TagFloat, body)
}

func (b *Builder) Double(v float64) error {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint64(body, math.Float64bits(v))
	return b.Primitive(TagDouble, body)
}

func (b *Builder) String(v string) error {
	body := make([]byte, len(v)+1)
	copy(body, v)
	body[len(v)] = 0
	return b.Primitive(TagString, body)
}

func (b *Builder) ByteArray(v []byte) error {
	return b.Primitive(TagBytes, v)
}

func (b *Builder) Pointer(pointerType Tag, v uint64) error {
	body := make([]byte, 16)
	binary.LittleEndian.PutUint32(body[0:4], uint32(pointerType))
	binary.LittleEndian.PutUint64(body[8:16], v)
	return b.Primitive(TagPointer, body)
}

func (b *Builder) Fd(v int64) error {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint64(body, uint64(v))
	return b.Primitive(TagFd, body)
}

func (b *Builder) Rectangle(width, height uint32) error {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint32(body[0:4], width)
	binary.LittleEndian.PutUint32(body[4:8], height)
	return b.Primitive(TagRectangle, body)
}

func (b *Builder) Fraction(num, denom uint32) error {
	body := make([]byte, 8)
	binary.LittleEndian.PutUint32(body[0:4], num)
	binary.LittleEndian.PutUint32(body[4:8], denom)
	return b.Primitive(TagFraction, body)
}
