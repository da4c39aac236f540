// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

// Tag identifies the wire-level type of a POD value. Tag values carry
// no language meaning beyond the closed set defined here; they are the
// discriminator stored in every POD header.
type Tag uint32

const (
	// TagNone is an empty-body POD: the degenerate value.
	TagNone Tag = iota
	// TagBool is a 32-bit word, 0 or 1.
	TagBool
	// TagID is a 32-bit identifier from some domain (media type,
	// format key, object type, ...).
	TagID
	// TagInt is a 32-bit signed integer.
	TagInt
	// TagLong is a 64-bit signed integer.
	TagLong
	// TagFloat is an IEEE-754 32-bit float.
	TagFloat
	// TagDouble is an IEEE-754 64-bit float.
	TagDouble
	// TagString is a NUL-terminated UTF-8 string; size includes the
	// terminator.
	TagString
	// TagBytes is an opaque byte array.
	TagBytes
	// TagPointer is (type:u32, pad:u32, value:u64). Never dereferenced
	// on the wire.
	TagPointer
	// TagFd is an index into an out-of-band file-descriptor table.
	TagFd
	// TagRectangle is (width:u32, height:u32).
	TagRectangle
	// TagFraction is (num:u32, denom:u32).
	TagFraction
	// TagArray is (child_size:u32, child_type:u32, N raw bodies).
	TagArray
	// TagStruct is a sequence of arbitrary tagged children.
	TagStruct
	// TagObject is (object_type:u32, object_id:u32, N Property children).
	TagObject
	// TagProperty is (key:u32, flags:u32, value POD). Appears only
	// inside an Object.
	TagProperty
	// TagChoice is (choice_type:u32, flags:u32, child_size:u32,
	// child_type:u32, N raw bodies).
	TagChoice
	// TagSequence is (unit:u32, pad:u32, N control entries).
	TagSequence
)

// String returns the wire-level name of the tag, or "unknown" for an
// out-of-range value.
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagBool:
		return "Bool"
	case TagID:
		return "Id"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagString:
		return "String"
	case TagBytes:
		return "Bytes"
	case TagPointer:
		return "Pointer"
	case TagFd:
		return "Fd"
	case TagRectangle:
		return "Rectangle"
	case TagFraction:
		return "Fraction"
	case TagArray:
		return "Array"
	case TagStruct:
		return "Struct"
	case TagObject:
		return "Object"
	case TagProperty:
		return "Property"
	case TagChoice:
		return "Choice"
	case TagSequence:
		return "Sequence"
	default:
		return "unknown"
	}
}

// FixedSize reports the body size in bytes of a primitive tag whose
// body length does not depend on its content, and whether the tag has
// a fixed size at all. String, Bytes, Struct, Object, Array, Choice,
// Sequence, and Property are variable-length or composite and report
// ok=false -- they cannot be used as an Array or Choice child type.
func (t Tag) FixedSize() (size uint32, ok bool) {
	switch t {
	case TagNone:
		return 0, true
	case TagBool, TagID, TagInt, TagFloat:
		return 4, true
	case TagLong, TagDouble, TagRectangle, TagFraction:
		return 8, true
	case TagPointer:
		return 16, true
	case TagFd:
		return 8, true
	default:
		return 0, false
	}
}
