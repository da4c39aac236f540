// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"encoding/binary"
	"log/slog"
	"math"
)

// style distinguishes how a Parser frame's children are laid out:
// styleTagged children are each a complete header-delimited POD
// (Struct, Object, Property-value, top level); styleRaw children are
// untagged fixed-size elements whose type/size is implied by the
// container (Array, Choice); styleSequence children are (offset,
// tagged POD) control entries.
type style int

const (
	styleTagged style = iota
	styleRaw
	styleSequence
)

// pframe is Parser bookkeeping for one entered container.
type pframe struct {
	style     style
	tag       Tag
	data      []byte // body bytes, excluding the container's own header
	offset    int    // read cursor within data
	childType Tag    // styleRaw only
	childSize uint32 // styleRaw only
	// Object/Choice prefix fields, populated by Enter.
	objectType uint32
	objectID   uint32
	choiceType ChoiceType
	flags      uint32
	unit       uint32
}

// Parser is a structural cursor over an existing POD tree. It never
// mutates the underlying bytes; scalar reads copy, String/Bytes reads
// return slices borrowed from the input, valid only as long as the
// input buffer is.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	frames   []pframe
	baseOff  int // absolute byte offset of frames[0].data start, for error reporting
	dupLog   DuplicateKeyLogger
	logger   *slog.Logger
}

// NewParser returns a Parser positioned at the start of buf, treating
// buf as the body of an implicit top-level Struct-like sequence: one
// or more sibling PODs in encounter order.
func NewParser(buf []byte) *Parser {
	return &Parser{
		frames: []pframe{{style: styleTagged, tag: TagStruct, data: buf}},
		dupLog: logDuplicateKey,
	}
}

// SetLogger configures the logger passed to the DuplicateKeyLogger.
func (p *Parser) SetLogger(logger *slog.Logger) { p.logger = logger }

// SetDuplicateKeyLogger overrides the default duplicate-key notice
// hook. Pass nil to disable it entirely.
func (p *Parser) SetDuplicateKeyLogger(fn DuplicateKeyLogger) { p.dupLog = fn }

func (p *Parser) top() *pframe { return &p.frames[len(p.frames)-1] }

// Depth returns the number of currently open containers (0 at the
// implicit top level).
func (p *Parser) Depth() int { return len(p.frames) - 1 }

// PeekType returns the tag of the next child in the current container
// without advancing, or [ErrEnd] if the container is exhausted.
func (p *Parser) PeekType() (Tag, error) {
	f := p.top()
	switch f.style {
	case styleRaw:
		if f.offset >= len(f.data) {
			return 0, ErrEnd
		}
		return f.childType, nil
	default:
		if f.offset >= len(f.data) {
			return 0, ErrEnd
		}
		h, err := getHeader(f.data[f.offset:], p.baseOff+f.offset)
		if err != nil {
			return 0, err
		}
		return h.tag, nil
	}
}

// Next returns the next child's tag and raw encoded body (the value's
// body, not including its own header), advancing past it. It returns
// [ErrEnd] when the current container is exhausted.
func (p *Parser) Next() (Tag, []byte, error) {
	f := p.top()
	switch f.style {
	case styleRaw:
		if f.offset >= len(f.data) {
			return 0, nil, ErrEnd
		}
		body := f.data[f.offset : f.offset+int(f.childSize)]
		f.offset += int(f.childSize)
		return f.childType, body, nil

	case styleSequence:
		if f.offset >= len(f.data) {
			return 0, nil, ErrEnd
		}
		if len(f.data)-f.offset < 8 {
			return 0, nil, Malformed(p.baseOff+f.offset, "truncated sequence control entry")
		}
		f.offset += 4 // offset field consumed by NextControl; Next() alone skips it
		tag, body, n, err := p.readTagged(f.data, f.offset)
		if err != nil {
			return 0, nil, err
		}
		f.offset += n
		return tag, body, nil

	default: // styleTagged
		if f.offset >= len(f.data) {
			return 0, nil, ErrEnd
		}
		tag, body, n, err := p.readTagged(f.data, f.offset)
		if err != nil {
			return 0, nil, err
		}
		f.offset += n
		return tag, body, nil
	}
}

// readTagged reads one complete header-delimited POD starting at
// data[offset:], returning its tag, body slice, and the number of
// bytes consumed (header + aligned body). It validates that the
// header and the full aligned body both fit within data.
func (p *Parser) readTagged(data []byte, offset int) (Tag, []byte, int, error) {
	if len(data)-offset < HeaderSize {
		return 0, nil, 0, Malformed(p.baseOff+offset, "truncated header: %d bytes remaining", len(data)-offset)
	}
	h, err := getHeader(data[offset:], p.baseOff+offset)
	if err != nil {
		return 0, nil, 0, err
	}
	bodyStart := offset + HeaderSize
	bodyEnd := bodyStart + int(h.size)
	if h.size > uint32(len(data)-bodyStart) || bodyEnd < bodyStart {
		return 0, nil, 0, Malformed(p.baseOff+offset, "child of size %d overruns parent body", h.size)
	}
	consumed := HeaderSize + align8(int(h.size))
	if offset+consumed > len(data) {
		// Trailing pad extends past the parent; that's fine for the
		// last child of a Struct/Object since the parent's own size
		// accounts for it, but guard against corrupt input regardless.
		consumed = HeaderSize + int(h.size)
	}
	return h.tag, data[bodyStart:bodyEnd], consumed, nil
}

// NextControl reads the next Sequence control entry: its offset and
// the tagged value that follows it. Legal only directly inside a
// Sequence frame entered via [Parser.Enter].
func (p *Parser) NextControl() (offset uint32, tag Tag, body []byte, err error) {
	f := p.top()
	if f.style != styleSequence {
		return 0, 0, nil, Shape("NextControl is only legal directly inside a Sequence frame")
	}
	if f.offset >= len(f.data) {
		return 0, 0, nil, ErrEnd
	}
	if len(f.data)-f.offset < 4 {
		return 0, 0, nil, Malformed(p.baseOff+f.offset, "truncated sequence control offset")
	}
	offset = binary.LittleEndian.Uint32(f.data[f.offset : f.offset+4])
	f.offset += 4
	tag, body, n, err := p.readTagged(f.data, f.offset)
	if err != nil {
		return 0, 0, nil, err
	}
	f.offset += n
	return offset, tag, body, nil
}

// Enter opens the next child as a container and pushes a frame for
// it. It returns only an error; an entered Object's (type, id) and an
// entered Choice's prefix fields are read afterwards with
// [Parser.CurrentObject] and [Parser.CurrentChoice].
func (p *Parser) Enter() error {
	tag, body, err := p.Next()
	if err != nil {
		return err
	}
	return p.enterBody(tag, body)
}

func (p *Parser) enterBody(tag Tag, body []byte) error {
	switch tag {
	case TagStruct:
		p.frames = append(p.frames, pframe{style: styleTagged, tag: tag, data: body})

	case TagObject:
		if len(body) < 8 {
			return Malformed(p.baseOff, "object body shorter than its (type, id) prefix")
		}
		objectType := binary.LittleEndian.Uint32(body[0:4])
		objectID := binary.LittleEndian.Uint32(body[4:8])
		p.frames = append(p.frames, pframe{
			style: styleTagged, tag: tag, data: body[8:],
			objectType: objectType, objectID: objectID,
		})

	case TagArray:
		if len(body) < 8 {
			return Malformed(p.baseOff, "array body shorter than its (child_size, child_type) prefix")
		}
		childSize := binary.LittleEndian.Uint32(body[0:4])
		childType := Tag(binary.LittleEndian.Uint32(body[4:8]))
		p.frames = append(p.frames, pframe{
			style: styleRaw, tag: tag, data: body[8:],
			childType: childType, childSize: childSize,
		})

	case TagChoice:
		if len(body) < 16 {
			return Malformed(p.baseOff, "choice body shorter than its prefix")
		}
		choiceType := ChoiceType(binary.LittleEndian.Uint32(body[0:4]))
		flags := binary.LittleEndian.Uint32(body[4:8])
		childSize := binary.LittleEndian.Uint32(body[8:12])
		childType := Tag(binary.LittleEndian.Uint32(body[12:16]))
		p.frames = append(p.frames, pframe{
			style: styleRaw, tag: tag, data: body[16:],
			childType: childType, childSize: childSize,
			choiceType: choiceType, flags: flags,
		})

	case TagSequence:
		if len(body) < 8 {
			return Malformed(p.baseOff, "sequence body shorter than its (unit, pad) prefix")
		}
		unit := binary.LittleEndian.Uint32(body[0:4])
		p.frames = append(p.frames, pframe{
			style: styleSequence, tag: tag, data: body[8:], unit: unit,
		})

	case TagProperty:
		// A Property's "body" is (key, flags, value-POD); entering it
		// exposes the value as a styleTagged frame of exactly one
		// child so Enter/Next compose uniformly.
		if len(body) < 8 {
			return Malformed(p.baseOff, "property body shorter than its (key, flags) prefix")
		}
		p.frames = append(p.frames, pframe{style: styleTagged, tag: tag, data: body[8:]})

	default:
		return Shape("%s is not a container tag", tag)
	}
	return nil
}

// Leave pops the innermost frame. Leave does not require the frame to
// be fully consumed -- a Parser holding a buffer can be abandoned
// without cleanup.
func (p *Parser) Leave() error {
	if len(p.frames) <= 1 {
		return Shape("leave without a matching enter")
	}
	p.frames = p.frames[:len(p.frames)-1]
	return nil
}

// CurrentObject returns the (object_type, object_id) of the innermost
// frame, which must have been entered from a TagObject value.
func (p *Parser) CurrentObject() (objectType, objectID uint32, ok bool) {
	f := p.top()
	if f.tag != TagObject {
		return 0, 0, false
	}
	return f.objectType, f.objectID, true
}

// CurrentChoice returns the (choice_type, flags, child_type,
// child_size) of the innermost frame, which must have been entered
// from a TagChoice value.
func (p *Parser) CurrentChoice() (choiceType ChoiceType, flags uint32, childType Tag, childSize uint32, ok bool) {
	f := p.top()
	if f.tag != TagChoice {
		return 0, 0, 0, 0, false
	}
	return f.choiceType, f.flags, f.childType, f.childSize, true
}

// FindProp linearly scans the innermost Object frame's Property
// children for key, returning the first match. On duplicate keys,
// readers accept the first occurrence. Returns ok=false if
// no Property with that key exists. Scanning does not disturb the
// frame's own iteration cursor.
func (p *Parser) FindProp(key uint32) (Property, bool, error) {
	f := p.top()
	if f.tag != TagObject {
		return Property{}, false, Shape("FindProp requires the current frame to be an Object")
	}
	var (
		found    Property
		haveOne  bool
		offset   = 0
	)
	for offset < len(f.data) {
		tag, body, n, err := p.readTagged(f.data, offset)
		if err != nil {
			return Property{}, false, err
		}
		offset += n
		if tag != TagProperty {
			return Property{}, false, Shape("object child is %s, expected Property", tag)
		}
		if len(body) < 8 {
			return Property{}, false, Malformed(p.baseOff+offset, "property body shorter than its (key, flags) prefix")
		}
		propKey := binary.LittleEndian.Uint32(body[0:4])
		if propKey != key {
			continue
		}
		if haveOne {
			if p.dupLog != nil {
				p.dupLog(p.logger, key)
			}
			continue
		}
		propFlags := binary.LittleEndian.Uint32(body[4:8])
		valueTag, valueBody, _, err := p.readTagged(body, 8)
		if err != nil {
			return Property{}, false, err
		}
		found = Property{Key: propKey, Flags: PropertyFlag(propFlags), ValueType: valueTag, Value: valueBody}
		haveOne = true
	}
	return found, haveOne, nil
}

// Properties returns every Property in the innermost Object frame, in
// encounter order, with duplicate keys after the first dropped (and
// logged via the configured [DuplicateKeyLogger]) per invariant I6.
func (p *Parser) Properties() ([]Property, error) {
	f := p.top()
	if f.tag != TagObject {
		return nil, Shape("Properties requires the current frame to be an Object")
	}
	seen := make(map[uint32]bool)
	var result []Property
	offset := 0
	for offset < len(f.data) {
		tag, body, n, err := p.readTagged(f.data, offset)
		if err != nil {
			return nil, err
		}
		offset += n
		if tag != TagProperty {
			return nil, Shape("object child is %s, expected Property", tag)
		}
		if len(body) < 8 {
			return nil, Malformed(p.baseOff+offset, "property body shorter than its (key, flags) prefix")
		}
		propKey := binary.LittleEndian.Uint32(body[0:4])
		if seen[propKey] {
			if p.dupLog != nil {
				p.dupLog(p.logger, propKey)
			}
			continue
		}
		seen[propKey] = true
		propFlags := binary.LittleEndian.Uint32(body[4:8])
		valueTag, valueBody, _, err := p.readTagged(body, 8)
		if err != nil {
			return nil, err
		}
		result = append(result, Property{Key: propKey, Flags: PropertyFlag(propFlags), ValueType: valueTag, Value: valueBody})
	}
	return result, nil
}

// GetValues returns the uniform Choice view of (tag, body): if tag is
// TagChoice, its description; otherwise a synthesized single-element
// None view wrapping the bare value.
func GetValues(tag Tag, body []byte) (Values, error) {
	if tag != TagChoice {
		return Values{Count: 1, ChoiceType: ChoiceNone, ChildType: tag, ChildSize: uint32(len(body)), Default: body}, nil
	}
	if len(body) < 16 {
		return Values{}, Malformed(0, "choice body shorter than its prefix")
	}
	choiceType := ChoiceType(binary.LittleEndian.Uint32(body[0:4]))
	childSize := binary.LittleEndian.Uint32(body[8:12])
	childType := Tag(binary.LittleEndian.Uint32(body[12:16]))
	elements := body[16:]
	if childSize == 0 || uint32(len(elements))%childSize != 0 {
		return Values{}, Malformed(0, "choice element region %d is not a multiple of child size %d", len(elements), childSize)
	}
	count := len(elements) / int(childSize)
	var def []byte
	if count > 0 {
		def = elements[:childSize]
	}
	return Values{Count: count, ChoiceType: choiceType, ChildType: childType, ChildSize: childSize, Default: def}, nil
}

// ChoiceElements returns every raw element body of a Choice value decoded
// by [GetValues] (or of any Choice-tagged (tag, body) pair), in
// declared order: index 0 is the default/preferred value.
func ChoiceElements(body []byte) ([][]byte, error) {
	if len(body) < 16 {
		return nil, Malformed(0, "choice body shorter than its prefix")
	}
	childSize := binary.LittleEndian.Uint32(body[8:12])
	elements := body[16:]
	if childSize == 0 || uint32(len(elements))%childSize != 0 {
		return nil, Malformed(0, "choice element region %d is not a multiple of child size %d", len(elements), childSize)
	}
	count := int(uint32(len(elements)) / childSize)
	out := make([][]byte, count)
	for i := 0; i < count; i++ {
		out[i] = elements[i*int(childSize) : (i+1)*int(childSize)]
	}
	return out, nil
}

// --- Scalar convenience wrappers over Next ---

func (p *Parser) GetBool() (bool, error) {
	tag, body, err := p.Next()
	if err != nil {
		return false, err
	}
	if tag != TagBool {
		return false, &TypeMismatchError{Expected: TagBool, Actual: tag}
	}
	if len(body) < 4 {
		return false, Malformed(p.baseOff, "bool body too short")
	}
	return binary.LittleEndian.Uint32(body) != 0, nil
}

func (p *Parser) GetID() (uint32, error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, err
	}
	if tag != TagID {
		return 0, &TypeMismatchError{Expected: TagID, Actual: tag}
	}
	if len(body) < 4 {
		return 0, Malformed(p.baseOff, "id body too short")
	}
	return binary.LittleEndian.Uint32(body), nil
}

func (p *Parser) GetInt() (int32, error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, err
	}
	if tag != TagInt {
		return 0, &TypeMismatchError{Expected: TagInt, Actual: tag}
	}
	if len(body) < 4 {
		return 0, Malformed(p.baseOff, "int body too short")
	}
	return int32(binary.LittleEndian.Uint32(body)), nil
}

func (p *Parser) GetLong() (int64, error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, err
	}
	if tag != TagLong {
		return 0, &TypeMismatchError{Expected: TagLong, Actual: tag}
	}
	if len(body) < 8 {
		return 0, Malformed(p.baseOff, "long body too short")
	}
	return int64(binary.LittleEndian.Uint64(body)), nil
}

func (p *Parser) GetFloat() (float32, error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, err
	}
	if tag != TagFloat {
		return 0, &TypeMismatchError{Expected: TagFloat, Actual: tag}
	}
	if len(body) < 4 {
		return 0, Malformed(p.baseOff, "float body too short")
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(body)), nil
}

func (p *Parser) GetDouble() (float64, error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, err
	}
	if tag != TagDouble {
		return 0, &TypeMismatchError{Expected: TagDouble, Actual: tag}
	}
	if len(body) < 8 {
		return 0, Malformed(p.baseOff, "double body too short")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(body)), nil
}

func (p *Parser) GetString() (string, error) {
	tag, body, err := p.Next()
	if err != nil {
		return "", err
	}
	if tag != TagString {
		return "", &TypeMismatchError{Expected: TagString, Actual: tag}
	}
	if len(body) == 0 || body[len(body)-1] != 0 {
		return "", Malformed(p.baseOff, "string body missing NUL terminator")
	}
	return string(body[:len(body)-1]), nil
}

func (p *Parser) GetBytes() ([]byte, error) {
	tag, body, err := p.Next()
	if err != nil {
		return nil, err
	}
	if tag != TagBytes {
		return nil, &TypeMismatchError{Expected: TagBytes, Actual: tag}
	}
	return body, nil
}

func (p *Parser) GetRectangle() (width, height uint32, err error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, 0, err
	}
	if tag != TagRectangle {
		return 0, 0, &TypeMismatchError{Expected: TagRectangle, Actual: tag}
	}
	if len(body) < 8 {
		return 0, 0, Malformed(p.baseOff, "rectangle body too short")
	}
	return binary.LittleEndian.Uint32(body[0:4]), binary.LittleEndian.Uint32(body[4:8]), nil
}

func (p *Parser) GetFraction() (num, denom uint32, err error) {
	tag, body, err := p.Next()
	if err != nil {
		return 0, 0, err
	}
	if tag != TagFraction {
		return 0, 0, &TypeMismatchError{Expected: TagFraction, Actual: tag}
	}
	if len(body) < 8 {
		return 0, 0, Malformed(p.baseOff, "fraction body too short")
	}
	return binary.LittleEndian.Uint32(body[0:4]), binary.LittleEndian.Uint32(body[4:8]), nil
}
