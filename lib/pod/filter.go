// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import (
	"bytes"
	"encoding/binary"
)

// FilterValues intersects the Choice (or bare) values described by
// (aType, aBody) and (bType, bBody) for property key, returning the
// filtered Values and its element bodies in first-operand-preserving
// order. Returns [*NoIntersectionError] when the two sides share no
// compatible value.
func FilterValues(key uint32, aType Tag, aBody []byte, bType Tag, bBody []byte) (Values, [][]byte, error) {
	aValues, err := GetValues(aType, aBody)
	if err != nil {
		return Values{}, nil, err
	}
	bValues, err := GetValues(bType, bBody)
	if err != nil {
		return Values{}, nil, err
	}
	var aElements, bElements [][]byte
	if aType == TagChoice {
		aElements, err = ChoiceElements(aBody)
		if err != nil {
			return Values{}, nil, err
		}
	} else {
		aElements = [][]byte{aBody}
	}
	if bType == TagChoice {
		bElements, err = ChoiceElements(bBody)
		if err != nil {
			return Values{}, nil, err
		}
	} else {
		bElements = [][]byte{bBody}
	}
	return filterValues(key, aValues, aElements, bValues, bElements)
}

func filterValues(key uint32, a Values, aElements [][]byte, b Values, bElements [][]byte) (Values, [][]byte, error) {
	if a.ChildType != b.ChildType || a.ChildSize != b.ChildSize {
		return Values{}, nil, Shape("property %d: child types differ (%s/%d vs %s/%d)",
			key, a.ChildType, a.ChildSize, b.ChildType, b.ChildSize)
	}

	// Either side None: result is the other, with None preserved only
	// when both are None.
	if a.ChoiceType == ChoiceNone && b.ChoiceType == ChoiceNone {
		return a, aElements, nil
	}
	if a.ChoiceType == ChoiceNone {
		return b, bElements, nil
	}
	if b.ChoiceType == ChoiceNone {
		return a, aElements, nil
	}

	switch {
	case a.ChoiceType == ChoiceEnum && b.ChoiceType == ChoiceEnum:
		return filterEnumEnum(key, a, aElements, bElements)

	case a.ChoiceType == ChoiceRange && b.ChoiceType == ChoiceEnum:
		return filterRangeEnum(key, a, aElements, b, bElements)
	case a.ChoiceType == ChoiceEnum && b.ChoiceType == ChoiceRange:
		return filterRangeEnum(key, b, bElements, a, aElements)

	case a.ChoiceType == ChoiceRange && b.ChoiceType == ChoiceRange:
		return filterRangeRange(key, a, aElements, b, bElements)

	case a.ChoiceType == ChoiceStep && b.ChoiceType == ChoiceStep:
		return filterStepStep(key, a, aElements, b, bElements)

	case a.ChoiceType == ChoiceFlags && b.ChoiceType == ChoiceFlags:
		return filterFlagsFlags(key, a, aElements, bElements)

	default:
		return Values{}, nil, Shape("property %d: incompatible choice types %s and %s", key, a.ChoiceType, b.ChoiceType)
	}
}

func filterEnumEnum(key uint32, a Values, aElements, bElements [][]byte) (Values, [][]byte, error) {
	var result [][]byte
	for _, elem := range aElements {
		if containsElement(bElements, elem) {
			result = append(result, elem)
		}
	}
	if len(result) == 0 {
		return Values{}, nil, &NoIntersectionError{Key: key}
	}
	out := a
	out.Count = len(result)
	out.Default = result[0]
	return out, result, nil
}

func filterRangeEnum(key uint32, rangeValues Values, rangeElements [][]byte, enumValues Values, enumElements [][]byte) (Values, [][]byte, error) {
	if len(rangeElements) < 3 {
		return Values{}, nil, Shape("property %d: range choice requires 3 elements, got %d", key, len(rangeElements))
	}
	min, max := rangeElements[1], rangeElements[2]
	var result [][]byte
	for _, elem := range enumElements {
		if compareBytes(elem, min) >= 0 && compareBytes(elem, max) <= 0 {
			result = append(result, elem)
		}
	}
	if len(result) == 0 {
		return Values{}, nil, &NoIntersectionError{Key: key}
	}
	out := enumValues
	out.Count = len(result)
	out.Default = result[0]
	return out, result, nil
}

func filterRangeRange(key uint32, a Values, aElements [][]byte, b Values, bElements [][]byte) (Values, [][]byte, error) {
	if len(aElements) < 3 || len(bElements) < 3 {
		return Values{}, nil, Shape("property %d: range choice requires 3 elements", key)
	}
	aDefault, aMin, aMax := aElements[0], aElements[1], aElements[2]
	bDefault, bMin, bMax := bElements[0], bElements[1], bElements[2]

	resultMin := aMin
	if compareBytes(bMin, aMin) > 0 {
		resultMin = bMin
	}
	resultMax := aMax
	if compareBytes(bMax, aMax) < 0 {
		resultMax = bMax
	}
	if compareBytes(resultMin, resultMax) > 0 {
		return Values{}, nil, &NoIntersectionError{Key: key}
	}
	resultDefault := aDefault
	if compareBytes(bDefault, aDefault) > 0 {
		resultDefault = bDefault
	}
	elements := [][]byte{resultDefault, resultMin, resultMax}
	out := a
	out.Count = 3
	out.Default = resultDefault
	return out, elements, nil
}

func filterStepStep(key uint32, a Values, aElements [][]byte, b Values, bElements [][]byte) (Values, [][]byte, error) {
	if len(aElements) < 4 || len(bElements) < 4 {
		return Values{}, nil, Shape("property %d: step choice requires 4 elements", key)
	}
	aDefault, aMin, aMax, aStep := aElements[0], aElements[1], aElements[2], aElements[3]
	bDefault, bMin, bMax, bStep := bElements[0], bElements[1], bElements[2], bElements[3]

	resultMin := aMin
	if compareBytes(bMin, aMin) > 0 {
		resultMin = bMin
	}
	resultMax := aMax
	if compareBytes(bMax, aMax) < 0 {
		resultMax = bMax
	}
	if compareBytes(resultMin, resultMax) > 0 {
		return Values{}, nil, &NoIntersectionError{Key: key}
	}
	resultDefault := aDefault
	if compareBytes(bDefault, aDefault) > 0 {
		resultDefault = bDefault
	}
	resultStep := aStep
	if compareBytes(bStep, aStep) > 0 {
		resultStep = bStep
	}
	elements := [][]byte{resultDefault, resultMin, resultMax, resultStep}
	out := a
	out.Count = 4
	out.Default = resultDefault
	return out, elements, nil
}

func filterFlagsFlags(key uint32, a Values, aElements, bElements [][]byte) (Values, [][]byte, error) {
	// Flags combine mono-dimensionally like Enum: keep masks present
	// on both sides, preserving the first operand's order.
	var result [][]byte
	for _, elem := range aElements {
		if containsElement(bElements, elem) {
			result = append(result, elem)
		}
	}
	if len(result) == 0 {
		return Values{}, nil, &NoIntersectionError{Key: key}
	}
	out := a
	out.Count = len(result)
	out.Default = result[0]
	return out, result, nil
}

func containsElement(elements [][]byte, target []byte) bool {
	for _, elem := range elements {
		if bytes.Equal(elem, target) {
			return true
		}
	}
	return false
}

// compareBytes compares two same-size little-endian element bodies.
// 4-byte bodies compare as signed int32 and 8-byte bodies as signed
// int64; this covers Int and Long, and also means an 8-byte
// Rectangle or Fraction compares as its packed 64-bit word (height or
// denominator in the high half). Bodies of any other size compare
// byte-lexicographically.
func compareBytes(x, y []byte) int {
	switch len(x) {
	case 4:
		xv := int32(binary.LittleEndian.Uint32(x))
		yv := int32(binary.LittleEndian.Uint32(y))
		switch {
		case xv < yv:
			return -1
		case xv > yv:
			return 1
		default:
			return 0
		}
	case 8:
		xv := int64(binary.LittleEndian.Uint64(x))
		yv := int64(binary.LittleEndian.Uint64(y))
		switch {
		case xv < yv:
			return -1
		case xv > yv:
			return 1
		default:
			return 0
		}
	default:
		return bytes.Compare(x, y)
	}
}

// FilterAll folds [FilterValues] across more than two Choices sharing
// a property key, for multi-way negotiation among more than two
// peers. It is associative because each pairwise step commutes;
// folding left to right or right to left produces the same result
// modulo element order.
func FilterAll(key uint32, values []Values, elements [][][]byte) (Values, [][]byte, error) {
	if len(values) == 0 {
		return Values{}, nil, Shape("FilterAll requires at least one value")
	}
	result := values[0]
	resultElements := elements[0]
	for i := 1; i < len(values); i++ {
		var err error
		result, resultElements, err = filterValues(key, result, resultElements, values[i], elements[i])
		if err != nil {
			return Values{}, nil, err
		}
	}
	return result, resultElements, nil
}
