// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

// ChoiceType selects the constraint discipline of a Choice value's
// alternatives.
type ChoiceType uint32

const (
	// ChoiceNone is a plain value: exactly one element, no constraint.
	ChoiceNone ChoiceType = iota
	// ChoiceRange requires exactly [default, min, max].
	ChoiceRange
	// ChoiceStep requires exactly [default, min, max, step].
	ChoiceStep
	// ChoiceEnum requires [default, alt1, alt2, ...], at least one element.
	ChoiceEnum
	// ChoiceFlags requires [default, mask1, mask2, ...], at least one element.
	ChoiceFlags
)

func (c ChoiceType) String() string {
	switch c {
	case ChoiceNone:
		return "None"
	case ChoiceRange:
		return "Range"
	case ChoiceStep:
		return "Step"
	case ChoiceEnum:
		return "Enum"
	case ChoiceFlags:
		return "Flags"
	default:
		return "unknown"
	}
}

// minElements returns the minimum number of elements a Choice of this
// type must carry.
func (c ChoiceType) minElements() int {
	switch c {
	case ChoiceNone:
		return 1
	case ChoiceRange:
		return 3
	case ChoiceStep:
		return 4
	case ChoiceEnum, ChoiceFlags:
		return 1
	default:
		return 0
	}
}

// exactElements reports the exact element count required, and whether
// the type requires an exact count at all (Enum/Flags only require a
// minimum).
func (c ChoiceType) exactElements() (n int, exact bool) {
	switch c {
	case ChoiceNone:
		return 1, true
	case ChoiceRange:
		return 3, true
	case ChoiceStep:
		return 4, true
	default:
		return 0, false
	}
}

// Values is the uniform view of a property value produced by
// [Parser.GetValues]: every value, Choice or bare, is described as an
// element count, a choice discipline, and the representative child
// POD (the default/first element). Callers that want every
// alternative iterate ChildType/ChildSize-sized raw elements
// themselves via [Parser.Enter] on the original Choice.
type Values struct {
	Count      int
	ChoiceType ChoiceType
	ChildType  Tag
	ChildSize  uint32
	// Default is the encoded body of the first (preferred) element.
	Default []byte
}
