// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pod

import "log/slog"

// PropertyFlag is a bitmask of attributes carried on an Object's
// Property entry.
type PropertyFlag uint32

const (
	// PropRead marks a property as readable.
	PropRead PropertyFlag = 1 << iota
	// PropWrite marks a property as writable.
	PropWrite
	// PropSerial is bumped on every write to force re-propagation to
	// observers, independent of value equality.
	PropSerial
)

// Property is a decoded (key, flags, value) triple. Value is the raw
// encoded body of the property's value POD; ValueType is its tag.
// Value is a borrowed slice into the Parser's underlying buffer and
// MUST NOT be retained past the buffer's lifetime.
type Property struct {
	Key       uint32
	Flags     PropertyFlag
	ValueType Tag
	Value     []byte
}

// DuplicateKeyLogger receives a notice when [Parser.FindProp] or
// [Parser.Properties] encounters a duplicate property key within a
// single Object. A duplicate key is treated as a possible upstream
// bug, not a hard error: readers accept the first occurrence and may
// log the rest. Set via [Parser.SetDuplicateKeyLogger]; the default
// is logDuplicateKey, which logs at debug level to the logger given
// to [Parser.SetLogger] (and does nothing without one), and nil
// disables the hook.
type DuplicateKeyLogger func(logger *slog.Logger, key uint32)

// logDuplicateKey is the default [DuplicateKeyLogger].
func logDuplicateKey(logger *slog.Logger, key uint32) {
	if logger == nil {
		return
	}
	logger.Debug("pod: duplicate property key, ignoring all but the first", "key", key)
}
