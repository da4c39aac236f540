// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podproto

import (
	"fmt"

	"github.com/graphpod/pod/lib/remap"
)

// ErrorIdentifier is one of the wire error identifiers carried in a
// Core "error" message.
type ErrorIdentifier string

const (
	// ErrInvalidArgument marks a request whose arguments failed
	// validation at the protocol layer (not a POD decode failure).
	ErrInvalidArgument ErrorIdentifier = "INVALID_ARGUMENT"
	// ErrNoMemory marks a request the server could not satisfy because
	// it ran out of some resource (not necessarily POD Builder
	// overflow, though that can surface this way).
	ErrNoMemory ErrorIdentifier = "NO_MEMORY"
	// ErrProtocolError marks a malformed POD message, an unrecognised
	// opcode, or any other framing violation.
	ErrProtocolError ErrorIdentifier = "PROTOCOL_ERROR"
	// ErrVersionMismatch marks an interface version or type-table
	// fingerprint the server does not support.
	ErrVersionMismatch ErrorIdentifier = "VERSION_MISMATCH"
)

// CoreError is the wire shape of a Core "error" message: (target_id,
// seq, errno, text). The embedding protocol layer is responsible for
// framing and sending it; this type only carries the fields.
type CoreError struct {
	TargetID uint32
	Seq      uint32
	Errno    ErrorIdentifier
	Text     string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("podproto: target %d seq %d: %s: %s", e.TargetID, e.Seq, e.Errno, e.Text)
}

// VersionMismatchError reports that a peer-announced type-table
// fingerprint disagrees with this server's own global table. A plain
// (first_id, n, [string]*n) type-table exchange has no way to catch a
// same-name, different-id skew before a lookup is trusted, so peers
// compare a keyed hash of the whole table at connection start instead.
type VersionMismatchError struct {
	Local  remap.Fingerprint
	Remote remap.Fingerprint
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("podproto: type table fingerprint mismatch: local %s, remote %s", e.Local, e.Remote)
}

// CheckFingerprint compares a peer-announced fingerprint against
// global's own, returning a *VersionMismatchError (wrapping
// [ErrVersionMismatch] in its Core error form via [NewCoreError]) if
// they disagree. Call this once, immediately after a legacy client's
// UpdateTypes exchange completes and before trusting any FromV0/ToV0
// lookup on that connection.
func CheckFingerprint(global *remap.GlobalTypeTable, peer remap.Fingerprint) error {
	local := global.Fingerprint()
	if local != peer {
		return &VersionMismatchError{Local: local, Remote: peer}
	}
	return nil
}

// NewCoreError builds the Core error message for err, classifying it
// by identifier. Unrecognised error types are reported as
// PROTOCOL_ERROR, the conservative default.
func NewCoreError(targetID, seq uint32, err error) *CoreError {
	identifier := ErrProtocolError
	if _, ok := err.(*VersionMismatchError); ok {
		identifier = ErrVersionMismatch
	}
	return &CoreError{TargetID: targetID, Seq: seq, Errno: identifier, Text: err.Error()}
}
