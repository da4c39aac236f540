// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying the exact name
// ordering of a [GlobalTypeTable]. Two servers built from the same
// source list of type names produce the same fingerprint; comparing
// fingerprints at connection setup catches a client and server built
// from mismatched type tables before a single index is misresolved.
type Fingerprint [32]byte

// fingerprintDomainKey is the BLAKE3 keyed-hash domain separation key
// for global type tables, ASCII-padded to 32 bytes following the
// convention of [lib/artifact]'s domain keys.
var fingerprintDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'r', 'e', 'm', 'a', 'p', '.', 't', 'y', 'p',
	'e', 't', 'a', 'b', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint computes the domain-separated BLAKE3 keyed hash of t's
// name list in index order. The index position of each name (its
// global id) is part of the hash: reordering two names changes the
// fingerprint even though the set of names is unchanged, since a
// reorder would silently remap every client already negotiated
// against the old ordering.
func (t *GlobalTypeTable) Fingerprint() Fingerprint {
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("remap: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	var lengthPrefix [4]byte
	for _, name := range t.names {
		binary.LittleEndian.PutUint32(lengthPrefix[:], uint32(len(name)))
		hasher.Write(lengthPrefix[:])
		hasher.Write([]byte(name))
	}
	var fp Fingerprint
	copy(fp[:], hasher.Sum(nil))
	return fp
}

// String returns the hex encoding of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
