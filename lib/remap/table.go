// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package remap translates POD trees between the legacy per-client
// type-table encoding ("v0") and the global-id encoding used by every
// current client ("v2"), following the compatibility layer PipeWire's
// protocol-native module carried for its own v0 clients.
package remap

import (
	"fmt"
	"sync"
)

// GlobalTypeTable is the fixed, build-time enumeration of every
// well-known type name a legacy client's index can resolve to: object
// types, property keys, format ids, and so on. It never changes at
// runtime; the same table is compiled into every server.
type GlobalTypeTable struct {
	names []string
	index map[string]uint32
}

// NewGlobalTypeTable builds a table from an ordered list of type
// names. Index position is the global id referenced throughout this
// package.
func NewGlobalTypeTable(names []string) *GlobalTypeTable {
	t := &GlobalTypeTable{names: append([]string(nil), names...), index: make(map[string]uint32, len(names))}
	for i, name := range names {
		t.index[name] = uint32(i)
	}
	return t
}

// NameOf returns the type name for a global id, or "" if out of range.
func (t *GlobalTypeTable) NameOf(id uint32) string {
	if int(id) >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// IDOf returns the global id for a type name, and whether it was found.
func (t *GlobalTypeTable) IDOf(name string) (uint32, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Len reports the number of well-known types in the table.
func (t *GlobalTypeTable) Len() int { return len(t.names) }

// ClientTypeTable is the per-client mapping negotiated during the
// UpdateTypes handshake: a legacy client assigns its own sequential
// indices to type names as it first mentions them, and the server
// must remember which global id each client index resolves to for the
// lifetime of that connection.
//
// A ClientTypeTable is safe for concurrent use; lookups happen from
// whichever goroutine is decoding that client's messages.
type ClientTypeTable struct {
	global *GlobalTypeTable

	mu       sync.RWMutex
	toGlobal map[uint32]uint32 // client index -> global id
	toClient map[uint32]uint32 // global id -> client index
}

// NewClientTypeTable returns an empty table bound to global, ready to
// be populated via [ClientTypeTable.Update] as UpdateTypes messages
// arrive.
func NewClientTypeTable(global *GlobalTypeTable) *ClientTypeTable {
	return &ClientTypeTable{
		global:   global,
		toGlobal: make(map[uint32]uint32),
		toClient: make(map[uint32]uint32),
	}
}

// Update records a batch of (client index, type name) assignments
// starting at firstID, incrementing by one per name, mirroring the
// wire shape of a v0 UpdateTypes message (first_id, n_types, then
// n_types strings). Names the global table does not recognise are
// skipped: a later [ClientTypeTable.FromV0] against that client index
// returns [ErrUnknownType] rather than silently misrouting to id 0.
func (t *ClientTypeTable) Update(firstID uint32, names []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, name := range names {
		clientIndex := firstID + uint32(i)
		globalID, ok := t.global.IDOf(name)
		if !ok {
			continue
		}
		t.toGlobal[clientIndex] = globalID
		t.toClient[globalID] = clientIndex
	}
}

// FromV0 translates a client-local type index into its global id, per
// [pw_protocol_native0_type_from_v2]'s inverse (the v0 compat layer
// calls the global/current encoding "v2"; this package calls it the
// current encoding throughout).
func (t *ClientTypeTable) FromV0(clientIndex uint32) (uint32, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.toGlobal[clientIndex]
	if !ok {
		return 0, fmt.Errorf("remap: unknown client type index %d: %w", clientIndex, errUnknownType)
	}
	return id, nil
}

// ToV0 translates a global type id into the requesting client's local
// index. It does not register new indices: if the client has never
// been told about this type, it returns an error wrapping
// [ErrUnknownType].
func (t *ClientTypeTable) ToV0(globalID uint32) (uint32, error) {
	t.mu.RLock()
	index, ok := t.toClient[globalID]
	t.mu.RUnlock()
	if ok {
		return index, nil
	}
	name := t.global.NameOf(globalID)
	if name == "" {
		return 0, fmt.Errorf("remap: global type %d has no registered name: %w", globalID, errUnknownType)
	}
	return 0, fmt.Errorf("remap: client has not been told about type %d (%s): %w", globalID, name, errUnknownType)
}
