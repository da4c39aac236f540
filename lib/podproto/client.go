// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podproto

import (
	"sync"

	"github.com/graphpod/pod/lib/remap"
)

// Client is the minimal per-client handle for a legacy v0 connection:
// resolving a type name to the server's global id, installing a
// client-assigned slot for it, and translating between slots and
// global ids for the lifetime of the connection.
//
// It wraps a [remap.ClientTypeTable] -- this type adds the by-name
// lookup and slot bookkeeping the raw translation table doesn't need
// for its own FromV0/ToV0 contract, matching the named surface
// find_v0_by_name, install_v0, lookup_v0, row_to_v2, v2_to_row.
type Client struct {
	global *remap.GlobalTypeTable
	table  *remap.ClientTypeTable

	mu    sync.RWMutex
	names map[uint32]string // slot -> name, for LookupV0
}

// NewClient returns a Client bound to global, with no slots installed.
func NewClient(global *remap.GlobalTypeTable) *Client {
	return &Client{
		global: global,
		table:  remap.NewClientTypeTable(global),
		names:  make(map[uint32]string),
	}
}

// FindV0ByName resolves name against the server's global type table,
// without touching this client's slot assignments. Returns ok=false if
// the server has never heard of name.
func (c *Client) FindV0ByName(name string) (globalID uint32, ok bool) {
	return c.global.IDOf(name)
}

// InstallV0 records that slot now refers to name for this client,
// mirroring one entry of a v0 UpdateTypes message.
func (c *Client) InstallV0(slot uint32, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table.Update(slot, []string{name})
	c.names[slot] = name
}

// LookupV0 returns the type name previously installed at slot.
func (c *Client) LookupV0(slot uint32) (name string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok = c.names[slot]
	return name, ok
}

// RowToV2 translates an installed slot into the current-format global
// id, failing with [remap.ErrUnknownType] if the slot was never
// installed.
func (c *Client) RowToV2(slot uint32) (uint32, error) {
	return c.table.FromV0(slot)
}

// V2ToRow translates a current-format global id into this client's
// slot, failing with [remap.ErrUnknownType] if this client has never
// been told about it.
func (c *Client) V2ToRow(globalID uint32) (uint32, error) {
	return c.table.ToV0(globalID)
}

// Fingerprint returns the BLAKE3 fingerprint of the server's global
// type table, for the client's version handshake (see
// [CheckFingerprint]).
func (c *Client) Fingerprint() remap.Fingerprint {
	return c.global.Fingerprint()
}
