// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

// The well-known current-format names this package needs to
// recognise regardless of where they land in a given server's
// [GlobalTypeTable]: the Format object type itself, and the two
// property keys that replace its v0 encoding's first two bare Id
// children (grounded on protocol-native.c's remap_from_v2 Format
// count<2 special case).
const (
	formatObjectTypeName   = "Spa:Pod:Object:Param:Format"
	formatMediaTypeName    = "Spa:Pod:Object:Param:Format:mediaType"
	formatMediaSubtypeName = "Spa:Pod:Object:Param:Format:mediaSubtype"
)

// isFormatObjectType reports whether globalObjectType names the
// Format object type.
func isFormatObjectType(table *ClientTypeTable, globalObjectType uint32) bool {
	return table.global.NameOf(globalObjectType) == formatObjectTypeName
}

// formatMediaKeys resolves the mediaType/mediaSubtype global ids
// against table's server-wide type table. Ok is false if the server
// was built without either well-known name registered, in which case
// callers fall back to treating the object as an ordinary one (no
// Format special case).
func formatMediaKeys(table *ClientTypeTable) (mediaType, mediaSubtype uint32, ok bool) {
	mediaType, ok1 := table.global.IDOf(formatMediaTypeName)
	mediaSubtype, ok2 := table.global.IDOf(formatMediaSubtypeName)
	return mediaType, mediaSubtype, ok1 && ok2
}
