// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package poddoc generates a human-readable catalog of the global
// type table and its per-object-type property conventions, as
// Markdown and (via goldmark) HTML.
//
// There is no runtime introspection here: the catalog is built from a
// [remap.GlobalTypeTable] and a caller-supplied list of
// [ObjectTypeDoc] entries describing the properties each well-known
// object type carries, the same kind of table PipeWire's own SPA
// headers document in comments. `podump docs` is the intended caller.
package poddoc
