// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package podinspect implements an interactive terminal browser over a
// decoded POD tree: a live client's object graph, a single recorded
// frame, or a demo tree built for exploration.
//
// A byte buffer is decoded into a [Node] tree with [BuildTree], which
// resolves object types, property keys, and TagID values to symbolic
// names using a [github.com/graphpod/pod/lib/remap.GlobalTypeTable]
// when one is supplied. [Model] wraps the tree in a bubbletea program:
// arrow keys navigate, right or enter expands a container (or moves to
// its first child), left collapses it (or moves to the parent), and
// '/' jumps to the next row whose label or value fuzzy-matches the
// typed query. [Render] produces the same
// tree as a syntax-highlighted pseudo-JSON dump for non-interactive
// output.
package podinspect
