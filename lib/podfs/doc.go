// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package podfs exposes a decoded POD object graph as a read-only FUSE
// filesystem: one directory per live Object (named by id), each
// holding a "type" file, an "id" file, and one file per property,
// so the current state of a client can be poked at with ls/cat
// instead of a dedicated viewer.
//
// The filesystem never decodes POD itself; it mounts whatever
// [Snapshot] its [Source] last produced, the same separation of
// concerns bureau's artifact FUSE mount keeps between the content
// store and the inode tree.
package podfs
