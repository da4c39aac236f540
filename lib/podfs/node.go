// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podfs

import (
	"context"
	"log/slog"
	"strconv"
	"syscall"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// rootNode is the filesystem root. Its children are one directory per
// live Object, named by decimal id.
type rootNode struct {
	gofuse.Inode
	source Source
	logger *slog.Logger
}

var _ gofuse.InodeEmbedder = (*rootNode)(nil)
var _ gofuse.NodeLookuper = (*rootNode)(nil)
var _ gofuse.NodeReaddirer = (*rootNode)(nil)

func (r *rootNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	id, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return nil, syscall.ENOENT
	}

	snapshot := r.source.Snapshot()
	object, found := findObject(snapshot, uint32(id))
	if !found {
		return nil, syscall.ENOENT
	}

	child := r.NewPersistentInode(ctx, &objectNode{
		source: r.source,
		logger: r.logger,
		id:     object.ID,
	}, gofuse.StableAttr{Mode: syscall.S_IFDIR})
	out.Mode = syscall.S_IFDIR | 0o555
	return child, 0
}

func (r *rootNode) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	snapshot := r.source.Snapshot()
	objects := sortedObjects(snapshot)

	entries := make([]fuse.DirEntry, 0, len(objects))
	for _, object := range objects {
		entries = append(entries, fuse.DirEntry{
			Name: strconv.FormatUint(uint64(object.ID), 10),
			Mode: syscall.S_IFDIR,
		})
	}
	return &sliceDirStream{entries: entries}, 0
}

// objectNode represents one live Object as a directory: a "type"
// file, an "id" file, and one file per property.
type objectNode struct {
	gofuse.Inode
	source Source
	logger *slog.Logger
	id     uint32
}

var _ gofuse.InodeEmbedder = (*objectNode)(nil)
var _ gofuse.NodeLookuper = (*objectNode)(nil)
var _ gofuse.NodeReaddirer = (*objectNode)(nil)

func (o *objectNode) snapshotObject() (ObjectSnapshot, bool) {
	return findObject(o.source.Snapshot(), o.id)
}

func (o *objectNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	object, found := o.snapshotObject()
	if !found {
		return nil, syscall.ENOENT
	}

	var content string
	switch name {
	case "type":
		content = object.Type + "\n"
	case "id":
		content = strconv.FormatUint(uint64(object.ID), 10) + "\n"
	default:
		value, ok := object.Properties[name]
		if !ok {
			return nil, syscall.ENOENT
		}
		content = value + "\n"
	}

	child := o.NewPersistentInode(ctx, &contentFileNode{content: []byte(content)}, gofuse.StableAttr{Mode: syscall.S_IFREG})
	out.Mode = syscall.S_IFREG | 0o444
	out.Size = uint64(len(content))
	return child, 0
}

func (o *objectNode) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	object, found := o.snapshotObject()
	if !found {
		return nil, syscall.ENOENT
	}

	entries := []fuse.DirEntry{
		{Name: "type", Mode: syscall.S_IFREG},
		{Name: "id", Mode: syscall.S_IFREG},
	}
	for _, name := range sortedPropertyNames(object) {
		entries = append(entries, fuse.DirEntry{Name: name, Mode: syscall.S_IFREG})
	}
	return &sliceDirStream{entries: entries}, 0
}

// contentFileNode serves a fixed byte slice captured at Lookup time.
// Property values are re-read fresh on every Lookup of their parent
// directory, so a stale contentFileNode only lives as long as the
// kernel keeps its dentry cached.
type contentFileNode struct {
	gofuse.Inode
	content []byte
}

var _ gofuse.InodeEmbedder = (*contentFileNode)(nil)
var _ gofuse.NodeGetattrer = (*contentFileNode)(nil)
var _ gofuse.NodeReader = (*contentFileNode)(nil)

func (f *contentFileNode) Getattr(ctx context.Context, fh gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFREG | 0o444
	out.Size = uint64(len(f.content))
	return 0
}

func (f *contentFileNode) Read(ctx context.Context, fh gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	if off < 0 || off > int64(len(f.content)) {
		return fuse.ReadResultData(nil), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(f.content)) {
		end = int64(len(f.content))
	}
	return fuse.ReadResultData(f.content[off:end]), 0
}

// sliceDirStream implements fs.DirStream from a slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}
