// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podfs

import (
	"context"
	"testing"

	"github.com/hanwen/go-fuse/v2/fuse"
)

func TestContentFileNodeReadWholeFile(t *testing.T) {
	node := &contentFileNode{content: []byte("0.800000\n")}
	dest := make([]byte, 32)
	result, errno := node.Read(context.Background(), nil, dest, 0)
	if errno != 0 {
		t.Fatalf("Read: errno %v", errno)
	}
	data, status := result.Bytes(dest)
	if status != fuse.OK {
		t.Fatalf("Bytes: status %v", status)
	}
	if string(data) != "0.800000\n" {
		t.Errorf("got %q, want %q", data, "0.800000\n")
	}
}

func TestContentFileNodeReadAtOffset(t *testing.T) {
	node := &contentFileNode{content: []byte("abcdef")}
	dest := make([]byte, 3)
	result, errno := node.Read(context.Background(), nil, dest, 2)
	if errno != 0 {
		t.Fatalf("Read: errno %v", errno)
	}
	data, status := result.Bytes(dest)
	if status != fuse.OK {
		t.Fatalf("Bytes: status %v", status)
	}
	if string(data) != "cde" {
		t.Errorf("got %q, want %q", data, "cde")
	}
}

func TestContentFileNodeReadPastEnd(t *testing.T) {
	node := &contentFileNode{content: []byte("abc")}
	dest := make([]byte, 8)
	result, errno := node.Read(context.Background(), nil, dest, 3)
	if errno != 0 {
		t.Fatalf("Read: errno %v", errno)
	}
	data, status := result.Bytes(dest)
	if status != fuse.OK {
		t.Fatalf("Bytes: status %v", status)
	}
	if len(data) != 0 {
		t.Errorf("expected empty read past end of file, got %q", data)
	}
}

func TestContentFileNodeGetattrReportsSize(t *testing.T) {
	node := &contentFileNode{content: []byte("hello")}
	var out fuse.AttrOut
	if errno := node.Getattr(context.Background(), nil, &out); errno != 0 {
		t.Fatalf("Getattr: errno %v", errno)
	}
	if out.Size != 5 {
		t.Errorf("expected size 5, got %d", out.Size)
	}
}

func TestSliceDirStreamIteratesInOrder(t *testing.T) {
	stream := &sliceDirStream{entries: []fuse.DirEntry{
		{Name: "type"}, {Name: "id"}, {Name: "volume"},
	}}
	var names []string
	for stream.HasNext() {
		entry, errno := stream.Next()
		if errno != 0 {
			t.Fatalf("Next: errno %v", errno)
		}
		names = append(names, entry.Name)
	}
	if len(names) != 3 || names[0] != "type" || names[2] != "volume" {
		t.Errorf("unexpected entry order: %v", names)
	}
}
