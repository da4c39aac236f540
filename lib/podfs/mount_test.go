// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podfs

import (
	"os"
	"path/filepath"
	"testing"
)

// fuseAvailable checks whether /dev/fuse is accessible. Tests that
// need a real FUSE mount call this and skip if the device is absent.
func fuseAvailable(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/fuse"); err != nil {
		t.Skip("skipping: /dev/fuse not available")
	}
}

func TestMountRequiresMountpoint(t *testing.T) {
	_, err := Mount(Options{Source: NewStaticSource(testSnapshot())})
	if err == nil {
		t.Fatal("expected error for missing mountpoint")
	}
}

func TestMountRequiresSource(t *testing.T) {
	_, err := Mount(Options{Mountpoint: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMountExposesObjectGraph(t *testing.T) {
	fuseAvailable(t)

	root := t.TempDir()
	mountpoint := filepath.Join(root, "mount")

	server, err := Mount(Options{
		Mountpoint: mountpoint,
		Source:     NewStaticSource(testSnapshot()),
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	defer server.Unmount()

	entries, err := os.ReadDir(mountpoint)
	if err != nil {
		t.Fatalf("ReadDir mountpoint: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 object directories, got %d", len(entries))
	}

	typeBytes, err := os.ReadFile(filepath.Join(mountpoint, "2", "type"))
	if err != nil {
		t.Fatalf("ReadFile type: %v", err)
	}
	if string(typeBytes) != "Spa:Pod:Object:Param:Props\n" {
		t.Errorf("unexpected type content: %q", typeBytes)
	}

	volumeBytes, err := os.ReadFile(filepath.Join(mountpoint, "2", "volume"))
	if err != nil {
		t.Fatalf("ReadFile volume: %v", err)
	}
	if string(volumeBytes) != "0.800000\n" {
		t.Errorf("unexpected volume content: %q", volumeBytes)
	}

	if _, err := os.Stat(filepath.Join(mountpoint, "99")); !os.IsNotExist(err) {
		t.Errorf("expected id 99 to not exist, got err=%v", err)
	}
}
