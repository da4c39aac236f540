// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podfs

import "sort"

// ObjectSnapshot is the current, read-only state of one decoded POD
// Object: its remapped type name, its object id, and its properties
// rendered as display strings.
type ObjectSnapshot struct {
	ID         uint32
	Type       string
	Properties map[string]string
}

// Snapshot is a point-in-time view of every live Object a client
// currently holds.
type Snapshot struct {
	Objects []ObjectSnapshot
}

// Source produces the current [Snapshot] for a mount. Implementations
// are free to serve a static demo graph, replay a capture, or track a
// live connection; the filesystem only ever asks for the latest
// snapshot on each directory lookup or listing, so a Source is free
// to mutate between calls.
type Source interface {
	Snapshot() Snapshot
}

// StaticSource is a [Source] that always returns the same snapshot,
// useful for demos and tests.
type StaticSource struct {
	snapshot Snapshot
}

// NewStaticSource returns a Source that always serves snapshot.
func NewStaticSource(snapshot Snapshot) *StaticSource {
	return &StaticSource{snapshot: snapshot}
}

// Snapshot implements Source.
func (s *StaticSource) Snapshot() Snapshot {
	return s.snapshot
}

// sortedObjects returns snapshot.Objects sorted by ID, for stable
// directory listings.
func sortedObjects(snapshot Snapshot) []ObjectSnapshot {
	objects := make([]ObjectSnapshot, len(snapshot.Objects))
	copy(objects, snapshot.Objects)
	sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })
	return objects
}

// findObject returns the object with the given id, if present.
func findObject(snapshot Snapshot, id uint32) (ObjectSnapshot, bool) {
	for _, object := range snapshot.Objects {
		if object.ID == id {
			return object, true
		}
	}
	return ObjectSnapshot{}, false
}

// sortedPropertyNames returns the property keys of an object sorted
// alphabetically, for stable directory listings.
func sortedPropertyNames(object ObjectSnapshot) []string {
	names := make([]string, 0, len(object.Properties))
	for name := range object.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
