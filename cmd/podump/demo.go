// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/graphpod/pod/lib/pod"
	"github.com/graphpod/pod/lib/remap"
)

// demoPODBytes builds a small top-level sequence of two Objects --
// one Param:Props (volume/mute) and one Param:Format (format string)
// -- using the same [pod.Builder] every other producer in this module
// uses, for `podump dump --demo` and `podump inspect --demo`. Object
// and property type ids are resolved from names so the demo graph
// stays consistent with whatever type table the caller configured.
func demoPODBytes(names *remap.GlobalTypeTable) ([]byte, error) {
	propsType, _ := names.IDOf("Spa:Pod:Object:Param:Props")
	formatType, _ := names.IDOf("Spa:Pod:Object:Param:Format")
	volumeKey, _ := names.IDOf("Spa:Pod:Prop:volume")
	muteKey, _ := names.IDOf("Spa:Pod:Prop:mute")
	formatKey, _ := names.IDOf("Spa:Pod:Prop:format")

	buf := make([]byte, 512)
	b := pod.NewBuilder(buf)

	if err := b.OpenObject(propsType, 1); err != nil {
		return nil, err
	}
	if err := b.OpenProperty(volumeKey, pod.PropRead|pod.PropWrite); err != nil {
		return nil, err
	}
	if err := b.Float(0.8); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	if err := b.OpenProperty(muteKey, pod.PropRead|pod.PropWrite); err != nil {
		return nil, err
	}
	if err := b.Bool(false); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil { // closes the Props object
		return nil, err
	}

	if err := b.OpenObject(formatType, 2); err != nil {
		return nil, err
	}
	if err := b.OpenProperty(formatKey, pod.PropRead); err != nil {
		return nil, err
	}
	if err := b.String("S16LE"); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil { // closes the Format object
		return nil, err
	}

	if b.Overflowed() {
		return nil, fmt.Errorf("demo graph exceeds %d byte scratch buffer", len(buf))
	}
	return b.Bytes(), nil
}
