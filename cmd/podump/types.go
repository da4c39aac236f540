// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphpod/pod/lib/remap"
)

// builtinTypeNames is the global type table used when no
// types.table_file is configured: a handful of well-known SPA object
// and property type names, enough to make `podump inspect --demo` and
// `podump docs` produce readable output without an external file.
var builtinTypeNames = []string{
	"Spa:Pod:Object:Param:PropInfo",
	"Spa:Pod:Object:Param:Props",
	"Spa:Pod:Object:Param:Format",
	"Spa:Pod:Object:Param:Buffers",
	"Spa:Pod:Object:Param:Meta",
	"Spa:Pod:Object:Param:IO",
	"Spa:Pod:Object:Param:Profile",
	"Spa:Pod:Object:Param:PortConfig",
	"Spa:Pod:Object:Param:Route",
	"Spa:Pod:Object:Param:Latency",
	"Spa:Pod:Object:Param:ProcessLatency",
	"Spa:Pod:Prop:volume",
	"Spa:Pod:Prop:mute",
	"Spa:Pod:Prop:format",
}

// loadTypeNames builds the global type table from tableFile, a YAML
// file holding a flat list of type names in index order. An empty
// path falls back to builtinTypeNames.
func loadTypeNames(tableFile string) (*remap.GlobalTypeTable, error) {
	if tableFile == "" {
		return remap.NewGlobalTypeTable(builtinTypeNames), nil
	}

	data, err := os.ReadFile(tableFile)
	if err != nil {
		return nil, fmt.Errorf("reading type table %s: %w", tableFile, err)
	}

	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parsing type table %s: %w", tableFile, err)
	}

	return remap.NewGlobalTypeTable(names), nil
}
