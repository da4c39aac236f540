// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/graphpod/pod/lib/podinspect"
)

// printTree writes a plain-text indented rendering of a decoded POD
// tree, for `podump dump`/`podump replay` without --color.
func printTree(w io.Writer, node *podinspect.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	label := node.Label
	if label == "" {
		label = node.Tag.String()
	}

	if len(node.Children) == 0 {
		fmt.Fprintf(w, "%s%s: %s\n", prefix, label, node.Value)
		return
	}

	fmt.Fprintf(w, "%s%s (%s): %s\n", prefix, label, node.Tag, node.Value)
	for _, child := range node.Children {
		printTree(w, child, indent+1)
	}
}
