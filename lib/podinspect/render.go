// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podinspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Render produces a syntax-highlighted pseudo-JSON dump of a decoded
// POD tree: every node becomes a JSON-ish object with "tag", "label",
// and either "value" (for a leaf) or "children" (for a container).
// This is not valid JSON -- POD's own tag vocabulary (Fraction,
// Rectangle, Fd, ...) has no JSON equivalent -- but the JSON lexer's
// highlighting rules (keys, strings, numbers, punctuation) make the
// structure legible, which is all a debug dump needs.
//
// style is a Chroma style name ("monokai", "dracula", ...); an empty
// string defaults to "monokai".
func Render(root *Node, style string) (string, error) {
	if style == "" {
		style = "monokai"
	}
	var source strings.Builder
	writeNode(&source, root, 0)

	var out strings.Builder
	if err := quick.Highlight(&out, source.String(), "json", "terminal256", style); err != nil {
		return "", fmt.Errorf("podinspect: highlight: %w", err)
	}
	return out.String(), nil
}

func writeNode(b *strings.Builder, n *Node, indent int) {
	pad := strings.Repeat("  ", indent)
	innerPad := strings.Repeat("  ", indent+1)

	fmt.Fprintf(b, "%s{\n", pad)
	fmt.Fprintf(b, "%s\"tag\": %s,\n", innerPad, strconv.Quote(n.Tag.String()))
	if n.Label != "" {
		fmt.Fprintf(b, "%s\"label\": %s,\n", innerPad, strconv.Quote(n.Label))
	}

	if len(n.Children) == 0 {
		fmt.Fprintf(b, "%s\"value\": %s\n", innerPad, strconv.Quote(n.Value))
		fmt.Fprintf(b, "%s}", pad)
		return
	}

	fmt.Fprintf(b, "%s\"summary\": %s,\n", innerPad, strconv.Quote(n.Value))
	fmt.Fprintf(b, "%s\"children\": [\n", innerPad)
	for i, child := range n.Children {
		writeNode(b, child, indent+2)
		if i < len(n.Children)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s]\n", innerPad)
	fmt.Fprintf(b, "%s}", pad)
}
