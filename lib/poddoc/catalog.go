// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package poddoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/graphpod/pod/lib/remap"
)

// PropertyDoc documents one property a given object type carries.
type PropertyDoc struct {
	Name        string
	ValueType   string
	Description string
}

// ObjectTypeDoc documents one well-known object type: its name (as it
// appears in the global type table) and the properties instances of
// that type are expected to carry.
type ObjectTypeDoc struct {
	TypeName   string
	Summary    string
	Properties []PropertyDoc
}

// GenerateMarkdown renders the full catalog -- the global type table
// followed by a per-object-type property reference -- as Markdown.
func GenerateMarkdown(names *remap.GlobalTypeTable, objectDocs []ObjectTypeDoc) string {
	var b strings.Builder

	b.WriteString("# POD Type Catalog\n\n")
	b.WriteString(typeTableSection(names))
	b.WriteString("\n")
	b.WriteString(objectTypeSection(objectDocs))
	return b.String()
}

func typeTableSection(names *remap.GlobalTypeTable) string {
	var b strings.Builder
	b.WriteString("## Global Type Table\n\n")
	if names == nil || names.Len() == 0 {
		b.WriteString("_No types registered._\n")
		return b.String()
	}
	b.WriteString("| ID | Name |\n")
	b.WriteString("| --- | --- |\n")
	for id := uint32(0); id < uint32(names.Len()); id++ {
		fmt.Fprintf(&b, "| %d | `%s` |\n", id, names.NameOf(id))
	}
	return b.String()
}

func objectTypeSection(docs []ObjectTypeDoc) string {
	var b strings.Builder
	b.WriteString("## Object Types\n\n")
	if len(docs) == 0 {
		b.WriteString("_No object types documented._\n")
		return b.String()
	}
	for _, doc := range docs {
		fmt.Fprintf(&b, "### `%s`\n\n", doc.TypeName)
		if doc.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", doc.Summary)
		}
		if len(doc.Properties) == 0 {
			b.WriteString("_No documented properties._\n\n")
			continue
		}
		b.WriteString("| Property | Type | Description |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, prop := range doc.Properties {
			fmt.Fprintf(&b, "| `%s` | %s | %s |\n", prop.Name, prop.ValueType, prop.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// markdownRenderer is initialized once; goldmark.Markdown is safe to
// share across Convert calls once configured.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.DefinitionList,
	),
)

// RenderHTML converts a Markdown catalog (as produced by
// [GenerateMarkdown]) to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("poddoc: render html: %w", err)
	}
	return buf.String(), nil
}
