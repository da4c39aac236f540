// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package poddoc

import (
	"strings"
	"testing"

	"github.com/graphpod/pod/lib/remap"
)

func testNames() *remap.GlobalTypeTable {
	return remap.NewGlobalTypeTable([]string{
		"Spa:Pod:Object:Param:Props",
		"Spa:Pod:Object:Param:Format",
	})
}

func testObjectDocs() []ObjectTypeDoc {
	return []ObjectTypeDoc{
		{
			TypeName: "Spa:Pod:Object:Param:Props",
			Summary:  "Stream control properties such as volume and mute.",
			Properties: []PropertyDoc{
				{Name: "volume", ValueType: "Float", Description: "Linear volume, 0.0-10.0."},
				{Name: "mute", ValueType: "Bool", Description: "Whether the stream is muted."},
			},
		},
	}
}

func TestGenerateMarkdownIncludesTypeTable(t *testing.T) {
	markdown := GenerateMarkdown(testNames(), testObjectDocs())
	if !strings.Contains(markdown, "Spa:Pod:Object:Param:Props") {
		t.Error("expected markdown to list registered type names")
	}
	if !strings.Contains(markdown, "| 0 |") {
		t.Error("expected markdown type table to include numeric ids")
	}
}

func TestGenerateMarkdownIncludesObjectProperties(t *testing.T) {
	markdown := GenerateMarkdown(testNames(), testObjectDocs())
	if !strings.Contains(markdown, "volume") {
		t.Error("expected markdown to document the volume property")
	}
	if !strings.Contains(markdown, "Linear volume") {
		t.Error("expected markdown to include the property description")
	}
}

func TestGenerateMarkdownHandlesEmptyTable(t *testing.T) {
	markdown := GenerateMarkdown(nil, nil)
	if !strings.Contains(markdown, "No types registered") {
		t.Error("expected placeholder text for an empty type table")
	}
	if !strings.Contains(markdown, "No object types documented") {
		t.Error("expected placeholder text for no object docs")
	}
}

func TestRenderHTMLProducesHTMLTable(t *testing.T) {
	markdown := GenerateMarkdown(testNames(), testObjectDocs())
	html, err := RenderHTML(markdown)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("expected rendered HTML to contain a <table> element for the GFM table")
	}
	if !strings.Contains(html, "<h1>") {
		t.Error("expected rendered HTML to contain an <h1> for the top-level heading")
	}
}

func TestRenderHTMLEscapesNothingUnexpected(t *testing.T) {
	html, err := RenderHTML("# Title\n\nSome *emphasis* text.\n")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("expected emphasis markdown to render as <em>, got: %s", html)
	}
}
