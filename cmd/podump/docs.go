// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/poddoc"
)

func docsCommand() *cmdline.Command {
	var html bool

	return &cmdline.Command{
		Name:    "docs",
		Summary: "Generate a Markdown/HTML catalog of the global type table",
		Usage:   "podump docs [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("docs", pflag.ContinueOnError)
			fs.BoolVar(&html, "html", false, "also render catalog.html alongside catalog.md")
			return fs
		},
		Run: func(args []string) error {
			return runDocs(html)
		},
	}
}

func runDocs(html bool) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	markdown := poddoc.GenerateMarkdown(names, demoObjectTypeDocs())

	markdownPath := filepath.Join(cfg.Inspect.CatalogDir, "catalog.md")
	if err := os.WriteFile(markdownPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", markdownPath, err)
	}
	fmt.Println(markdownPath)

	if !html {
		return nil
	}

	rendered, err := poddoc.RenderHTML(markdown)
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(cfg.Inspect.CatalogDir, "catalog.html")
	if err := os.WriteFile(htmlPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	fmt.Println(htmlPath)
	return nil
}

// demoObjectTypeDocs documents the two object types the demo graph
// uses, so `podump docs` produces a non-empty catalog out of the box.
func demoObjectTypeDocs() []poddoc.ObjectTypeDoc {
	return []poddoc.ObjectTypeDoc{
		{
			TypeName: "Spa:Pod:Object:Param:Props",
			Summary:  "Stream control properties such as volume and mute.",
			Properties: []poddoc.PropertyDoc{
				{Name: "Spa:Pod:Prop:volume", ValueType: "Float", Description: "Linear volume, 0.0-10.0."},
				{Name: "Spa:Pod:Prop:mute", ValueType: "Bool", Description: "Whether the stream is muted."},
			},
		},
		{
			TypeName: "Spa:Pod:Object:Param:Format",
			Summary:  "Negotiated media format for a stream.",
			Properties: []poddoc.PropertyDoc{
				{Name: "Spa:Pod:Prop:format", ValueType: "String", Description: "Sample format identifier, e.g. S16LE."},
			},
		},
	}
}
