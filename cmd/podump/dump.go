// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/podinspect"
	"github.com/graphpod/pod/lib/remap"
)

func dumpCommand() *cmdline.Command {
	var (
		color    bool
		demo     bool
		style    string
		filePath string
	)

	return &cmdline.Command{
		Name:    "dump",
		Summary: "Decode a POD buffer and print it as a tree",
		Description: `Decode a raw POD buffer -- a file, or stdin when no file is given
-- and print its structure as indented text, or as syntax-highlighted
pseudo-JSON with --color.`,
		Usage: "podump dump [file] [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("dump", pflag.ContinueOnError)
			fs.BoolVar(&color, "color", false, "syntax-highlight the output")
			fs.BoolVar(&demo, "demo", false, "decode the built-in demo object graph instead of reading input")
			fs.StringVar(&style, "style", "monokai", "chroma style to use with --color")
			return fs
		},
		Examples: []cmdline.Example{
			{Description: "Dump the built-in demo graph", Command: "podump dump --demo --color"},
			{Description: "Dump a captured frame body", Command: "podump dump frame.pod"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				filePath = args[0]
			}
			return runDump(filePath, demo, color, style)
		},
	}
}

func runDump(filePath string, demo, color bool, style string) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	buf, err := readDumpInput(filePath, demo, names)
	if err != nil {
		return err
	}

	root, err := podinspect.BuildTopLevel(buf, names)
	if err != nil {
		return fmt.Errorf("decoding POD: %w", err)
	}

	if color {
		out, err := podinspect.Render(root, style)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	printTree(os.Stdout, root, 0)
	return nil
}

func readDumpInput(filePath string, demo bool, names *remap.GlobalTypeTable) ([]byte, error) {
	if demo {
		return demoPODBytes(names)
	}
	if filePath == "" || filePath == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filePath)
}
