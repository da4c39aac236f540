// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/podinspect"
)

func inspectCommand() *cmdline.Command {
	var (
		demo     bool
		filePath string
	)

	return &cmdline.Command{
		Name:    "inspect",
		Summary: "Browse a decoded POD tree interactively",
		Description: `Open the interactive tree browser over a POD buffer -- a file, stdin,
or the built-in demo object graph with --demo.`,
		Usage: "podump inspect [file] [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			fs.BoolVar(&demo, "demo", false, "browse the built-in demo object graph")
			return fs
		},
		Examples: []cmdline.Example{
			{Description: "Browse the demo graph", Command: "podump inspect --demo"},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				filePath = args[0]
			}
			return runInspect(filePath, demo)
		},
	}
}

func runInspect(filePath string, demo bool) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	var buf []byte
	if demo {
		buf, err = demoPODBytes(names)
	} else if filePath == "" || filePath == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(filePath)
	}
	if err != nil {
		return err
	}

	root, err := podinspect.BuildTopLevel(buf, names)
	if err != nil {
		return fmt.Errorf("decoding POD: %w", err)
	}

	model := podinspect.NewModel(root)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}
