// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// podump is a standalone CLI for working with POD-encoded data
// outside of a running client: decoding and pretty-printing buffers,
// recording and replaying captured traffic, browsing a decoded tree
// interactively, generating a type-table catalog, and mounting a
// decoded object graph as a debug filesystem.
package main

import (
	"fmt"
	"os"

	"github.com/graphpod/pod/cmd/podump/cmdline"
)

const podumpVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return root().Execute(os.Args[1:])
}

func root() *cmdline.Command {
	return &cmdline.Command{
		Name: "podump",
		Description: `podump: inspect, capture, and replay POD-encoded protocol traffic.`,
		Subcommands: []*cmdline.Command{
			dumpCommand(),
			captureCommand(),
			replayCommand(),
			inspectCommand(),
			docsCommand(),
			fsCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("podump %s\n", podumpVersion)
					return nil
				},
			},
		},
		Examples: []cmdline.Example{
			{Description: "Browse the built-in demo graph", Command: "podump inspect --demo"},
			{Description: "Decode a captured frame with syntax highlighting", Command: "podump dump frame.pod --color"},
			{Description: "Record a session to disk", Command: "podump capture --out session.podcap"},
			{Description: "Replay a recorded session", Command: "podump replay session.podcap"},
			{Description: "Generate the type catalog as Markdown and HTML", Command: "podump docs --html"},
			{Description: "Mount the demo object graph for inspection", Command: "podump fs /tmp/pod"},
		},
	}
}
