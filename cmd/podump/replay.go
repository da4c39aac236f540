// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/podcapture"
	"github.com/graphpod/pod/lib/podinspect"
)

func replayCommand() *cmdline.Command {
	var color bool

	return &cmdline.Command{
		Name:    "replay",
		Summary: "Replay a capture file, printing each frame",
		Usage:   "podump replay FILE [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("replay", pflag.ContinueOnError)
			fs.BoolVar(&color, "color", false, "syntax-highlight each frame's body")
			return fs
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: podump replay FILE")
			}
			return runReplay(args[0], color)
		},
	}
}

func runReplay(path string, color bool) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening capture file %s: %w", path, err)
	}
	defer file.Close()

	reader := podcapture.NewReader(file)
	index := 0
	for {
		frame, err := reader.ReadFrame()
		if errors.Is(err, podcapture.ErrReplayDone) {
			break
		}
		if err != nil {
			return err
		}

		fmt.Printf("--- frame %d: %s client=%d at %s ---\n",
			index, frame.Direction, frame.ClientID, frame.Timestamp.Format("15:04:05.000"))

		root, err := podinspect.BuildTopLevel(frame.Body, names)
		if err != nil {
			fmt.Printf("  <undecodable: %v>\n", err)
			index++
			continue
		}

		if color {
			out, err := podinspect.Render(root, "monokai")
			if err != nil {
				return err
			}
			fmt.Print(out)
		} else {
			printTree(os.Stdout, root, 1)
		}
		index++
	}

	return nil
}
