// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dustin/go-humanize"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/podcapture"
)

func captureCommand() *cmdline.Command {
	var (
		outPath  string
		clientID uint32
		demo     bool
	)

	cmd := &cmdline.Command{
		Name:    "capture",
		Summary: "Record POD traffic to a capture file",
		Description: `Record a raw POD body read from stdin (or, with --demo, the built-in
sample graph) as a single frame in a capture file, and index it so it
shows up in 'podump capture captures'.`,
		Usage: "podump capture --out FILE [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("capture", pflag.ContinueOnError)
			fs.StringVar(&outPath, "out", "", "capture file to write (required)")
			fs.Uint32Var(&clientID, "client-id", 0, "global object id the captured frames concern")
			fs.BoolVar(&demo, "demo", false, "record the built-in demo object graph as a single outbound frame")
			return fs
		},
		Run: func(args []string) error {
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}
			return runCapture(outPath, clientID, demo)
		},
	}

	cmd.Subcommands = []*cmdline.Command{capturesCommand()}
	return cmd
}

func runCapture(outPath string, clientID uint32, demo bool) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating capture file %s: %w", outPath, err)
	}
	defer file.Close()

	writer := podcapture.NewWriter(file)

	var bodies [][]byte
	if demo {
		body, err := demoPODBytes(names)
		if err != nil {
			return err
		}
		bodies = [][]byte{body}
	} else {
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		bodies = [][]byte{body}
	}

	frameCount := 0
	for _, body := range bodies {
		if err := writer.WriteFrame(time.Now(), podcapture.DirectionOutbound, clientID, body, demo); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
		frameCount++
	}

	info, err := file.Stat()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("capture written", "path", outPath, "frames", frameCount, "size", humanize.Bytes(uint64(info.Size())))

	index, err := podcapture.OpenIndex(cfg.IndexPath(), logger)
	if err != nil {
		return fmt.Errorf("opening capture index: %w", err)
	}
	defer index.Close()

	record := podcapture.Record{
		SessionID:  podcapture.NewSessionID(),
		Path:       outPath,
		StartedAt:  time.Now(),
		ClientID:   clientID,
		FrameCount: frameCount,
		ByteSize:   info.Size(),
	}
	return index.Put(context.Background(), record)
}

func capturesCommand() *cmdline.Command {
	return &cmdline.Command{
		Name:    "captures",
		Summary: "List recorded capture files",
		Usage:   "podump capture captures",
		Run: func(args []string) error {
			return runCaptures()
		},
	}
}

func runCaptures() error {
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	index, err := podcapture.OpenIndex(cfg.IndexPath(), logger)
	if err != nil {
		return fmt.Errorf("opening capture index: %w", err)
	}
	defer index.Close()

	records, err := index.List(context.Background())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no captures recorded")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %s  client=%d  frames=%d  size=%s\n",
			record.SessionID, record.Path, record.ClientID, record.FrameCount,
			humanize.Bytes(uint64(record.ByteSize)))
	}
	return nil
}
