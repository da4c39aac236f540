// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/graphpod/pod/cmd/podump/cmdline"
	"github.com/graphpod/pod/lib/config"
	"github.com/graphpod/pod/lib/podfs"
)

func fsCommand() *cmdline.Command {
	var demo bool

	return &cmdline.Command{
		Name:    "fs",
		Summary: "Mount a decoded object graph as a read-only FUSE filesystem",
		Description: `Mount a FUSE filesystem exposing the built-in demo object graph at
the given mountpoint: one directory per Object, with a "type" file, an
"id" file, and one file per property. Runs until interrupted.`,
		Usage: "podump fs MOUNTPOINT [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("fs", pflag.ContinueOnError)
			fs.BoolVar(&demo, "demo", true, "serve the built-in demo object graph")
			return fs
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: podump fs MOUNTPOINT")
			}
			return runFS(args[0])
		},
	}
}

func runFS(mountpoint string) error {
	cfg := config.Default()
	names, err := loadTypeNames(cfg.Types.TableFile)
	if err != nil {
		return err
	}

	buf, err := demoPODBytes(names)
	if err != nil {
		return err
	}
	snapshot, err := decodeSnapshot(buf, names)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	server, err := podfs.Mount(podfs.Options{
		Mountpoint: mountpoint,
		Source:     podfs.NewStaticSource(snapshot),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	<-signalChannel

	logger.Info("unmounting", "mountpoint", mountpoint)
	return server.Unmount()
}
