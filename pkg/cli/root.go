/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/martinmoraga/pyvolt/pkg/logging"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

const name = "pyvolt"

// Flags shared by every command that writes a document.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (defaults to stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, yaml, or table",
		Value:   string(serializer.FormatJSON),
	}
)

// New builds the root command tree.
func New() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Measurement layer tooling for power-system state estimation",
		Version:               version.Build,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version.Build, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version.Build,
				"commit", version.Commit,
				"date", version.Date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			assembleCmd(),
			planCmd(),
			replayCmd(),
		},
	}
}

// Run executes the CLI with SIGINT/SIGTERM cancellation. This is the
// entry point main calls.
func Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return New().Run(ctx, args)
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)", f, serializer.SupportedFormats())
	}
	return f, nil
}

// newDocumentWriter builds the serializer shared flags describe and a
// cleanup func releasing any file handle it holds.
func newDocumentWriter(cmd *cli.Command) (serializer.Serializer, func(), error) {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, nil, err
	}
	ser := serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	cleanup := func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}
	return ser, cleanup, nil
}
