/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/martinmoraga/pyvolt/pkg/assembler"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/telemetry"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

func replayCmd() *cli.Command {
	return &cli.Command{
		Name:                  "replay",
		EnableShellCompletion: true,
		Usage:                 "Replay a telemetry feed into an assembled measurement session",
		Description: `Assemble a measurement session in field mode (values track the power-flow
result, no simulated noise), then drive a recorded telemetry feed through
it sample by sample and report what happened: applied, filtered, rejected
by the sanity bounds, or unmatched.

Samples update measurements by quantity-kind equivalence: a phasor voltage
magnitude updates plain voltage magnitudes on the same element, a phasor
current magnitude updates plain and injection current magnitudes, power and
phase kinds match exactly. Samples naming untracked devices or kinds are
counted as unmatched, never errors.

# Examples

Replay as fast as the set accepts:
  pyvolt replay -g grid.yaml -r results.yaml -p plan.yaml --feed feed.yaml

Pace at 50 samples/second, one device only, without sanity bounds:
  pyvolt replay -g grid.yaml -r results.yaml -p plan.yaml --feed feed.yaml \
    --rate 50 --only "node-1*" --bounds=false`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "grid",
				Aliases:  []string{"g"},
				Required: true,
				Usage:    "Path/URI to the grid document",
			},
			&cli.StringFlag{
				Name:     "results",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Path/URI to the power-flow results document",
			},
			&cli.StringFlag{
				Name:     "plan",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "Path/URI to the measurement plan",
			},
			&cli.StringFlag{
				Name:     "feed",
				Required: true,
				Usage:    "Path/URI to the telemetry feed to replay",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Replay pace in samples per second (0 replays unpaced)",
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Replay burst size when paced",
				Value: 1,
			},
			&cli.StringSliceFlag{
				Name:  "only",
				Usage: "Device id wildcard pattern to admit (can be repeated; empty admits all)",
			},
			&cli.BoolFlag{
				Name:  "bounds",
				Usage: "Reject samples outside the per-family per-unit sanity bounds",
				Value: true,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ser, cleanup, err := newDocumentWriter(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			a := &assembler.Assembler{
				Version: version.Build,
				Mode:    noise.ModeField,
			}
			set, _, err := a.SessionFromFiles(ctx, assembler.Inputs{
				GridPath:    cmd.String("grid"),
				ResultsPath: cmd.String("results"),
				PlanPath:    cmd.String("plan"),
			})
			if err != nil {
				return fmt.Errorf("failed to assemble session: %w", err)
			}

			feedPath := cmd.String("feed")
			feed, err := telemetry.LoadFeed(feedPath)
			if err != nil {
				return fmt.Errorf("failed to load feed from %q: %w", feedPath, err)
			}
			slog.Info("replaying feed",
				"feed", feedPath,
				"samples", feed.Len(),
				"measurements", set.Len())

			r := &telemetry.Replayer{
				Set:  set,
				Only: cmd.StringSlice("only"),
			}
			if pace := cmd.Float("rate"); pace > 0 {
				r.Limiter = rate.NewLimiter(rate.Limit(pace), int(cmd.Int("burst")))
			}
			if cmd.Bool("bounds") {
				r.Bounds = telemetry.DefaultBounds()
			}

			stats, replayErr := r.Replay(ctx, feed.Samples)

			summary := telemetry.NewSummary(stats, feedPath, set.Len(), version.Build)
			if err := ser.Serialize(ctx, summary); err != nil {
				return fmt.Errorf("failed to serialize replay summary: %w", err)
			}

			if replayErr != nil {
				return fmt.Errorf("replay interrupted: %w", replayErr)
			}
			return nil
		},
	}
}
