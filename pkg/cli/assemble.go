/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/martinmoraga/pyvolt/pkg/assembler"
	"github.com/martinmoraga/pyvolt/pkg/defaults"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

func assembleCmd() *cli.Command {
	return &cli.Command{
		Name:                  "assemble",
		EnableShellCompletion: true,
		Usage:                 "Assemble a measurement report from a grid, power-flow results, and a plan",
		Description: `Expand a measurement plan against a grid and a solved power-flow result,
inject noise, and emit the measurement report with the estimator-facing
vectors (values, weights, covariances, per-unit and actual).

Ideal values come from the power-flow result: phasor magnitudes via the
absolute value, phases via the angle, powers via the real/imaginary parts.
Phasor groups (Vpmu, Ipmu, Ipmu_inj) expand into a magnitude/phase pair per
element.

# Noise

--mode simulation perturbs ideal values under the selected --distribution
(normal or uniform) with a reproducible --seed. --mode field passes ideal
values through unperturbed; standard deviations still derive from the
declared uncertainties.

# Examples

Assemble with defaults (simulation, normal, seeded):
  pyvolt assemble -g grid.yaml -r results.yaml -p plan.yaml

Reproducible run in canonical estimator order, written to a file:
  pyvolt assemble -g grid.yaml -r results.yaml -p plan.yaml \
    --seed 42 --sorted -o report.yaml -f yaml

Field mode with a human summary on stderr:
  pyvolt assemble -g grid.yaml -r results.yaml -p plan.yaml \
    --mode field --summary`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "grid",
				Aliases:  []string{"g"},
				Required: true,
				Usage:    "Path/URI to the grid document (nodes and branches with base quantities)",
			},
			&cli.StringFlag{
				Name:     "results",
				Aliases:  []string{"r"},
				Required: true,
				Usage:    "Path/URI to the power-flow results document (per-unit phasors)",
			},
			&cli.StringFlag{
				Name:     "plan",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "Path/URI to the measurement plan (groups, uncertainties, element uuids)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Noise mode: simulation or field",
				Value: noise.ModeSimulation.String(),
			},
			&cli.StringFlag{
				Name:  "distribution",
				Usage: "Noise distribution for simulation mode: normal or uniform",
				Value: noise.DistNormal.String(),
			},
			&cli.UintFlag{
				Name:  "seed",
				Usage: "Noise source seed (0 uses the model default)",
			},
			&cli.BoolFlag{
				Name:  "sorted",
				Usage: "Emit measurements in canonical estimator order",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print a human-readable summary to stderr",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, ok := noise.ParseMode(cmd.String("mode"))
			if !ok {
				return fmt.Errorf("unknown noise mode: %q", cmd.String("mode"))
			}
			dist, ok := noise.ParseDistribution(cmd.String("distribution"))
			if !ok {
				return fmt.Errorf("unknown noise distribution: %q", cmd.String("distribution"))
			}

			ser, cleanup, err := newDocumentWriter(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			a := &assembler.Assembler{
				Version:      version.Build,
				Mode:         mode,
				Distribution: dist,
				Seed:         uint64(cmd.Uint("seed")),
				Sorted:       cmd.Bool("sorted"),
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIAssembleTimeout)
			defer cancel()

			rep, err := a.AssembleFromFiles(ctx, assembler.Inputs{
				GridPath:    cmd.String("grid"),
				ResultsPath: cmd.String("results"),
				PlanPath:    cmd.String("plan"),
			})
			if err != nil {
				return fmt.Errorf("failed to assemble report: %w", err)
			}

			if err := ser.Serialize(ctx, rep); err != nil {
				return fmt.Errorf("failed to serialize report: %w", err)
			}

			if cmd.Bool("summary") {
				printSummary(rep)
			}
			return nil
		},
	}
}

// printSummary writes human totals to stderr so stdout stays a clean
// document stream.
func printSummary(rep *assembler.Report) {
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "assembled %d measurements (run %s)\n", len(rep.Records), rep.Run)
	p.Fprintf(os.Stderr, "  mode: %s", rep.Mode)
	if rep.Mode == noise.ModeSimulation.String() {
		p.Fprintf(os.Stderr, ", distribution: %s, seed: %d", rep.Distribution, rep.Seed)
	}
	p.Fprintf(os.Stderr, "\n  vector length: %d, sorted: %v\n", len(rep.Vectors.Values), rep.Sorted)
}
