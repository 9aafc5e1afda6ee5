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

	"github.com/martinmoraga/pyvolt/pkg/defaults"
	"github.com/martinmoraga/pyvolt/pkg/oci"
	"github.com/martinmoraga/pyvolt/pkg/plan"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Validate and distribute measurement plans",
		Commands: []*cli.Command{
			planValidateCmd(),
			planPushCmd(),
		},
	}
}

func planValidateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a measurement plan, optionally against a grid",
		Description: `Check a measurement plan document and report every problem found:
unknown group names, missing or extra uncertainties, empty uuid lists.

With --grid, every element uuid must also resolve to a grid element of the
kind its group expands against (node groups: Vmag, Pinj, Qinj, Vpmu,
Ipmu_inj; branch groups: P1, Q1, P2, Q2, Imag, Ipmu). Without a grid those
checks are skipped and the overall status is at best "partial".

# Examples

Shape-only validation:
  pyvolt plan validate -p plan.yaml

Full validation against a grid, failing the command on problems:
  pyvolt plan validate -p plan.yaml -g grid.yaml --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plan",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "Path/URI to the measurement plan to validate",
			},
			&cli.StringFlag{
				Name:    "grid",
				Aliases: []string{"g"},
				Usage:   "Path/URI to the grid document for element uuid resolution",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any check fails",
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

			planPath := cmd.String("plan")
			p, err := serializer.FromFile[plan.Plan](planPath)
			if err != nil {
				return fmt.Errorf("failed to load plan from %q: %w", planPath, err)
			}

			var grid *topology.Grid
			gridPath := cmd.String("grid")
			if gridPath != "" {
				if grid, err = topology.Load(gridPath); err != nil {
					return fmt.Errorf("failed to load grid from %q: %w", gridPath, err)
				}
			}

			v := plan.NewValidation(p, grid, version.Build)
			v.PlanSource = planPath
			v.GridSource = gridPath

			if err := ser.Serialize(ctx, v); err != nil {
				return fmt.Errorf("failed to serialize validation result: %w", err)
			}

			slog.Info("plan validation completed",
				"status", v.Summary.Status,
				"passed", v.Summary.Passed,
				"failed", v.Summary.Failed,
				"skipped", v.Summary.Skipped)

			if cmd.Bool("fail-on-error") && v.Summary.Status == plan.ValidationStatusFail {
				return fmt.Errorf("plan validation failed: %d check(s) did not pass", v.Summary.Failed)
			}
			return nil
		},
	}
}

func planPushCmd() *cli.Command {
	return &cli.Command{
		Name:                  "push",
		EnableShellCompletion: true,
		Usage:                 "Publish a measurement plan to an OCI registry",
		Description: `Pack a plan file as a single-layer OCI 1.1 artifact and push it to a
registry. Authentication uses the standard Docker credential helpers.

If the target carries no tag, the CLI version is used.

# Examples

Push to GHCR:
  pyvolt plan push -p plan.yaml --to oci://ghcr.io/sogno/plans:v1.0.0

Push to a local development registry over HTTP:
  pyvolt plan push -p plan.yaml --to oci://localhost:5000/plans --plain-http`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plan",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "Path to the measurement plan file to push",
			},
			&cli.StringFlag{
				Name:     "to",
				Required: true,
				Usage:    "Target OCI reference (oci://registry/repository[:tag])",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.String("to")
			ref, err := oci.ParseTarget(target)
			if err != nil {
				return err
			}
			if !ref.IsOCI {
				return fmt.Errorf("push target must be an OCI reference (oci://...), got %q", target)
			}
			if ref.Tag == "" {
				ref = ref.WithTag(version.Build)
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIPushTimeout)
			defer cancel()

			res, err := oci.Push(ctx, oci.PushOptions{
				Path:         cmd.String("plan"),
				Registry:     ref.Registry,
				Repository:   ref.Repository,
				Tag:          ref.Tag,
				ArtifactType: oci.ArtifactTypePlan,
				Annotations: map[string]string{
					"org.opencontainers.image.version": ref.Tag,
				},
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
			})
			if err != nil {
				return fmt.Errorf("failed to push plan: %w", err)
			}

			slog.Info("plan pushed",
				"reference", res.Reference,
				"digest", res.Digest)
			return nil
		},
	}
}
