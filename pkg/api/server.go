package api

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"github.com/martinmoraga/pyvolt/pkg/assembler"
	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/logging"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/server"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

const name = "pyvoltd"

// Input path environment variables. All three are required.
const (
	envGrid    = "PYVOLT_GRID"
	envResults = "PYVOLT_RESULTS"
	envPlan    = "PYVOLT_PLAN"
)

// inputsFromEnv reads the three input paths from the environment.
func inputsFromEnv() (assembler.Inputs, error) {
	in := assembler.Inputs{
		GridPath:    os.Getenv(envGrid),
		ResultsPath: os.Getenv(envResults),
		PlanPath:    os.Getenv(envPlan),
	}
	missing := make([]string, 0, 3)
	if in.GridPath == "" {
		missing = append(missing, envGrid)
	}
	if in.ResultsPath == "" {
		missing = append(missing, envResults)
	}
	if in.PlanPath == "" {
		missing = append(missing, envPlan)
	}
	if len(missing) > 0 {
		return in, errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"missing input paths", map[string]any{"env": missing})
	}
	return in, nil
}

// assemblerFromEnv builds the session assembler. The daemon defaults to
// field mode: values track live telemetry instead of simulated noise.
func assemblerFromEnv() *assembler.Assembler {
	a := &assembler.Assembler{
		Version: version.Build,
		Mode:    noise.ModeField,
	}
	if mode, ok := noise.ParseMode(os.Getenv("PYVOLT_MODE")); ok {
		a.Mode = mode
	}
	if dist, ok := noise.ParseDistribution(os.Getenv("PYVOLT_DISTRIBUTION")); ok {
		a.Distribution = dist
	}
	if s := os.Getenv("PYVOLT_SEED"); s != "" {
		if seed, err := strconv.ParseUint(s, 10, 64); err == nil {
			a.Seed = seed
		}
	}
	return a
}

// Serve assembles the measurement session from the environment-named
// inputs and serves it until SIGINT/SIGTERM. Returns an error if the
// session cannot be assembled or the server fails.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return run(ctx)
}

func run(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version.Build)
	slog.Info("starting",
		"name", name,
		"version", version.Build,
		"commit", version.Commit,
		"date", version.Date,
	)

	in, err := inputsFromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	a := assemblerFromEnv()
	set, model, err := a.SessionFromFiles(ctx, in)
	if err != nil {
		slog.Error("failed to assemble session", "error", err)
		return err
	}
	slog.Info("session assembled",
		"measurements", set.Len(),
		"mode", model.Mode().String(),
		"distribution", model.Distribution().String(),
		"seed", model.Seed(),
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version.Build),
		server.WithSession(server.NewSession(set, model, version.Build)),
	)

	// Under systemd Type=notify, readiness gates dependent units.
	if sent, nerr := sd.SdNotify(false, sd.SdNotifyReady); nerr != nil {
		slog.Warn("systemd notify failed", "error", nerr)
	} else if sent {
		defer func() { _, _ = sd.SdNotify(false, sd.SdNotifyStopping) }()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		return notifyWatchdog(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// notifyWatchdog pets the systemd watchdog at half the configured
// interval. A no-op when WatchdogSec is unset.
func notifyWatchdog(ctx context.Context) error {
	interval, err := sd.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return nil
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := sd.SdNotify(false, sd.SdNotifyWatchdog); err != nil {
				slog.Warn("watchdog notify failed", "error", err)
			}
		}
	}
}
