package api

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/plan"
	"github.com/martinmoraga/pyvolt/pkg/powerflow"
	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

// Serve() itself blocks until signal delivery, so these tests exercise
// the environment wiring and drive run() through a short-lived context.

func TestConstants(t *testing.T) {
	if name != "pyvoltd" {
		t.Errorf("name = %q, want %q", name, "pyvoltd")
	}
}

func TestInputsFromEnv(t *testing.T) {
	t.Run("all paths set", func(t *testing.T) {
		t.Setenv(envGrid, "grid.json")
		t.Setenv(envResults, "results.json")
		t.Setenv(envPlan, "plan.json")

		in, err := inputsFromEnv()
		if err != nil {
			t.Fatalf("inputsFromEnv() error = %v", err)
		}
		if in.GridPath != "grid.json" || in.ResultsPath != "results.json" || in.PlanPath != "plan.json" {
			t.Errorf("unexpected inputs: %+v", in)
		}
	})

	t.Run("missing paths fail", func(t *testing.T) {
		t.Setenv(envGrid, "grid.json")
		t.Setenv(envResults, "")
		t.Setenv(envPlan, "")

		_, err := inputsFromEnv()
		if err == nil {
			t.Fatal("expected error for missing paths")
		}
		if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("expected INVALID_ARGUMENT, got %v", err)
		}
	})
}

func TestAssemblerFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PYVOLT_MODE", "")
		t.Setenv("PYVOLT_DISTRIBUTION", "")
		t.Setenv("PYVOLT_SEED", "")

		a := assemblerFromEnv()
		if a.Mode != noise.ModeField {
			t.Errorf("expected field mode default, got %s", a.Mode)
		}
		if a.Version != version.Build {
			t.Errorf("expected version %s, got %s", version.Build, a.Version)
		}
		if a.Seed != 0 {
			t.Errorf("expected zero seed, got %d", a.Seed)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PYVOLT_MODE", "simulation")
		t.Setenv("PYVOLT_DISTRIBUTION", "uniform")
		t.Setenv("PYVOLT_SEED", "42")

		a := assemblerFromEnv()
		if a.Mode != noise.ModeSimulation {
			t.Errorf("expected simulation mode, got %s", a.Mode)
		}
		if a.Distribution != noise.DistUniform {
			t.Errorf("expected uniform distribution, got %s", a.Distribution)
		}
		if a.Seed != 42 {
			t.Errorf("expected seed 42, got %d", a.Seed)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		t.Setenv("PYVOLT_MODE", "nope")
		t.Setenv("PYVOLT_DISTRIBUTION", "nope")
		t.Setenv("PYVOLT_SEED", "not-a-number")

		a := assemblerFromEnv()
		if a.Mode != noise.ModeField {
			t.Errorf("expected field mode for invalid env, got %s", a.Mode)
		}
		if a.Seed != 0 {
			t.Errorf("expected zero seed for invalid env, got %d", a.Seed)
		}
	})
}

func TestRun_MissingInputs(t *testing.T) {
	t.Setenv(envGrid, "")
	t.Setenv(envResults, "")
	t.Setenv(envPlan, "")

	if err := run(context.Background()); err == nil {
		t.Fatal("expected run to fail without input paths")
	}
}

func TestRun_ServesAndShutsDown(t *testing.T) {
	dir := t.TempDir()

	write := func(fname string, doc any) string {
		t.Helper()
		data, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal %s: %v", fname, err)
		}
		path := filepath.Join(dir, fname)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("write %s: %v", fname, err)
		}
		return path
	}

	unc := plan.Percent(1)
	grid := &topology.Grid{
		Nodes: []*topology.Node{
			{UUID: "n1", Name: "Bus1", BaseVoltage: 400e3, BaseApparentPower: 100e6},
		},
	}
	results := &powerflow.Results{
		Nodes: []*powerflow.NodeResult{
			{UUID: "n1", Voltage: powerflow.Phasor{Re: 1.0, Im: 0}},
		},
	}
	p := &plan.Plan{Measurement: map[string]plan.Group{
		plan.GroupVmag: {Unc: &unc, UUIDs: []string{"n1"}},
	}}

	t.Setenv(envGrid, write("grid.json", grid))
	t.Setenv(envResults, write("results.json", results))
	t.Setenv(envPlan, write("plan.json", p))
	t.Setenv("PORT", "0")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "1")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}
