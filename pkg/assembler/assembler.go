package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/plan"
	"github.com/martinmoraga/pyvolt/pkg/powerflow"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// Inputs names the three files one assembly run consumes.
type Inputs struct {
	GridPath    string
	ResultsPath string
	PlanPath    string
}

// Assembler expands a measurement plan against a grid and a power-flow
// result, runs the noise pass, and emits the measurement report. The zero
// value assembles in simulation mode with normal noise and the default
// seed.
type Assembler struct {
	// Version is stamped into emitted report headers.
	Version string

	// Mode selects simulation or field behavior for the noise pass.
	Mode noise.Mode

	// Distribution selects the simulated noise shape.
	Distribution noise.Distribution

	// Seed seeds the noise source. Zero means the model default.
	Seed uint64

	// Sorted emits the set in canonical estimator order instead of plan
	// order.
	Sorted bool

	// Serializer writes the report. If nil, a stdout JSON writer is used.
	Serializer serializer.Serializer
}

// model builds the noise model for one run.
func (a *Assembler) model() *noise.Model {
	opts := []noise.Option{
		noise.WithMode(a.Mode),
		noise.WithDistribution(a.Distribution),
	}
	if a.Seed != 0 {
		opts = append(opts, noise.WithSeed(a.Seed))
	}
	return noise.New(opts...)
}

// Run assembles from the input files and serializes the report.
func (a *Assembler) Run(ctx context.Context, in Inputs) error {
	rep, err := a.AssembleFromFiles(ctx, in)
	if err != nil {
		return err
	}

	if a.Serializer == nil {
		a.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
	if err := a.Serializer.Serialize(ctx, rep); err != nil {
		slog.Error("failed to serialize report", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	return nil
}

// AssembleFromFiles loads the grid, result, and plan files in parallel,
// then builds the report.
func (a *Assembler) AssembleFromFiles(ctx context.Context, in Inputs) (*Report, error) {
	grid, results, p, err := loadInputs(in)
	if err != nil {
		return nil, err
	}
	return a.Build(ctx, grid, results, p)
}

// SessionFromFiles loads the inputs and assembles the set for serving:
// the set plus the model that perturbed it. The daemon and replay paths
// use this form so live updates land in the same set the report reads.
func (a *Assembler) SessionFromFiles(ctx context.Context, in Inputs) (*measurement.Set, *noise.Model, error) {
	grid, results, p, err := loadInputs(in)
	if err != nil {
		return nil, nil, err
	}
	return a.assemble(ctx, grid, results, p)
}

// loadInputs loads the three input files in parallel.
func loadInputs(in Inputs) (*topology.Grid, *powerflow.Results, *plan.Plan, error) {
	var (
		grid    *topology.Grid
		results *powerflow.Results
		p       *plan.Plan
	)

	var g errgroup.Group
	g.Go(func() error {
		defer observeInputLoad("grid", time.Now())
		var err error
		if grid, err = topology.Load(in.GridPath); err != nil {
			return fmt.Errorf("failed to load grid: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer observeInputLoad("results", time.Now())
		var err error
		if results, err = powerflow.Load(in.ResultsPath); err != nil {
			return fmt.Errorf("failed to load power-flow results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer observeInputLoad("plan", time.Now())
		var err error
		if p, err = plan.Load(in.PlanPath); err != nil {
			return fmt.Errorf("failed to load measurement plan: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		assemblyTotal.WithLabelValues("error").Inc()
		slog.Error("failed to load assembly inputs", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}

	return grid, results, p, nil
}

// Build expands the plan into a measurement set, runs the noise pass, and
// emits the report.
func (a *Assembler) Build(ctx context.Context, grid *topology.Grid, results powerflow.Provider, p *plan.Plan) (*Report, error) {
	set, model, err := a.assemble(ctx, grid, results, p)
	if err != nil {
		return nil, err
	}
	return NewReport(set, model, a.Version, a.Sorted), nil
}

// assemble is the instrumented core shared by Build and SessionFromFiles.
func (a *Assembler) assemble(ctx context.Context, grid *topology.Grid, results powerflow.Provider, p *plan.Plan) (*measurement.Set, *noise.Model, error) {
	start := time.Now()
	defer func() {
		assemblyDuration.Observe(time.Since(start).Seconds())
	}()

	model := a.model()
	set, err := a.buildSet(ctx, model, grid, results, p)
	if err != nil {
		assemblyTotal.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	assemblyTotal.WithLabelValues("success").Inc()
	assemblyMeasurements.Set(float64(set.Len()))
	slog.DebugContext(ctx, "assembly complete",
		slog.Int("measurements", set.Len()),
		slog.String("mode", model.Mode().String()))

	return set, model, nil
}

// BuildSet expands, validates, and perturbs without emitting a report.
// Callers holding the set for live telemetry updates use this form.
func (a *Assembler) BuildSet(ctx context.Context, grid *topology.Grid, results powerflow.Provider, p *plan.Plan) (*measurement.Set, error) {
	return a.buildSet(ctx, a.model(), grid, results, p)
}

func (a *Assembler) buildSet(ctx context.Context, model *noise.Model, grid *topology.Grid, results powerflow.Provider, p *plan.Plan) (*measurement.Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	set, err := Expand(p, grid, results)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "expanded measurement plan",
		slog.Int("groups", p.Groups()),
		slog.Int("measurements", set.Len()))

	set.Inject(model)
	if a.Sorted {
		set = set.Sorted()
	}
	return set, nil
}

// Expand walks the plan's groups in their fixed order and creates one
// measurement per scalar entry and a magnitude/phase pair per phasor
// entry, reading ideal values from the provider. An element uuid missing
// from the grid or the results is a hard failure: a plan naming unknown
// devices is misconfigured, and skipping entries would silently shrink
// the estimator's vector.
func Expand(p *plan.Plan, grid *topology.Grid, provider powerflow.Provider) (*measurement.Set, error) {
	set := measurement.NewSet()
	for _, name := range plan.GroupOrder {
		g, ok := p.Measurement[name]
		if !ok {
			continue
		}
		if err := expandGroup(set, name, g, grid, provider); err != nil {
			return nil, errors.WrapWithContext(errors.CodeOf(err),
				"failed to expand measurement group", err, map[string]any{"group": name})
		}
	}
	return set, nil
}

func expandGroup(set *measurement.Set, name string, g plan.Group, grid *topology.Grid, provider powerflow.Provider) error {
	switch name {
	case plan.GroupVmag:
		return eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			_, err := set.Create(n, topology.KindNode, measurement.KindVmag, r.Voltage.Magnitude(), g.Unc.Float64())
			return err
		})
	case plan.GroupPinj:
		return eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			_, err := set.Create(n, topology.KindNode, measurement.KindPinj, r.Power.Re, g.Unc.Float64())
			return err
		})
	case plan.GroupQinj:
		return eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			_, err := set.Create(n, topology.KindNode, measurement.KindQinj, r.Power.Im, g.Unc.Float64())
			return err
		})
	case plan.GroupP1:
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			_, err := set.Create(b, topology.KindBranch, measurement.KindP1, r.Power.Re, g.Unc.Float64())
			return err
		})
	case plan.GroupQ1:
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			_, err := set.Create(b, topology.KindBranch, measurement.KindQ1, r.Power.Im, g.Unc.Float64())
			return err
		})
	case plan.GroupP2:
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			_, err := set.Create(b, topology.KindBranch, measurement.KindP2, r.Power2.Re, g.Unc.Float64())
			return err
		})
	case plan.GroupQ2:
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			_, err := set.Create(b, topology.KindBranch, measurement.KindQ2, r.Power2.Im, g.Unc.Float64())
			return err
		})
	case plan.GroupImag:
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			_, err := set.Create(b, topology.KindBranch, measurement.KindImag, r.Current.Magnitude(), g.Unc.Float64())
			return err
		})
	case plan.GroupVpmu:
		// All magnitudes first, then all phases.
		if err := eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			_, err := set.Create(n, topology.KindNode, measurement.KindVpmuMag, r.Voltage.Magnitude(), g.UncMag.Float64())
			return err
		}); err != nil {
			return err
		}
		return eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			_, err := set.Create(n, topology.KindNode, measurement.KindVpmuPhase, r.Voltage.Angle(), g.UncPhase.Float64())
			return err
		})
	case plan.GroupIpmu:
		// Magnitude and phase interleaved per element.
		return eachBranch(g, grid, provider, func(b *topology.Branch, r *powerflow.BranchResult) error {
			if _, err := set.Create(b, topology.KindBranch, measurement.KindIpmuMag, r.Current.Magnitude(), g.UncMag.Float64()); err != nil {
				return err
			}
			_, err := set.Create(b, topology.KindBranch, measurement.KindIpmuPhase, r.Current.Angle(), g.UncPhase.Float64())
			return err
		})
	case plan.GroupIpmuInj:
		return eachNode(g, grid, provider, func(n *topology.Node, r *powerflow.NodeResult) error {
			if _, err := set.Create(n, topology.KindNode, measurement.KindIpmuInjMag, r.Current.Magnitude(), g.UncMag.Float64()); err != nil {
				return err
			}
			_, err := set.Create(n, topology.KindNode, measurement.KindIpmuInjPhase, r.Current.Angle(), g.UncPhase.Float64())
			return err
		})
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"unknown measurement group", map[string]any{"group": name})
	}
}

func eachNode(g plan.Group, grid *topology.Grid, provider powerflow.Provider, fn func(*topology.Node, *powerflow.NodeResult) error) error {
	for _, id := range g.UUIDs {
		node, err := grid.Node(id)
		if err != nil {
			return err
		}
		res, err := provider.Node(id)
		if err != nil {
			return err
		}
		if err := fn(node, res); err != nil {
			return err
		}
	}
	return nil
}

func eachBranch(g plan.Group, grid *topology.Grid, provider powerflow.Provider, fn func(*topology.Branch, *powerflow.BranchResult) error) error {
	for _, id := range g.UUIDs {
		branch, err := grid.Branch(id)
		if err != nil {
			return err
		}
		res, err := provider.Branch(id)
		if err != nil {
			return err
		}
		if err := fn(branch, res); err != nil {
			return err
		}
	}
	return nil
}
