// Package assembler turns a measurement plan into a measurement report.
//
// # Overview
//
// The assembler package orchestrates the measurement pipeline: it expands a
// plan against a grid topology and a power-flow solution, runs the noise
// pass, and emits a report carrying the per-device records and the stacked
// estimator vectors.
//
// # Core Types
//
// Assembler: Pipeline configuration and entry points
//
//	type Assembler struct {
//	    Version      string                // Stamped into report headers
//	    Mode         noise.Mode            // Simulation or field
//	    Distribution noise.Distribution    // Normal or uniform
//	    Seed         uint64                // Noise seed (0 = default)
//	    Sorted       bool                  // Emit in canonical order
//	    Serializer   serializer.Serializer // Output (optional)
//	}
//
// Report: Assembled output document
//
//	type Report struct {
//	    header.Header          // API version, kind, metadata
//	    Records []Record       // One per measurement
//	    Vectors Vectors        // Stacked values, weights, covariances
//	}
//
// # Usage
//
// Assemble from files and write JSON to stdout:
//
//	a := &assembler.Assembler{Version: "v1.0.0"}
//	err := a.Run(ctx, assembler.Inputs{
//	    GridPath:    "grid.yaml",
//	    ResultsPath: "results.yaml",
//	    PlanPath:    "plan.yaml",
//	})
//
// Hold the set for live telemetry updates instead of emitting a report:
//
//	set, err := a.BuildSet(ctx, grid, results, p)
//
// # Expansion Order
//
// Plans expand in a fixed group order (Vmag, Pinj, Qinj, P1, Q1, P2, Q2,
// Imag, Vpmu, Ipmu, Ipmu_inj) so that a given plan and seed always produce
// the same report. Within the voltage phasor group all magnitudes are
// created before all phases; the current phasor groups interleave
// magnitude and phase per device.
//
// # Error Handling
//
// Expansion fails hard on a plan entry naming a device absent from the
// grid or the power-flow results. Group errors carry the group name in
// their context and preserve the underlying error code.
//
// # Observability
//
// The assembler exports Prometheus metrics:
//   - pyvolt_assembly_duration_seconds: Total time to assemble a set
//   - pyvolt_assembly_input_load_duration_seconds{input}: Per-input load timing
//   - pyvolt_assembly_total{status}: Assembly attempts by outcome
//   - pyvolt_assembly_measurements: Size of the last assembled set
//
// # Integration
//
// The assembler is invoked by:
//   - pkg/cli - assemble command
//   - pkg/api - daemon startup
//
// It depends on:
//   - pkg/plan - Plan schema and validation
//   - pkg/topology - Grid elements
//   - pkg/powerflow - Ideal values
//   - pkg/measurement - Set semantics and vector assembly
//   - pkg/noise - Value perturbation
//   - pkg/serializer - Output formatting
package assembler
