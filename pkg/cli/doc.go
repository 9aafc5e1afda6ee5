// Package cli implements the pyvolt command-line interface.
//
// The CLI wraps the measurement layer's library packages behind three
// commands built on urfave/cli/v3:
//
//   - assemble: expand a measurement plan against a grid and a solved
//     power-flow result, inject noise, and emit the measurement report
//     with the estimator-facing vectors.
//   - plan: validate a plan document (optionally resolving element uuids
//     against a grid) and publish plans to OCI registries.
//   - replay: assemble a field-mode session and drive a recorded telemetry
//     feed through it, emitting a replay summary.
//
// # Output
//
// Every command that emits a document shares the --output and --format
// flags: documents write to stdout by default, as JSON, YAML, or a
// flattened table. Human-readable extras (the assemble --summary totals,
// progress logging) go to stderr so stdout stays a clean document stream
// suitable for piping.
//
// # Logging
//
// Structured JSON logging goes to stderr. The level comes from
// --log-level or the LOG_LEVEL environment variable; debug level adds
// source locations.
//
// # Lifecycle
//
// Run installs SIGINT/SIGTERM handlers and threads the resulting context
// through every command, so paced replays and registry pushes cancel
// cleanly.
package cli
