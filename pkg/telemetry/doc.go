// Package telemetry feeds live device samples into a measurement set.
//
// # Overview
//
// Where the assembler produces a set from a solved power flow, this
// package keeps one current afterwards: device readings arrive as
// samples, pass a device filter and per-family sanity bounds, and land
// on matching measurements through the set's update rules.
//
// # Core Types
//
// Sample: One device reading
//
//	type Sample struct {
//	    Device  string           // Element uuid
//	    Kind    measurement.Kind // Reading kind
//	    Value   float64          // Reading value
//	    PerUnit bool             // Scale of Value
//	    At      time.Time        // Device timestamp
//	}
//
// Replayer: Applies samples to a set
//
//	type Replayer struct {
//	    Set     *measurement.Set // Target set
//	    Limiter *rate.Limiter    // Pacing (optional)
//	    Bounds  Bounds           // Sanity ranges (optional)
//	    Only    []string         // Device patterns (optional)
//	}
//
// # Usage
//
// Replay a recorded feed at ten samples per second:
//
//	feed, err := telemetry.LoadFeed("feed.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := &telemetry.Replayer{
//	    Set:     set,
//	    Limiter: rate.NewLimiter(rate.Limit(10), 1),
//	    Bounds:  telemetry.DefaultBounds(),
//	}
//	stats, err := r.Replay(ctx, feed.Samples)
//
// Apply a single live sample:
//
//	outcome := r.Apply(telemetry.Sample{
//	    Device: "n1",
//	    Kind:   measurement.KindVmag,
//	    Value:  1.01,
//	    PerUnit: true,
//	})
//
// # Outcomes
//
// Every sample resolves to exactly one outcome:
//   - Applied: at least one measurement took the value
//   - Filtered: the device missed the Only patterns
//   - Rejected: the per-unit value fell outside its family's bounds
//   - Unmatched: no measurement accepted the sample
//
// Rejection logs a warning and moves on; a bad reading never aborts a
// replay.
//
// # Drift
//
// Replay stats report MaxDrift, the L-infinity distance between the
// per-unit value vector before and after the run. A near-zero drift
// after a long replay usually means the feed's devices missed the set.
//
// # Observability
//
// The package exports one Prometheus metric:
//   - pyvolt_telemetry_samples_total{outcome}: Samples by outcome
//
// # Integration
//
// Replay is invoked by:
//   - pkg/cli - replay command
//   - pkg/server - POST /v1/telemetry handler
package telemetry
