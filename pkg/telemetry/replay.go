package telemetry

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/floats"

	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/units"
)

// Stats summarizes one replay run. MaxDrift is the largest absolute change
// any slot of the per-unit value vector saw between start and finish.
type Stats struct {
	Received  int     `json:"received" yaml:"received"`
	Filtered  int     `json:"filtered" yaml:"filtered"`
	Rejected  int     `json:"rejected" yaml:"rejected"`
	Applied   int     `json:"applied" yaml:"applied"`
	Unmatched int     `json:"unmatched" yaml:"unmatched"`
	MaxDrift  float64 `json:"maxDrift" yaml:"maxDrift"`
}

// Replayer drives samples into a measurement set. The set itself is
// lock-free; callers sharing one across goroutines serialize access
// around Apply and Replay.
type Replayer struct {
	// Set receives the samples.
	Set *measurement.Set

	// Limiter paces Replay. Nil replays as fast as the set accepts.
	Limiter *rate.Limiter

	// Bounds holds per-family sanity ranges. Nil disables the check.
	Bounds Bounds

	// Only restricts application to matching device ids. Empty admits all.
	Only []string
}

// Apply runs one sample through the filter, the sanity bounds, and the
// set update, and reports what happened to it. Out-of-bounds values are
// rejected with a warning, never an error: plausibility is this layer's
// job, the set below accepts whatever it is handed.
func (r *Replayer) Apply(s Sample) Outcome {
	outcome := r.apply(s)
	samplesTotal.WithLabelValues(outcome.String()).Inc()
	return outcome
}

func (r *Replayer) apply(s Sample) Outcome {
	if len(r.Only) > 0 && !MatchesAny(s.Device, r.Only) {
		return OutcomeFiltered
	}
	if !s.Kind.IsValid() {
		return OutcomeUnmatched
	}

	if r.Bounds != nil {
		v := s.Value
		if !s.PerUnit {
			el := r.element(s.Device)
			if el == nil {
				return OutcomeUnmatched
			}
			v = units.ToPerUnit(s.Kind.Family(), el, s.Value)
		}
		if !r.Bounds.Contains(s.Kind.Family(), v) {
			slog.Warn("telemetry sample outside sanity bounds",
				slog.String("device", s.Device),
				slog.String("kind", s.Kind.String()),
				slog.Float64("perUnit", v))
			return OutcomeRejected
		}
	}

	if r.Set.Update(s.Device, s.Kind, s.Value, s.PerUnit) == 0 {
		return OutcomeUnmatched
	}
	return OutcomeApplied
}

// Replay paces the samples through the limiter and applies them in order.
// It stops early only when the context ends; individual sample problems
// are counted, not returned. The returned stats cover the samples
// processed so far even on error.
func (r *Replayer) Replay(ctx context.Context, samples []Sample) (Stats, error) {
	var stats Stats
	before := r.Set.Values()

	for _, s := range samples {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				r.drift(&stats, before)
				return stats, err
			}
		} else if err := ctx.Err(); err != nil {
			r.drift(&stats, before)
			return stats, err
		}

		stats.Received++
		switch r.Apply(s) {
		case OutcomeFiltered:
			stats.Filtered++
		case OutcomeRejected:
			stats.Rejected++
		case OutcomeUnmatched:
			stats.Unmatched++
		default:
			stats.Applied++
		}
	}

	r.drift(&stats, before)
	slog.Debug("replay complete",
		slog.Int("received", stats.Received),
		slog.Int("applied", stats.Applied),
		slog.Float64("maxDrift", stats.MaxDrift))
	return stats, nil
}

func (r *Replayer) drift(stats *Stats, before []float64) {
	after := r.Set.Values()
	if len(before) == 0 || len(before) != len(after) {
		return
	}
	stats.MaxDrift = floats.Distance(before, after, math.Inf(1))
}

// element finds the grid element behind a device id, for converting
// actual-unit samples before the bounds check.
func (r *Replayer) element(uuid string) topology.Element {
	for _, m := range r.Set.Measurements() {
		if m.Element.GetUUID() == uuid {
			return m.Element
		}
	}
	return nil
}
