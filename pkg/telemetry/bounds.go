package telemetry

import (
	"math"

	"github.com/martinmoraga/pyvolt/pkg/units"
)

// Range is a closed per-unit interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Bounds holds optional per-family sanity ranges on the per-unit scale.
// A family with no entry is unchecked.
type Bounds map[units.Family]Range

// DefaultBounds returns ranges wide enough for any plausible operating
// point. Per-unit voltage far from one or a power flow beyond ten times
// the system base means a broken sensor or a unit mix-up, not grid state.
func DefaultBounds() Bounds {
	return Bounds{
		units.FamilyVoltage: {Min: 0.5, Max: 1.5},
		units.FamilyCurrent: {Min: 0, Max: 10},
		units.FamilyPower:   {Min: -10, Max: 10},
		units.FamilyPhase:   {Min: -2 * math.Pi, Max: 2 * math.Pi},
	}
}

// Contains reports whether a per-unit value is inside the family's range.
// Families without a configured range pass.
func (b Bounds) Contains(f units.Family, v float64) bool {
	r, ok := b[f]
	if !ok {
		return true
	}
	return v >= r.Min && v <= r.Max
}
