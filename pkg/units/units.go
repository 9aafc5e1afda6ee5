// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package units converts measurement values between per-unit and actual
// units using the base quantities of the measured element.
//
// Conversion never guesses direction: callers state it explicitly. Actual
// values are SI (volts, amps, watts) while elements carry their bases in
// kV, kA, and MW, so each family base is scaled to SI before use:
//
//	voltage  V_base * 1e3 / sqrt(3)   single-phase base from the line-to-line kV base
//	current  I_base * 1e3            kA -> A
//	power    S_base * 1e6 / 3        single-phase base from the three-phase MW base
//	phase    1                       angles pass through unchanged
//
// Dividing an actual value by the base yields per-unit; multiplying a
// per-unit value by the base yields actual units. No plausibility checking
// happens here: a conversion with mismatched input units produces a
// mathematically valid but physically absurd result, and it is the calling
// layer's job to reject it.
package units

import (
	"math"

	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// Family selects the per-unit scaling rule for a quantity.
type Family string

const (
	// FamilyVoltage scales by the single-phase voltage base.
	FamilyVoltage Family = "voltage"
	// FamilyCurrent scales by the current base.
	FamilyCurrent Family = "current"
	// FamilyPower scales by the single-phase power base.
	FamilyPower Family = "power"
	// FamilyPhase is dimensionless; values pass through unchanged.
	FamilyPhase Family = "phase"
)

// String returns the string representation of the Family.
func (f Family) String() string {
	return string(f)
}

// IsValid checks if the Family is one of the recognized families.
func (f Family) IsValid() bool {
	switch f {
	case FamilyVoltage, FamilyCurrent, FamilyPower, FamilyPhase:
		return true
	default:
		return false
	}
}

// Element bases arrive in kV, kA, and MW; actual values are SI.
const (
	kilo = 1e3
	mega = 1e6
)

// Base returns the SI scaling base for the family on the given element.
// FamilyPhase has base 1.
func (f Family) Base(el topology.Element) float64 {
	switch f {
	case FamilyVoltage:
		return el.GetBaseVoltage() * kilo / math.Sqrt(3)
	case FamilyCurrent:
		return el.GetBaseCurrent() * kilo
	case FamilyPower:
		return el.GetBaseApparentPower() * mega / 3
	default:
		return 1
	}
}

// Convert transforms value between actual units and per-unit on the given
// element. Direction is explicit: toPerUnit true divides by the family base,
// false multiplies.
func Convert(f Family, el topology.Element, value float64, toPerUnit bool) float64 {
	if toPerUnit {
		return ToPerUnit(f, el, value)
	}
	return ToActual(f, el, value)
}

// ToPerUnit converts an actual-unit value to per-unit.
func ToPerUnit(f Family, el topology.Element, actual float64) float64 {
	if f == FamilyPhase {
		return actual
	}
	return actual / f.Base(el)
}

// ToActual converts a per-unit value to actual units.
func ToActual(f Family, el topology.Element, pu float64) float64 {
	if f == FamilyPhase {
		return pu
	}
	return pu * f.Base(el)
}
