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

// Package plan models the measurement-configuration document: which
// element groups carry which measurement kinds at which uncertainties.
package plan

import (
	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
)

// Group names double as the document's top-level keys. Scalar groups carry
// one uncertainty; the three phasor groups carry a magnitude/phase pair
// and expand into two measurements per element.
const (
	GroupVmag    = "Vmag"
	GroupPinj    = "Pinj"
	GroupQinj    = "Qinj"
	GroupP1      = "P1"
	GroupQ1      = "Q1"
	GroupP2      = "P2"
	GroupQ2      = "Q2"
	GroupImag    = "Imag"
	GroupVpmu    = "Vpmu"
	GroupIpmu    = "Ipmu"
	GroupIpmuInj = "Ipmu_inj"
)

// GroupOrder fixes the order in which group expansion walks a plan.
// Document key order is not recoverable from a decoded map, so a stable
// walk order is what keeps seeded runs reproducible measurement-for-
// measurement. The order mirrors the canonical estimator order.
var GroupOrder = []string{
	GroupVmag,
	GroupPinj,
	GroupQinj,
	GroupP1,
	GroupQ1,
	GroupP2,
	GroupQ2,
	GroupImag,
	GroupVpmu,
	GroupIpmu,
	GroupIpmuInj,
}

// KnownGroup reports whether the name is a recognized group key.
func KnownGroup(name string) bool {
	for _, g := range GroupOrder {
		if g == name {
			return true
		}
	}
	return false
}

// IsPhasorGroup reports whether the group expands into magnitude/phase
// measurement pairs.
func IsPhasorGroup(name string) bool {
	switch name {
	case GroupVpmu, GroupIpmu, GroupIpmuInj:
		return true
	default:
		return false
	}
}

// Group declares one measurement group: the uncertainty specification and
// the element uuids it applies to.
type Group struct {
	Unc      *Percent `json:"unc,omitempty" yaml:"unc,omitempty"`
	UncMag   *Percent `json:"unc_mag,omitempty" yaml:"unc_mag,omitempty"`
	UncPhase *Percent `json:"unc_phase,omitempty" yaml:"unc_phase,omitempty"`
	UUIDs    []string `json:"uuid" yaml:"uuid"`
}

// Plan is the measurement-configuration document.
type Plan struct {
	Measurement map[string]Group `json:"Measurement" yaml:"Measurement"`
}

// Validate checks the document shape: group names must be known, phasor
// groups must carry both unc_mag and unc_phase (and no unc), scalar groups
// exactly unc, and every group needs a non-empty uuid list.
func (p *Plan) Validate() error {
	if len(p.Measurement) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "plan declares no measurement groups")
	}

	for name := range p.Measurement {
		if !KnownGroup(name) {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"unknown measurement group", map[string]any{"group": name})
		}
	}

	for _, name := range GroupOrder {
		g, ok := p.Measurement[name]
		if !ok {
			continue
		}
		if IsPhasorGroup(name) {
			if g.UncMag == nil || g.UncPhase == nil {
				return errors.NewWithContext(errors.ErrCodeInvalidArgument,
					"phasor group needs unc_mag and unc_phase", map[string]any{"group": name})
			}
			if g.Unc != nil {
				return errors.NewWithContext(errors.ErrCodeInvalidArgument,
					"phasor group cannot carry unc", map[string]any{"group": name})
			}
		} else {
			if g.Unc == nil {
				return errors.NewWithContext(errors.ErrCodeInvalidArgument,
					"group needs unc", map[string]any{"group": name})
			}
			if g.UncMag != nil || g.UncPhase != nil {
				return errors.NewWithContext(errors.ErrCodeInvalidArgument,
					"scalar group cannot carry unc_mag or unc_phase", map[string]any{"group": name})
			}
		}
		if len(g.UUIDs) == 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"group has no element uuids", map[string]any{"group": name})
		}
		for i, uuid := range g.UUIDs {
			if uuid == "" {
				return errors.NewWithContext(errors.ErrCodeInvalidArgument,
					"group has an empty element uuid", map[string]any{"group": name, "index": i})
			}
		}
	}
	return nil
}

// Groups returns how many groups the plan declares.
func (p *Plan) Groups() int {
	return len(p.Measurement)
}

// ExpectedMeasurements returns how many measurements expanding the plan
// will create: one per uuid for scalar groups, two for phasor groups.
func (p *Plan) ExpectedMeasurements() int {
	n := 0
	for name, g := range p.Measurement {
		if IsPhasorGroup(name) {
			n += 2 * len(g.UUIDs)
			continue
		}
		n += len(g.UUIDs)
	}
	return n
}

// Load reads and validates a plan from a JSON or YAML file.
func Load(path string) (*Plan, error) {
	p, err := serializer.FromFile[Plan](path)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
