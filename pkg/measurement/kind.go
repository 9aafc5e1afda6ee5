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

package measurement

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/units"
)

// Kind identifies the physical quantity a measurement observes.
//
// Declaration order is the canonical estimator order: sorting measurements
// by Kind yields the exact sequence the estimator builds its Jacobian
// against. Phasor magnitude and phase kinds of the same family must stay
// adjacent here so the rectangular transform can pair them by position.
type Kind int

const (
	KindVmag Kind = iota
	KindPinj
	KindQinj
	KindP1
	KindQ1
	KindP2
	KindQ2
	KindImag
	KindVpmuMag
	KindVpmuPhase
	KindIpmuMag
	KindIpmuPhase
	KindIpmuInjMag
	KindIpmuInjPhase
)

// Kinds lists all supported measurement kinds in canonical order.
var Kinds = []Kind{
	KindVmag,
	KindPinj,
	KindQinj,
	KindP1,
	KindQ1,
	KindP2,
	KindQ2,
	KindImag,
	KindVpmuMag,
	KindVpmuPhase,
	KindIpmuMag,
	KindIpmuPhase,
	KindIpmuInjMag,
	KindIpmuInjPhase,
}

// Class groups kinds into the equivalence classes a live telemetry
// interface distinguishes. A live device reports a coarser quantity than
// the set tracks internally, so update matching runs on classes.
type Class int

const (
	ClassVoltage Class = iota
	ClassCurrent
	ClassPower
	ClassPhase
)

// String returns the string representation of the Class.
func (c Class) String() string {
	switch c {
	case ClassVoltage:
		return "voltage"
	case ClassCurrent:
		return "current"
	case ClassPower:
		return "power"
	case ClassPhase:
		return "phase"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// kindTraits carries everything behavior selection needs about one kind.
type kindTraits struct {
	name        string
	family      units.Family
	class       Class
	phase       bool
	elementKind topology.ElementKind
}

var traits = map[Kind]kindTraits{
	KindVmag:         {name: "Vmag", family: units.FamilyVoltage, class: ClassVoltage, elementKind: topology.KindNode},
	KindPinj:         {name: "Pinj", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindNode},
	KindQinj:         {name: "Qinj", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindNode},
	KindP1:           {name: "P1", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindBranch},
	KindQ1:           {name: "Q1", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindBranch},
	KindP2:           {name: "P2", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindBranch},
	KindQ2:           {name: "Q2", family: units.FamilyPower, class: ClassPower, elementKind: topology.KindBranch},
	KindImag:         {name: "Imag", family: units.FamilyCurrent, class: ClassCurrent, elementKind: topology.KindBranch},
	KindVpmuMag:      {name: "VpmuMag", family: units.FamilyVoltage, class: ClassVoltage, elementKind: topology.KindNode},
	KindVpmuPhase:    {name: "VpmuPhase", family: units.FamilyPhase, class: ClassPhase, phase: true, elementKind: topology.KindNode},
	KindIpmuMag:      {name: "IpmuMag", family: units.FamilyCurrent, class: ClassCurrent, elementKind: topology.KindBranch},
	KindIpmuPhase:    {name: "IpmuPhase", family: units.FamilyPhase, class: ClassPhase, phase: true, elementKind: topology.KindBranch},
	KindIpmuInjMag:   {name: "IpmuInjMag", family: units.FamilyCurrent, class: ClassCurrent, elementKind: topology.KindNode},
	KindIpmuInjPhase: {name: "IpmuInjPhase", family: units.FamilyPhase, class: ClassPhase, phase: true, elementKind: topology.KindNode},
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	if t, ok := traits[k]; ok {
		return t.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	_, ok := traits[k]
	return ok
}

// Family returns the unit family the converter and noise model use for
// this kind.
func (k Kind) Family() units.Family {
	return traits[k].family
}

// Class returns the live-update equivalence class of this kind.
func (k Kind) Class() Class {
	return traits[k].class
}

// IsPhase reports whether this kind measures a phase angle. Phase
// uncertainty is absolute in radians and phase values never scale.
func (k Kind) IsPhase() bool {
	return traits[k].phase
}

// ElementKind returns the topology element kind this quantity is measured
// on: injections and voltages on nodes, flows and branch currents on
// branches.
func (k Kind) ElementKind() topology.ElementKind {
	return traits[k].elementKind
}

// ParseKind parses a string into a measurement Kind.
// Returns the Kind and true if parsing succeeds, or zero Kind and false if
// the string is invalid.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if traits[k].name == s {
			return k, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the Kind as its string name.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("cannot marshal unknown measurement kind %d", int(k))
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a Kind from its string name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("unknown measurement kind: %q", s)
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the Kind as its string name.
func (k Kind) MarshalYAML() (any, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("cannot marshal unknown measurement kind %d", int(k))
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a Kind from its string name.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("unknown measurement kind: %q", s)
	}
	*k = parsed
	return nil
}

// kindMatches reports whether a live reading of the incoming kind should
// be written into a stored measurement of the stored kind. Voltage and
// current magnitudes match across their whole class; power and phase
// require the exact kind.
func kindMatches(incoming, stored Kind) bool {
	it, st := traits[incoming], traits[stored]
	if it.class != st.class {
		return false
	}
	switch it.class {
	case ClassVoltage, ClassCurrent:
		return true
	default:
		return incoming == stored
	}
}
