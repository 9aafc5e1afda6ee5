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

package topology

import (
	"math"
	"strings"
)

// ElementKind identifies which topology collection an element belongs to.
type ElementKind string

const (
	// KindNode is a bus in the grid.
	KindNode ElementKind = "Node"
	// KindBranch is a line or transformer connecting two buses.
	KindBranch ElementKind = "Branch"
)

// String returns the string representation of the ElementKind.
func (k ElementKind) String() string {
	return string(k)
}

// IsValid checks if the ElementKind is one of the recognized kinds.
func (k ElementKind) IsValid() bool {
	switch k {
	case KindNode, KindBranch:
		return true
	default:
		return false
	}
}

// ParseElementKind converts a textual element kind into an ElementKind.
// Matching is case-insensitive.
func ParseElementKind(s string) (ElementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "node":
		return KindNode, true
	case "branch":
		return KindBranch, true
	default:
		return "", false
	}
}

// BusType classifies the role of a node in power-flow calculations.
type BusType string

const (
	// BusSlack is the reference bus fixing voltage magnitude and angle.
	BusSlack BusType = "SLACK"
	// BusPV is a generator bus with fixed active power and voltage magnitude.
	BusPV BusType = "PV"
	// BusPQ is a load bus with fixed active and reactive power.
	BusPQ BusType = "PQ"
)

// ParseBusType converts a textual bus type into a BusType.
// Matching is case-insensitive.
func ParseBusType(s string) (BusType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SLACK":
		return BusSlack, true
	case "PV":
		return BusPV, true
	case "PQ":
		return BusPQ, true
	default:
		return "", false
	}
}

// Element is the read-only contract measurements hold on grid elements.
// Measurements reference elements without owning them; base quantities are
// always read through this interface so per-unit conversion stays uniform
// across nodes and branches.
type Element interface {
	// GetUUID returns the element identifier.
	GetUUID() string
	// GetKind returns the element kind.
	GetKind() ElementKind
	// GetBaseVoltage returns the line-to-line base voltage in kV.
	GetBaseVoltage() float64
	// GetBaseCurrent returns the base current in kA.
	GetBaseCurrent() float64
	// GetBaseApparentPower returns the three-phase base apparent power in MW.
	GetBaseApparentPower() float64
}

// Node is a bus in the grid.
type Node struct {
	// UUID is the unique element identifier.
	UUID string `json:"uuid" yaml:"uuid"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// BaseVoltage is the line-to-line base voltage in kV.
	BaseVoltage float64 `json:"baseVoltage" yaml:"baseVoltage"`

	// BaseApparentPower is the three-phase base apparent power in MW.
	BaseApparentPower float64 `json:"baseApparentPower" yaml:"baseApparentPower"`

	// Type classifies the bus for power-flow purposes. Defaults to PQ.
	Type BusType `json:"busType,omitempty" yaml:"busType,omitempty"`
}

// GetUUID returns the node identifier.
func (n *Node) GetUUID() string {
	return n.UUID
}

// GetKind returns KindNode.
func (n *Node) GetKind() ElementKind {
	return KindNode
}

// GetBaseVoltage returns the line-to-line base voltage in kV.
func (n *Node) GetBaseVoltage() float64 {
	return n.BaseVoltage
}

// GetBaseApparentPower returns the three-phase base apparent power in MW.
func (n *Node) GetBaseApparentPower() float64 {
	return n.BaseApparentPower
}

// GetBaseCurrent returns the base current in kA, derived as S / (V * sqrt(3)).
func (n *Node) GetBaseCurrent() float64 {
	return baseCurrent(n.BaseApparentPower, n.BaseVoltage)
}

// Branch is a line or transformer connecting two buses.
type Branch struct {
	// UUID is the unique element identifier.
	UUID string `json:"uuid" yaml:"uuid"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// FromNode and ToNode reference the endpoint node UUIDs.
	FromNode string `json:"fromNode,omitempty" yaml:"fromNode,omitempty"`
	ToNode   string `json:"toNode,omitempty" yaml:"toNode,omitempty"`

	// BaseVoltage is the line-to-line base voltage in kV.
	BaseVoltage float64 `json:"baseVoltage" yaml:"baseVoltage"`

	// BaseApparentPower is the three-phase base apparent power in MW.
	BaseApparentPower float64 `json:"baseApparentPower" yaml:"baseApparentPower"`

	// Resistance and Reactance are the series parameters in ohms.
	Resistance float64 `json:"r,omitempty" yaml:"r,omitempty"`
	Reactance  float64 `json:"x,omitempty" yaml:"x,omitempty"`
}

// GetUUID returns the branch identifier.
func (b *Branch) GetUUID() string {
	return b.UUID
}

// GetKind returns KindBranch.
func (b *Branch) GetKind() ElementKind {
	return KindBranch
}

// GetBaseVoltage returns the line-to-line base voltage in kV.
func (b *Branch) GetBaseVoltage() float64 {
	return b.BaseVoltage
}

// GetBaseApparentPower returns the three-phase base apparent power in MW.
func (b *Branch) GetBaseApparentPower() float64 {
	return b.BaseApparentPower
}

// GetBaseCurrent returns the base current in kA, derived as S / (V * sqrt(3)).
func (b *Branch) GetBaseCurrent() float64 {
	return baseCurrent(b.BaseApparentPower, b.BaseVoltage)
}

// GetBaseImpedance returns the base impedance in ohms, derived as V^2 / S.
func (b *Branch) GetBaseImpedance() float64 {
	if b.BaseApparentPower == 0 {
		return 0
	}
	return b.BaseVoltage * b.BaseVoltage / b.BaseApparentPower
}

func baseCurrent(baseApparentPower, baseVoltage float64) float64 {
	if baseVoltage == 0 {
		return 0
	}
	return baseApparentPower / baseVoltage / math.Sqrt(3)
}
