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

// Package powerflow carries the per-unit result document a power-flow
// solver produces: one voltage/power/current phasor triple per node and a
// current plus two port powers per branch. The measurement assembler reads
// ideal values from it through the Provider interface.
package powerflow

import (
	"fmt"
	"math/cmplx"

	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
)

// Phasor is a complex per-unit quantity in rectangular form.
type Phasor struct {
	Re float64 `json:"re" yaml:"re"`
	Im float64 `json:"im" yaml:"im"`
}

// Complex returns the phasor as a complex number.
func (p Phasor) Complex() complex128 {
	return complex(p.Re, p.Im)
}

// Magnitude returns the absolute value of the phasor.
func (p Phasor) Magnitude() float64 {
	return cmplx.Abs(p.Complex())
}

// Angle returns the phase angle in radians, in (-pi, pi].
func (p Phasor) Angle() float64 {
	return cmplx.Phase(p.Complex())
}

// String returns the phasor in a+bi form.
func (p Phasor) String() string {
	return fmt.Sprintf("%g%+gi", p.Re, p.Im)
}

// NodeResult holds one node's solved per-unit quantities.
type NodeResult struct {
	UUID    string `json:"uuid" yaml:"uuid"`
	Voltage Phasor `json:"voltage" yaml:"voltage"`
	Power   Phasor `json:"power" yaml:"power"`
	Current Phasor `json:"current" yaml:"current"`
}

// BranchResult holds one branch's solved per-unit quantities. Power is the
// flow measured at port one, Power2 at port two.
type BranchResult struct {
	UUID    string `json:"uuid" yaml:"uuid"`
	Current Phasor `json:"current" yaml:"current"`
	Power   Phasor `json:"power" yaml:"power"`
	Power2  Phasor `json:"power2" yaml:"power2"`
}

// Provider exposes solved element results by uuid. Results implements it;
// an estimator feeding back refined states can implement it too.
type Provider interface {
	Node(uuid string) (*NodeResult, error)
	Branch(uuid string) (*BranchResult, error)
}

// Results is a file-loadable power-flow result document.
type Results struct {
	Nodes    []*NodeResult   `json:"nodes" yaml:"nodes"`
	Branches []*BranchResult `json:"branches,omitempty" yaml:"branches,omitempty"`

	byNode   map[string]*NodeResult
	byBranch map[string]*BranchResult
}

// Init builds the lookup indexes and validates the document: every entry
// needs a uuid, and uuids must be unique across nodes and branches.
func (r *Results) Init() error {
	r.byNode = make(map[string]*NodeResult, len(r.Nodes))
	r.byBranch = make(map[string]*BranchResult, len(r.Branches))

	for i, n := range r.Nodes {
		if n.UUID == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"node result has no uuid", map[string]any{"index": i})
		}
		if _, dup := r.byNode[n.UUID]; dup {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"duplicate result uuid", map[string]any{"uuid": n.UUID})
		}
		r.byNode[n.UUID] = n
	}
	for i, b := range r.Branches {
		if b.UUID == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"branch result has no uuid", map[string]any{"index": i})
		}
		if _, dup := r.byNode[b.UUID]; dup {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"duplicate result uuid", map[string]any{"uuid": b.UUID})
		}
		if _, dup := r.byBranch[b.UUID]; dup {
			return errors.NewWithContext(errors.ErrCodeInvalidArgument,
				"duplicate result uuid", map[string]any{"uuid": b.UUID})
		}
		r.byBranch[b.UUID] = b
	}
	return nil
}

// Node returns the result for one node uuid.
func (r *Results) Node(uuid string) (*NodeResult, error) {
	if n, ok := r.byNode[uuid]; ok {
		return n, nil
	}
	return nil, errors.NewWithContext(errors.ErrCodeNotFound,
		"no node result for uuid", map[string]any{"uuid": uuid})
}

// Branch returns the result for one branch uuid.
func (r *Results) Branch(uuid string) (*BranchResult, error) {
	if b, ok := r.byBranch[uuid]; ok {
		return b, nil
	}
	return nil, errors.NewWithContext(errors.ErrCodeNotFound,
		"no branch result for uuid", map[string]any{"uuid": uuid})
}

// Len returns the number of element results in the document.
func (r *Results) Len() int {
	return len(r.Nodes) + len(r.Branches)
}

// Load reads a result document from a JSON or YAML file and initializes
// its indexes.
func Load(path string) (*Results, error) {
	r, err := serializer.FromFile[Results](path)
	if err != nil {
		return nil, err
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}
