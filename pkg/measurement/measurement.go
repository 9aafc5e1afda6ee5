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
	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/units"
)

// Measurement is a single scalar observation tied to one grid element and
// one physical quantity.
//
// Ideal and Uncertainty are set once at creation from a ground-truth
// source. Value, ValueActual, StdDev, and StdDevActual initialize to zero
// and are meaningless until a noise-injection or live-update pass writes
// them; callers must not read them before that pass completes.
type Measurement struct {
	// Element is a shared back-reference into the topology, never owned.
	Element     topology.Element     `json:"-" yaml:"-"`
	ElementKind topology.ElementKind `json:"elementKind" yaml:"elementKind"`
	Kind        Kind                 `json:"kind" yaml:"kind"`

	// Ideal is the per-unit ground-truth value from the power-flow result.
	Ideal float64 `json:"ideal" yaml:"ideal"`
	// Uncertainty is a percentage for magnitudes and powers, and an
	// absolute band in radians for phase angles.
	Uncertainty float64 `json:"uncertainty" yaml:"uncertainty"`

	Value        float64 `json:"value" yaml:"value"`
	ValueActual  float64 `json:"valueActual" yaml:"valueActual"`
	StdDev       float64 `json:"stdDev" yaml:"stdDev"`
	StdDevActual float64 `json:"stdDevActual" yaml:"stdDevActual"`
}

// New creates a validated Measurement.
//
// It fails with an INVALID_ARGUMENT error when the element is nil, when
// either kind is unrecognized, when elementKind disagrees with the
// element's own kind, or when the quantity is not measurable on that
// element kind (injections and voltages live on nodes, flows and branch
// currents on branches).
func New(el topology.Element, elementKind topology.ElementKind, kind Kind, ideal, uncertainty float64) (*Measurement, error) {
	if el == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "measurement element cannot be nil")
	}
	if !elementKind.IsValid() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"unknown element kind", map[string]any{
				"elementKind": elementKind.String(),
				"uuid":        el.GetUUID(),
			})
	}
	if !kind.IsValid() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"unknown measurement kind", map[string]any{
				"kind": int(kind),
				"uuid": el.GetUUID(),
			})
	}
	if el.GetKind() != elementKind {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"element kind does not match element", map[string]any{
				"elementKind": elementKind.String(),
				"elementIs":   el.GetKind().String(),
				"uuid":        el.GetUUID(),
			})
	}
	if kind.ElementKind() != elementKind {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidArgument,
			"quantity is not measurable on this element kind", map[string]any{
				"kind":        kind.String(),
				"elementKind": elementKind.String(),
				"uuid":        el.GetUUID(),
			})
	}

	return &Measurement{
		Element:     el,
		ElementKind: elementKind,
		Kind:        kind,
		Ideal:       ideal,
		Uncertainty: uncertainty,
	}, nil
}

// Family returns the unit family of the measured quantity.
func (m *Measurement) Family() units.Family {
	return m.Kind.Family()
}

// IsPhase reports whether the measurement observes a phase angle.
func (m *Measurement) IsPhase() bool {
	return m.Kind.IsPhase()
}

// setValue writes the per-unit value and deviation and derives the
// actual-unit fields through the converter. Phase angles pass through
// unscaled.
func (m *Measurement) setValue(value, stdDev float64) {
	f := m.Family()
	m.Value = value
	m.StdDev = stdDev
	m.ValueActual = units.ToActual(f, m.Element, value)
	m.StdDevActual = units.ToActual(f, m.Element, stdDev)
}

// writeValue writes an observed value into both unit systems without
// touching the stored deviations. perUnit declares the unit system of the
// incoming value; the other field is derived through the converter, which
// is the identity for phase angles.
func (m *Measurement) writeValue(value float64, perUnit bool) {
	f := m.Family()
	if perUnit {
		m.Value = value
		m.ValueActual = units.ToActual(f, m.Element, value)
		return
	}
	m.ValueActual = value
	m.Value = units.ToPerUnit(f, m.Element, value)
}
