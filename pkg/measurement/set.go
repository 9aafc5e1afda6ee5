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
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// stdDevFloor protects weight and covariance computation from
// near-singular deviations. It is applied when those vectors are read,
// never written back into the measurements.
const stdDevFloor = 1e-6

// pmuPairs lists the phasor magnitude/phase kind pairs that enter the
// estimator in rectangular form.
var pmuPairs = [3][2]Kind{
	{KindVpmuMag, KindVpmuPhase},
	{KindIpmuMag, KindIpmuPhase},
	{KindIpmuInjMag, KindIpmuInjPhase},
}

// Set is an ordered collection of measurements. Insertion order is
// significant only as group-creation provenance; the canonical estimator
// order is the derived view Sorted returns.
//
// A Set has no internal locking. The intended usage is one set per
// estimation cycle: populated, perturbed, consumed, then replaced.
type Set struct {
	measurements []*Measurement
}

// NewSet creates a Set holding the given measurements in order.
func NewSet(measurements ...*Measurement) *Set {
	return &Set{measurements: measurements}
}

// Len returns the number of measurements in the set.
func (s *Set) Len() int {
	return len(s.measurements)
}

// Measurements returns the backing measurement slice in set order.
// Callers must not reorder it.
func (s *Set) Measurements() []*Measurement {
	return s.measurements
}

// Create validates, constructs, and appends a new measurement. Duplicate
// element and kind pairs are legal and independent.
func (s *Set) Create(el topology.Element, elementKind topology.ElementKind, kind Kind, ideal, uncertainty float64) (*Measurement, error) {
	m, err := New(el, elementKind, kind, ideal, uncertainty)
	if err != nil {
		return nil, err
	}
	s.measurements = append(s.measurements, m)
	return m, nil
}

// Inject runs one noise pass over every measurement: the model perturbs
// each ideal per-unit value, and the actual-unit fields are derived
// through the converter. Run once per estimation cycle.
func (s *Set) Inject(model *noise.Model) {
	for _, m := range s.measurements {
		value, stdDev := model.Perturb(m.Ideal, m.Uncertainty, m.IsPhase())
		m.setValue(value, stdDev)
	}
}

// Update applies one live telemetry reading to every matching measurement
// on the named element and returns how many were written. perUnit declares
// the unit system of the incoming value.
//
// Matching follows the class rules: an incoming voltage or current
// magnitude updates every measurement of its class on that element, while
// power and phase readings update only the exact kind. A reading that
// matches nothing is a no-op; the set only tracks quantities it was
// configured to observe.
func (s *Set) Update(elementUUID string, kind Kind, value float64, perUnit bool) int {
	if !kind.IsValid() {
		return 0
	}
	updated := 0
	for _, m := range s.measurements {
		if m.Element.GetUUID() != elementUUID {
			continue
		}
		if !kindMatches(kind, m.Kind) {
			continue
		}
		m.writeValue(value, perUnit)
		updated++
	}
	return updated
}

// Sorted returns a new set holding the same measurements in canonical
// estimator order. The sort is stable within each kind, so phasor
// magnitude and phase entries of one family stay co-indexed. Sorting an
// already sorted set is the identity.
func (s *Set) Sorted() *Set {
	out := make([]*Measurement, 0, len(s.measurements))
	for _, k := range Kinds {
		for _, m := range s.measurements {
			if m.Kind == k {
				out = append(out, m)
			}
		}
	}
	return &Set{measurements: out}
}

// Merge concatenates two sets into a new one, preserving each half's
// relative order. The measurements are shared, not copied.
func Merge(a, b *Set) *Set {
	out := make([]*Measurement, 0, len(a.measurements)+len(b.measurements))
	out = append(out, a.measurements...)
	out = append(out, b.measurements...)
	return &Set{measurements: out}
}

// Values returns the per-unit value vector in set order, with every
// complete phasor magnitude/phase pair overwritten by its rectangular
// decomposition.
func (s *Set) Values() []float64 {
	return s.assemble(func(m *Measurement) float64 { return m.Value })
}

// ValuesActual returns the actual-unit value vector in set order, with the
// same rectangular decomposition applied to phasor pairs.
func (s *Set) ValuesActual() []float64 {
	return s.assemble(func(m *Measurement) float64 { return m.ValueActual })
}

func (s *Set) assemble(read func(*Measurement) float64) []float64 {
	out := make([]float64, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = read(m)
	}
	s.rectangularize(out, read)
	return out
}

// rectangularize rewrites each phasor pair's two slots from polar to
// rectangular: the magnitude slot becomes mag*cos(phase) and the phase
// slot mag*sin(phase). Pairs are zipped by position within kind, so the
// i-th magnitude joins the i-th phase; with uneven counts the leftovers
// keep their polar values.
func (s *Set) rectangularize(out []float64, read func(*Measurement) float64) {
	for _, pair := range pmuPairs {
		magIdx := s.IndicesOfKind(pair[0])
		phaseIdx := s.IndicesOfKind(pair[1])
		n := min(len(magIdx), len(phaseIdx))
		for i := 0; i < n; i++ {
			mag := read(s.measurements[magIdx[i]])
			phase := read(s.measurements[phaseIdx[i]])
			out[magIdx[i]] = mag * math.Cos(phase)
			out[phaseIdx[i]] = mag * math.Sin(phase)
		}
	}
}

// Weights returns one entry per measurement: the inverse variance
// stdDev^-2, with the floor applied first.
func (s *Set) Weights() []float64 {
	return s.floored(func(m *Measurement) float64 { return m.StdDev }, func(sd float64) float64 {
		return 1 / (sd * sd)
	})
}

// WeightsActual mirrors Weights using the actual-unit deviations.
func (s *Set) WeightsActual() []float64 {
	return s.floored(func(m *Measurement) float64 { return m.StdDevActual }, func(sd float64) float64 {
		return 1 / (sd * sd)
	})
}

// Covariances returns one entry per measurement: the variance stdDev^2,
// with the floor applied first.
func (s *Set) Covariances() []float64 {
	return s.floored(func(m *Measurement) float64 { return m.StdDev }, func(sd float64) float64 {
		return sd * sd
	})
}

// CovariancesActual mirrors Covariances using the actual-unit deviations.
func (s *Set) CovariancesActual() []float64 {
	return s.floored(func(m *Measurement) float64 { return m.StdDevActual }, func(sd float64) float64 {
		return sd * sd
	})
}

func (s *Set) floored(read func(*Measurement) float64, f func(float64) float64) []float64 {
	out := make([]float64, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = f(math.Max(read(m), stdDevFloor))
	}
	return out
}

// ValueVector returns the per-unit value vector as a dense vector, or nil
// for an empty set.
func (s *Set) ValueVector() *mat.VecDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewVecDense(len(s.measurements), s.Values())
}

// ValueVectorActual returns the actual-unit value vector as a dense
// vector, or nil for an empty set.
func (s *Set) ValueVectorActual() *mat.VecDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewVecDense(len(s.measurements), s.ValuesActual())
}

// WeightMatrix returns the diagonal weight matrix a weighted-least-squares
// estimator consumes, or nil for an empty set.
func (s *Set) WeightMatrix() *mat.DiagDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewDiagDense(len(s.measurements), s.Weights())
}

// WeightMatrixActual mirrors WeightMatrix in actual units.
func (s *Set) WeightMatrixActual() *mat.DiagDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewDiagDense(len(s.measurements), s.WeightsActual())
}

// CovarianceMatrix returns the diagonal covariance matrix, or nil for an
// empty set.
func (s *Set) CovarianceMatrix() *mat.DiagDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewDiagDense(len(s.measurements), s.Covariances())
}

// CovarianceMatrixActual mirrors CovarianceMatrix in actual units.
func (s *Set) CovarianceMatrixActual() *mat.DiagDense {
	if len(s.measurements) == 0 {
		return nil
	}
	return mat.NewDiagDense(len(s.measurements), s.CovariancesActual())
}

// OfKind returns the measurements of one kind in set order.
func (s *Set) OfKind(kind Kind) []*Measurement {
	var out []*Measurement
	for _, m := range s.measurements {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// CountOfKind returns how many measurements of one kind the set holds.
func (s *Set) CountOfKind(kind Kind) int {
	n := 0
	for _, m := range s.measurements {
		if m.Kind == kind {
			n++
		}
	}
	return n
}

// IndicesOfKind returns the set-order positions of every measurement of
// one kind.
func (s *Set) IndicesOfKind(kind Kind) []int {
	var out []int
	for i, m := range s.measurements {
		if m.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Ideals returns the ideal per-unit values in set order.
func (s *Set) Ideals() []float64 {
	out := make([]float64, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = m.Ideal
	}
	return out
}

// IdealsOfKind returns the ideal per-unit values of one kind in set order.
func (s *Set) IdealsOfKind(kind Kind) []float64 {
	var out []float64
	for _, m := range s.measurements {
		if m.Kind == kind {
			out = append(out, m.Ideal)
		}
	}
	return out
}

// StdDevs returns the stored per-unit deviations in set order, without
// the floor.
func (s *Set) StdDevs() []float64 {
	out := make([]float64, len(s.measurements))
	for i, m := range s.measurements {
		out[i] = m.StdDev
	}
	return out
}
