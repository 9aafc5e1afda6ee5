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

// Package measurement models the measurement layer of a power-system
// state-estimation pipeline: scalar observations attached to grid
// elements, perturbed with realistic uncertainty, and assembled into the
// strictly ordered numeric vectors a weighted-least-squares estimator
// consumes.
//
// # Core Types
//
// The package is built around three types:
//   - Kind: enum of the 14 measurable quantities, declared in the
//     estimator's canonical order (voltages, injections, branch flows,
//     currents, then the phasor pairs)
//   - Measurement: one observation on one topology element, carrying the
//     ideal value, the uncertainty, and the observed per-unit and
//     actual-unit values with their deviations
//   - Set: an ordered collection owning creation, noise injection, live
//     telemetry updates, sorting, and vector assembly
//
// # Lifecycle
//
// A set is populated from a power-flow result, perturbed once per
// estimation cycle, optionally refreshed from live telemetry, and then
// read out as flat vectors:
//
//	set := measurement.NewSet()
//	set.Create(node, topology.KindNode, measurement.KindVmag, 1.02, 1)
//	set.Create(node, topology.KindNode, measurement.KindVpmuMag, 1.02, 0.5)
//	set.Create(node, topology.KindNode, measurement.KindVpmuPhase, -0.05, 0.003)
//
//	set.Inject(noise.New(noise.WithSeed(42)))
//	set.Update("n1", measurement.KindVpmuMag, 1.03, true)
//
//	z := set.Sorted().ValueVector()
//	w := set.Sorted().WeightMatrix()
//
// # Ordering
//
// The estimator builds its Jacobian against the canonical kind order, and
// phasor magnitude/phase pairs are matched by position within their kind.
// Sorted returns that view; it shares the underlying measurements, so a
// later Inject or Update is visible through both sets.
//
// # Vector assembly
//
// Values and ValuesActual rewrite every complete phasor pair from polar
// to rectangular form (mag*cos(phase), mag*sin(phase)), because the
// estimator treats phasor measurements as linear real/imaginary
// quantities. Weights and Covariances derive from the deviations with a
// 1e-6 floor applied at read time.
package measurement
