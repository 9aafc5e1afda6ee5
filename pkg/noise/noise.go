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

// Package noise perturbs ideal measurement values into realistic observed
// ones.
//
// A Model owns its own seeded random source, so repeated runs with the same
// seed produce identical measurement vectors and concurrent models never
// share generator state. Two modes exist: simulation draws perturbations
// from a configured distribution, field copies ideals through untouched
// (live devices supply the real values later). Uncertainty is a percentage
// of the measured value; spreads follow the three-sigma convention, so a
// normal draw lands within the uncertainty band 99.7% of the time and a
// uniform draw always.
package noise

import (
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Mode selects where measurement values come from.
type Mode string

const (
	// ModeSimulation perturbs ideal values with random noise.
	ModeSimulation Mode = "simulation"
	// ModeField passes ideal values through; live telemetry overwrites them.
	ModeField Mode = "field"
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid checks if the Mode is one of the recognized modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeSimulation, ModeField:
		return true
	default:
		return false
	}
}

// ParseMode converts a textual mode into a Mode. Matching is
// case-insensitive.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simulation":
		return ModeSimulation, true
	case "field":
		return ModeField, true
	default:
		return "", false
	}
}

// Distribution selects the shape of simulated noise.
type Distribution string

const (
	// DistNormal draws Gaussian noise with sigma equal to the spread.
	DistNormal Distribution = "normal"
	// DistUniform draws uniform noise over [-3*spread, 3*spread).
	DistUniform Distribution = "uniform"
)

// String returns the string representation of the Distribution.
func (d Distribution) String() string {
	return string(d)
}

// IsValid checks if the Distribution is one of the recognized distributions.
func (d Distribution) IsValid() bool {
	switch d {
	case DistNormal, DistUniform:
		return true
	default:
		return false
	}
}

// ParseDistribution converts a textual distribution into a Distribution.
// Matching is case-insensitive.
func ParseDistribution(s string) (Distribution, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "gaussian":
		return DistNormal, true
	case "uniform":
		return DistUniform, true
	default:
		return "", false
	}
}

// DefaultSeed is the generator seed used when none is configured.
const DefaultSeed uint64 = 1

// Model draws measurement perturbations from a private seeded source.
type Model struct {
	mode    Mode
	dist    Distribution
	seed    uint64
	normal  distuv.Normal
	uniform distuv.Uniform
}

// Option is a functional option for configuring Model instances.
type Option func(*Model)

// WithMode sets the noise mode. Unknown modes are ignored.
func WithMode(mode Mode) Option {
	return func(m *Model) {
		if mode.IsValid() {
			m.mode = mode
		}
	}
}

// WithDistribution sets the simulated noise distribution. Unknown
// distributions are ignored.
func WithDistribution(dist Distribution) Option {
	return func(m *Model) {
		if dist.IsValid() {
			m.dist = dist
		}
	}
}

// WithSeed sets the generator seed.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.seed = seed
	}
}

// New creates a Model with the provided options. Defaults: simulation mode,
// normal distribution, DefaultSeed.
func New(opts ...Option) *Model {
	m := &Model{
		mode: ModeSimulation,
		dist: DistNormal,
		seed: DefaultSeed,
	}

	for _, opt := range opts {
		opt(m)
	}

	src := rand.NewPCG(m.seed, m.seed)
	m.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	m.uniform = distuv.Uniform{Min: -1, Max: 1, Src: src}

	return m
}

// Mode returns the configured mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Distribution returns the configured distribution.
func (m *Model) Distribution() Distribution {
	return m.dist
}

// Seed returns the configured seed.
func (m *Model) Seed() uint64 {
	return m.seed
}

// Perturb returns the observed value and standard deviation for one
// measurement given its ideal per-unit value and uncertainty in percent.
// Phase angles use an absolute spread of uncertainty/3 radians; all other
// quantities use a relative spread of |ideal*uncertainty|/300.
func (m *Model) Perturb(ideal, uncertainty float64, phase bool) (value, stdDev float64) {
	if phase {
		spread := uncertainty / 3
		value = ideal
		if m.mode == ModeSimulation {
			value += m.offset(spread)
		}
		return value, spread
	}

	spread := math.Abs(ideal*uncertainty) / 300
	value = ideal
	if m.mode == ModeSimulation {
		value += m.offset(spread)
	}
	// The deviation follows the reported value, not the true one, the same
	// way a device's accuracy class applies to its own reading.
	return value, math.Abs(value*uncertainty) / 300
}

func (m *Model) offset(spread float64) float64 {
	switch m.dist {
	case DistUniform:
		return 3 * spread * m.uniform.Rand()
	default:
		return spread * m.normal.Rand()
	}
}
