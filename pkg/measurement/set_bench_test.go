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
	"fmt"
	"testing"

	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// benchSet builds a set shaped like a mid-size grid: per node a voltage
// magnitude, an injection pair, and a voltage phasor pair; per branch a
// current magnitude and a flow pair.
func benchSet(b *testing.B, nodes, branches int) *Set {
	b.Helper()
	s := NewSet()
	add := func(el topology.Element, kind Kind, ideal, unc float64) {
		if _, err := s.Create(el, el.GetKind(), kind, ideal, unc); err != nil {
			b.Fatalf("Create(%v): %v", kind, err)
		}
	}
	for i := 0; i < nodes; i++ {
		n := &topology.Node{
			UUID:              fmt.Sprintf("n%d", i),
			BaseVoltage:       400,
			BaseApparentPower: 100,
		}
		add(n, KindVmag, 1.02, 1)
		add(n, KindPinj, 0.5, 2)
		add(n, KindQinj, 0.1, 2)
		add(n, KindVpmuMag, 1.02, 0.5)
		add(n, KindVpmuPhase, -0.05, 0.003)
	}
	for i := 0; i < branches; i++ {
		br := &topology.Branch{
			UUID:              fmt.Sprintf("b%d", i),
			FromNode:          "n0",
			ToNode:            "n1",
			BaseVoltage:       400,
			BaseApparentPower: 100,
		}
		add(br, KindImag, 0.9, 1)
		add(br, KindP1, 0.3, 2)
		add(br, KindQ1, 0.05, 2)
	}
	s.Inject(noise.New(noise.WithSeed(1)))
	return s
}

func BenchmarkSet_Values(b *testing.B) {
	s := benchSet(b, 30, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Values()
	}
}

func BenchmarkSet_Weights(b *testing.B) {
	s := benchSet(b, 30, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Weights()
	}
}

func BenchmarkSet_Sorted(b *testing.B) {
	s := benchSet(b, 30, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Sorted()
	}
}

func BenchmarkSet_Inject(b *testing.B) {
	s := benchSet(b, 30, 40)
	model := noise.New(noise.WithSeed(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Inject(model)
	}
}

func BenchmarkSet_Update(b *testing.B) {
	s := benchSet(b, 30, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Update("n12", KindVpmuMag, 1.03, true)
	}
}
