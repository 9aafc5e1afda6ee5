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

package telemetry

import (
	"time"

	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
)

// Sample is one device reading. PerUnit tells whether Value is already on
// the per-unit scale; actual-unit samples convert against the matched
// element's bases when applied. At is the device timestamp and is carried
// for traceability only; replay order is list order.
type Sample struct {
	Device  string           `json:"device" yaml:"device"`
	Kind    measurement.Kind `json:"kind" yaml:"kind"`
	Value   float64          `json:"value" yaml:"value"`
	PerUnit bool             `json:"perUnit,omitempty" yaml:"perUnit,omitempty"`
	At      time.Time        `json:"at,omitempty" yaml:"at,omitempty"`
}

// Feed is a file-loadable sample list, replayed in order.
type Feed struct {
	Samples []Sample `json:"samples" yaml:"samples"`
}

// Len returns the number of samples in the feed.
func (f *Feed) Len() int {
	return len(f.Samples)
}

// LoadFeed reads a sample feed from a JSON or YAML file.
func LoadFeed(path string) (*Feed, error) {
	return serializer.FromFile[Feed](path)
}

// Outcome classifies what happened to one applied sample.
type Outcome int

const (
	// OutcomeApplied means the sample updated at least one measurement.
	OutcomeApplied Outcome = iota
	// OutcomeFiltered means the device did not match the Only patterns.
	OutcomeFiltered
	// OutcomeRejected means the value fell outside the sanity bounds.
	OutcomeRejected
	// OutcomeUnmatched means no measurement accepted the sample.
	OutcomeUnmatched
)

var outcomeNames = map[Outcome]string{
	OutcomeApplied:   "Applied",
	OutcomeFiltered:  "Filtered",
	OutcomeRejected:  "Rejected",
	OutcomeUnmatched: "Unmatched",
}

// String returns the outcome name.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "Unknown"
}
