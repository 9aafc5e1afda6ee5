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

package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/martinmoraga/pyvolt/pkg/header"
	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates all checks passed.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail indicates one or more checks failed.
	ValidationStatusFail ValidationStatus = "fail"

	// ValidationStatusPartial indicates some checks couldn't be evaluated
	// (no grid was provided, so uuid resolution was skipped).
	ValidationStatusPartial ValidationStatus = "partial"
)

// CheckStatus represents the outcome of a single check.
type CheckStatus string

const (
	// CheckStatusPassed indicates the check was satisfied.
	CheckStatusPassed CheckStatus = "passed"

	// CheckStatusFailed indicates the check was not satisfied.
	CheckStatusFailed CheckStatus = "failed"

	// CheckStatusSkipped indicates the check couldn't be evaluated.
	CheckStatusSkipped CheckStatus = "skipped"
)

// Validation is the document a plan-validation run emits.
type Validation struct {
	header.Header `json:",inline" yaml:",inline"`

	// PlanSource is the path/URI of the plan that was validated.
	PlanSource string `json:"planSource" yaml:"planSource"`

	// GridSource is the path/URI of the grid used for uuid resolution.
	// Empty when validation ran without a grid.
	GridSource string `json:"gridSource,omitempty" yaml:"gridSource,omitempty"`

	// Summary contains aggregate validation statistics.
	Summary ValidationSummary `json:"summary" yaml:"summary"`

	// Results contains per-check details.
	Results []Check `json:"results" yaml:"results"`
}

// ValidationSummary contains aggregate statistics about the validation.
type ValidationSummary struct {
	// Passed is the count of checks that were satisfied.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the count of checks that were not satisfied.
	Failed int `json:"failed" yaml:"failed"`

	// Skipped is the count of checks that couldn't be evaluated.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Total is the total number of checks evaluated.
	Total int `json:"total" yaml:"total"`

	// Status is the overall validation status.
	Status ValidationStatus `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Check represents the result of one validation check: a group's shape, or
// one of its element uuids resolving against the grid.
type Check struct {
	// Group is the measurement group the check belongs to.
	Group string `json:"group" yaml:"group"`

	// UUID is the element uuid the check resolved, when it is a
	// resolution check.
	UUID string `json:"uuid,omitempty" yaml:"uuid,omitempty"`

	// Status is the outcome of this check.
	Status CheckStatus `json:"status" yaml:"status"`

	// Message provides additional context, especially for failures.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// nodeGroups maps each group to whether its uuids name nodes (true) or
// branches (false). Derived from the kinds the group expands into.
var nodeGroups = map[string]bool{
	GroupVmag:    true,
	GroupPinj:    true,
	GroupQinj:    true,
	GroupVpmu:    true,
	GroupIpmuInj: true,
	GroupP1:      false,
	GroupQ1:      false,
	GroupP2:      false,
	GroupQ2:      false,
	GroupImag:    false,
	GroupIpmu:    false,
}

// NewValidation checks a plan document and returns the validation result.
// Unlike Validate, which fails on the first problem, this walks every group
// and reports all of them. When grid is non-nil, each element uuid must
// resolve to a grid element of the kind the group expands against.
func NewValidation(p *Plan, grid *topology.Grid, version string) *Validation {
	start := time.Now()

	v := &Validation{Results: make([]Check, 0, len(p.Measurement))}
	v.Init(header.KindPlanValidation, header.FullAPIVersion, version)

	// Unknown group names first, in a stable order.
	unknown := make([]string, 0)
	for name := range p.Measurement {
		if !KnownGroup(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		v.Results = append(v.Results, Check{
			Group:   name,
			Status:  CheckStatusFailed,
			Message: "unknown measurement group",
		})
	}

	if len(p.Measurement) == 0 {
		v.Results = append(v.Results, Check{
			Status:  CheckStatusFailed,
			Message: "plan declares no measurement groups",
		})
	}

	for _, name := range GroupOrder {
		g, ok := p.Measurement[name]
		if !ok {
			continue
		}
		v.Results = append(v.Results, checkShape(name, g))
		v.Results = append(v.Results, checkUUIDs(name, g, grid)...)
	}

	for _, c := range v.Results {
		switch c.Status {
		case CheckStatusPassed:
			v.Summary.Passed++
		case CheckStatusFailed:
			v.Summary.Failed++
		case CheckStatusSkipped:
			v.Summary.Skipped++
		}
	}
	v.Summary.Total = len(v.Results)
	v.Summary.Duration = time.Since(start)

	switch {
	case v.Summary.Failed > 0:
		v.Summary.Status = ValidationStatusFail
	case v.Summary.Skipped > 0:
		v.Summary.Status = ValidationStatusPartial
	default:
		v.Summary.Status = ValidationStatusPass
	}
	return v
}

// checkShape validates one group's uncertainty/uuid shape.
func checkShape(name string, g Group) Check {
	c := Check{Group: name, Status: CheckStatusPassed}

	fail := func(msg string) Check {
		c.Status = CheckStatusFailed
		c.Message = msg
		return c
	}

	if IsPhasorGroup(name) {
		if g.UncMag == nil || g.UncPhase == nil {
			return fail("phasor group needs unc_mag and unc_phase")
		}
		if g.Unc != nil {
			return fail("phasor group cannot carry unc")
		}
	} else {
		if g.Unc == nil {
			return fail("group needs unc")
		}
		if g.UncMag != nil || g.UncPhase != nil {
			return fail("scalar group cannot carry unc_mag or unc_phase")
		}
	}
	if len(g.UUIDs) == 0 {
		return fail("group has no element uuids")
	}
	for i, uuid := range g.UUIDs {
		if uuid == "" {
			return fail(fmt.Sprintf("element uuid at index %d is empty", i))
		}
	}
	return c
}

// checkUUIDs resolves each group uuid against the grid. Without a grid the
// checks are skipped, not passed: the plan may still name unknown devices.
func checkUUIDs(name string, g Group, grid *topology.Grid) []Check {
	checks := make([]Check, 0, len(g.UUIDs))
	for _, uuid := range g.UUIDs {
		if uuid == "" {
			continue // already reported by the shape check
		}
		c := Check{Group: name, UUID: uuid, Status: CheckStatusPassed}
		if grid == nil {
			c.Status = CheckStatusSkipped
			c.Message = "no grid provided"
			checks = append(checks, c)
			continue
		}

		var err error
		if nodeGroups[name] {
			_, err = grid.Node(uuid)
		} else {
			_, err = grid.Branch(uuid)
		}
		if err != nil {
			c.Status = CheckStatusFailed
			c.Message = err.Error()
		}
		checks = append(checks, c)
	}
	return checks
}
