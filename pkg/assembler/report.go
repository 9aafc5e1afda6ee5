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

package assembler

import (
	"github.com/google/uuid"

	"github.com/martinmoraga/pyvolt/pkg/header"
	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/topology"
)

// Record is one measurement in a report: the stored polar/scalar values,
// not the rectangular vector form.
type Record struct {
	Device       string               `json:"device" yaml:"device"`
	ElementKind  topology.ElementKind `json:"elementKind" yaml:"elementKind"`
	Kind         measurement.Kind     `json:"kind" yaml:"kind"`
	Ideal        float64              `json:"ideal" yaml:"ideal"`
	Uncertainty  float64              `json:"uncertainty" yaml:"uncertainty"`
	Value        float64              `json:"value" yaml:"value"`
	ValueActual  float64              `json:"valueActual" yaml:"valueActual"`
	StdDev       float64              `json:"stdDev" yaml:"stdDev"`
	StdDevActual float64              `json:"stdDevActual" yaml:"stdDevActual"`
}

// Vectors carries the flat estimator-facing vectors, with the phasor
// pairs already decomposed into rectangular form and the deviation floor
// applied to weights and covariances.
type Vectors struct {
	Values            []float64 `json:"values" yaml:"values"`
	ValuesActual      []float64 `json:"valuesActual" yaml:"valuesActual"`
	Weights           []float64 `json:"weights" yaml:"weights"`
	WeightsActual     []float64 `json:"weightsActual" yaml:"weightsActual"`
	Covariances       []float64 `json:"covariances" yaml:"covariances"`
	CovariancesActual []float64 `json:"covariancesActual" yaml:"covariancesActual"`
}

// Report is the document one assembly run emits.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Run uniquely identifies this assembly run.
	Run string `json:"run" yaml:"run"`

	Mode         string `json:"mode" yaml:"mode"`
	Distribution string `json:"distribution" yaml:"distribution"`
	Seed         uint64 `json:"seed" yaml:"seed"`
	Sorted       bool   `json:"sorted,omitempty" yaml:"sorted,omitempty"`

	Records []Record `json:"records" yaml:"records"`
	Vectors Vectors  `json:"vectors" yaml:"vectors"`
}

// NewReport builds a report from an assembled set and the model that
// perturbed it.
func NewReport(set *measurement.Set, model *noise.Model, version string, sorted bool) *Report {
	rep := &Report{
		Run:          uuid.NewString(),
		Mode:         model.Mode().String(),
		Distribution: model.Distribution().String(),
		Seed:         model.Seed(),
		Sorted:       sorted,
		Records:      make([]Record, 0, set.Len()),
	}
	rep.Init(header.KindMeasurementReport, header.FullAPIVersion, version)

	for _, m := range set.Measurements() {
		rep.Records = append(rep.Records, Record{
			Device:       m.Element.GetUUID(),
			ElementKind:  m.ElementKind,
			Kind:         m.Kind,
			Ideal:        m.Ideal,
			Uncertainty:  m.Uncertainty,
			Value:        m.Value,
			ValueActual:  m.ValueActual,
			StdDev:       m.StdDev,
			StdDevActual: m.StdDevActual,
		})
	}

	rep.Vectors = Vectors{
		Values:            set.Values(),
		ValuesActual:      set.ValuesActual(),
		Weights:           set.Weights(),
		WeightsActual:     set.WeightsActual(),
		Covariances:       set.Covariances(),
		CovariancesActual: set.CovariancesActual(),
	}
	return rep
}
