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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assembly pipeline metrics
	assemblyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pyvolt_assembly_duration_seconds",
			Help:    "Time taken to expand and perturb a complete measurement set",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	assemblyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pyvolt_assembly_total",
			Help: "Total number of assembly attempts",
		},
		[]string{"status"}, // success or error
	)

	assemblyInputLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pyvolt_assembly_input_load_duration_seconds",
			Help:    "Time taken to load individual assembly inputs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"input"}, // grid, results, plan
	)

	assemblyMeasurements = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pyvolt_assembly_measurements",
			Help: "Number of measurements in the last assembled set",
		},
	)
)

func observeInputLoad(input string, start time.Time) {
	assemblyInputLoadDuration.WithLabelValues(input).Observe(time.Since(start).Seconds())
}
