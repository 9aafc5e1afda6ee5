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

// Package header provides common header types for pyvolt documents.
//
// This package defines the Header type embedded by measurement reports,
// plan validation results, and replay summaries to provide consistent
// metadata and versioning information.
//
// # Header Structure
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
//	    APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
//	    Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
//	}
//
// # Usage
//
// Initialize a header on a report:
//
//	var report assembler.Report
//	report.Header.Init(header.KindMeasurementReport, "pyvolt.sogno.energy/v1alpha1", version)
//
// Or construct one with options:
//
//	h := header.New(
//	    header.WithKind(header.KindReplaySummary),
//	    header.WithAPIVersion("pyvolt.sogno.energy/v1alpha1"),
//	    header.WithMetadata("feed", feedPath),
//	)
//
// # Serialization
//
// Headers serialize consistently to JSON and YAML:
//
//	{
//	  "kind": "MeasurementReport",
//	  "apiVersion": "pyvolt.sogno.energy/v1alpha1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// # API Versioning
//
// The APIVersion field enables evolution of data formats. Consumers should
// check it before parsing:
//
//	if h.APIVersion != assembler.APIVersion {
//	    return fmt.Errorf("unsupported API version: %s", h.APIVersion)
//	}
//
// # Kind Field
//
// The Kind field identifies the resource type:
//   - MeasurementReport: Assembled measurement vectors and records
//   - MeasurementPlan: Measurement configuration document
//   - PlanValidation: Result of validating a plan against a grid
//   - ReplaySummary: Outcome statistics of a telemetry replay
//
// # Timestamps
//
// Timestamps use RFC3339 format for consistency:
//
//	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
//	// Serializes as: "2025-12-30T10:30:00Z"
package header
