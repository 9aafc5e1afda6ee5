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

// Package topology models the grid elements measurements attach to.
//
// # Overview
//
// A Grid holds the nodes (buses) and branches (lines, transformers) of a
// network together with their base quantities. Measurements never own
// elements; they hold a reference and read base voltage, base current, and
// base apparent power through the Element interface when converting between
// per-unit and actual units.
//
// # Base Quantities
//
// Every element carries a line-to-line base voltage in kV and a three-phase
// base apparent power in MW. The base current in kA is derived:
//
//	I_base = S_base / (V_base * sqrt(3))
//
// Branches additionally expose a base impedance V_base^2 / S_base in ohms.
//
// # Grid Documents
//
// Grids load from JSON or YAML documents:
//
//	{
//	  "nodes": [
//	    {"uuid": "n1", "baseVoltage": 400, "baseApparentPower": 100, "busType": "SLACK"},
//	    {"uuid": "n2", "baseVoltage": 400, "baseApparentPower": 100}
//	  ],
//	  "branches": [
//	    {"uuid": "b1", "fromNode": "n1", "toNode": "n2",
//	     "baseVoltage": 400, "baseApparentPower": 100}
//	  ]
//	}
//
// Init validates uuids (non-empty, unique), normalizes bus types (PQ when
// unset), and checks branch endpoint references. Lookups on missing uuids
// return a structured NOT_FOUND error; callers that expand measurement plans
// treat that as a hard failure rather than skipping the element.
package topology
