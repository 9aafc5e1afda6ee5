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

import "testing"

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name    string
		device  string
		pattern string
		want    bool
	}{
		{"exact match", "bus-12", "bus-12", true},
		{"exact mismatch", "bus-12", "bus-13", false},
		{"prefix wildcard", "bus-12", "bus-*", true},
		{"prefix wildcard mismatch", "line-12", "bus-*", false},
		{"suffix wildcard", "station-north", "*north", true},
		{"suffix wildcard mismatch", "station-south", "*north", false},
		{"contains wildcard", "pmu-north-12", "*north*", true},
		{"contains wildcard mismatch", "pmu-south-12", "*north*", false},
		{"multiple segments", "pmu-north-12", "pmu*12", true},
		{"multiple segments out of order", "12-north-pmu", "pmu*12", false},
		{"three segments", "aXbYc", "a*b*c", true},
		{"three segments broken", "aXcYb", "a*b*c", false},
		{"lone wildcard", "anything", "*", true},
		{"empty pattern", "anything", "", false},
		{"empty device exact", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesPattern(tt.device, tt.pattern); got != tt.want {
				t.Errorf("matchesPattern(%q, %q) = %v, want %v", tt.device, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{"bus-*", "*-pmu"}

	tests := []struct {
		device string
		want   bool
	}{
		{"bus-1", true},
		{"north-pmu", true},
		{"line-7", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := MatchesAny(tt.device, patterns); got != tt.want {
			t.Errorf("MatchesAny(%q) = %v, want %v", tt.device, got, tt.want)
		}
	}

	if MatchesAny("anything", nil) {
		t.Error("MatchesAny with no patterns should not match")
	}
}
