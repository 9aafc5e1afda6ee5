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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/martinmoraga/pyvolt/pkg/header"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

func TestHandleVersion(t *testing.T) {
	s := New(WithName("pyvoltd"), WithVersion("v1.2.3"))

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()

	s.handleVersion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp VersionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Name != "pyvoltd" {
		t.Errorf("expected name pyvoltd, got %s", resp.Name)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %s", resp.Version)
	}
	if resp.APIVersion != header.FullAPIVersion {
		t.Errorf("expected apiVersion %s, got %s", header.FullAPIVersion, resp.APIVersion)
	}
	if resp.Semantic == nil {
		t.Fatal("expected semantic version to be parsed")
	}
	if want := (version.Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}); *resp.Semantic != want {
		t.Errorf("expected semantic 1.2.3, got %s", resp.Semantic)
	}
	if resp.SatisfiesMin != nil {
		t.Error("expected no min gating without a min param")
	}
}

func TestHandleVersion_MinGating(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		min       string
		satisfies bool
	}{
		{"satisfied exact", "v1.2.3", "1.2.3", true},
		{"satisfied newer", "v1.2.3", "1.2.0", true},
		{"not satisfied", "v1.2.3", "2.0", false},
		{"dev build satisfies nothing", "dev", "0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithVersion(tt.version))

			req := httptest.NewRequest(http.MethodGet, "/version?min="+tt.min, nil)
			w := httptest.NewRecorder()

			s.handleVersion(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			var resp VersionResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.MinVersion != tt.min {
				t.Errorf("expected minVersion %s, got %s", tt.min, resp.MinVersion)
			}
			if resp.SatisfiesMin == nil {
				t.Fatal("expected satisfiesMin to be set")
			}
			if *resp.SatisfiesMin != tt.satisfies {
				t.Errorf("satisfiesMin = %v, want %v", *resp.SatisfiesMin, tt.satisfies)
			}
		})
	}
}

func TestHandleVersion_MinInvalid(t *testing.T) {
	s := New(WithVersion("v1.2.3"))

	req := httptest.NewRequest(http.MethodGet, "/version?min=not-a-version", nil)
	w := httptest.NewRecorder()

	s.handleVersion(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestHandleVersion_FallsBackToBuild(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()

	s.handleVersion(w, req)

	var resp VersionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Version != version.Build {
		t.Errorf("expected build version %s, got %s", version.Build, resp.Version)
	}
}

func TestHandleVersion_MethodNotAllowed(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodPost, "/version", nil)
	w := httptest.NewRecorder()

	s.handleVersion(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
	if w.Header().Get("Allow") != http.MethodGet {
		t.Errorf("expected Allow header GET, got %s", w.Header().Get("Allow"))
	}
}
