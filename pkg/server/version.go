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
	"net/http"

	"github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/header"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
	"github.com/martinmoraga/pyvolt/pkg/version"
)

// VersionResponse describes the running build and the document schema it
// speaks. MinVersion and SatisfiesMin appear only when the request carried
// a ?min= constraint.
type VersionResponse struct {
	Name       string           `json:"name"`
	Version    string           `json:"version"`
	Commit     string           `json:"commit,omitempty"`
	Date       string           `json:"date,omitempty"`
	Semantic   *version.Version `json:"semantic,omitempty"`
	APIVersion string           `json:"apiVersion"`

	MinVersion   string `json:"minVersion,omitempty"`
	SatisfiesMin *bool  `json:"satisfiesMin,omitempty"`
}

// handleVersion handles GET /version. Clients that need a minimum server
// version pass ?min=1.2.3 and read satisfiesMin from the response.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	resp := VersionResponse{
		Name:       s.config.Name,
		Version:    s.config.Version,
		Commit:     version.Commit,
		Date:       version.Date,
		APIVersion: header.FullAPIVersion,
	}
	if resp.Version == "" || resp.Version == "undefined" {
		resp.Version = version.Build
	}
	if sem, err := version.ParseVersion(resp.Version); err == nil {
		resp.Semantic = &sem
	}

	if min := r.URL.Query().Get("min"); min != "" {
		minV, err := version.ParseVersion(min)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
				"Invalid min version", false, map[string]any{"min": min, "error": err.Error()})
			return
		}
		// Builds without a semantic version (dev builds) satisfy nothing.
		ok := resp.Semantic != nil && resp.Semantic.EqualsOrNewer(minV)
		resp.MinVersion = min
		resp.SatisfiesMin = &ok
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
