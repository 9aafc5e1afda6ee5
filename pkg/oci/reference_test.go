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

package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/martinmoraga/pyvolt/pkg/errors"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantOCI    bool
		registry   string
		repository string
		tag        string
		localPath  string
		wantErr    bool
	}{
		{
			name:      "local relative path",
			target:    "out/plan.yaml",
			wantOCI:   false,
			localPath: "out/plan.yaml",
		},
		{
			name:      "local absolute path",
			target:    "/tmp/plan.json",
			wantOCI:   false,
			localPath: "/tmp/plan.json",
		},
		{
			name:       "oci with tag",
			target:     "oci://ghcr.io/sogno/plans:v1.0.0",
			wantOCI:    true,
			registry:   "ghcr.io",
			repository: "sogno/plans",
			tag:        "v1.0.0",
		},
		{
			name:       "oci without tag",
			target:     "oci://ghcr.io/sogno/plans",
			wantOCI:    true,
			registry:   "ghcr.io",
			repository: "sogno/plans",
			tag:        "",
		},
		{
			name:       "oci with registry port",
			target:     "oci://localhost:5000/plans:latest",
			wantOCI:    true,
			registry:   "localhost:5000",
			repository: "plans",
			tag:        "latest",
		},
		{
			name:    "oci with invalid characters",
			target:  "oci://ghcr.io/UPPER CASE/repo:tag",
			wantErr: true,
		},
		{
			name:    "oci empty reference",
			target:  "oci://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseTarget(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOCI, ref.IsOCI)
			if tt.wantOCI {
				assert.Equal(t, tt.registry, ref.Registry)
				assert.Equal(t, tt.repository, ref.Repository)
				assert.Equal(t, tt.tag, ref.Tag)
			} else {
				assert.Equal(t, tt.localPath, ref.LocalPath)
			}
		})
	}
}

func TestReference_String(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{
			name: "local path",
			ref:  Reference{IsOCI: false, LocalPath: "out/plan.yaml"},
			want: "out/plan.yaml",
		},
		{
			name: "oci with tag",
			ref:  Reference{IsOCI: true, Registry: "ghcr.io", Repository: "sogno/plans", Tag: "v1"},
			want: "oci://ghcr.io/sogno/plans:v1",
		},
		{
			name: "oci without tag",
			ref:  Reference{IsOCI: true, Registry: "ghcr.io", Repository: "sogno/plans"},
			want: "oci://ghcr.io/sogno/plans",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestReference_ImageReference(t *testing.T) {
	local := Reference{IsOCI: false, LocalPath: "plan.yaml"}
	assert.Empty(t, local.ImageReference())

	tagged := Reference{IsOCI: true, Registry: "localhost:5000", Repository: "plans", Tag: "v2"}
	assert.Equal(t, "localhost:5000/plans:v2", tagged.ImageReference())

	untagged := Reference{IsOCI: true, Registry: "localhost:5000", Repository: "plans"}
	assert.Equal(t, "localhost:5000/plans", untagged.ImageReference())
}

func TestReference_WithTag(t *testing.T) {
	ref := Reference{IsOCI: true, Registry: "ghcr.io", Repository: "sogno/plans"}
	tagged := ref.WithTag("v3")
	assert.Equal(t, "v3", tagged.Tag)
	assert.Empty(t, ref.Tag, "original must not change")

	local := &Reference{IsOCI: false, LocalPath: "plan.yaml"}
	assert.Same(t, local, local.WithTag("v3"))
}

func TestParseTarget_RoundTrip(t *testing.T) {
	targets := []string{
		"oci://ghcr.io/sogno/plans:v1.0.0",
		"oci://localhost:5000/plans:latest",
		"out/plan.yaml",
	}
	for _, target := range targets {
		ref, err := ParseTarget(target)
		require.NoError(t, err)
		assert.Equal(t, target, ref.String())
	}
}
