/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "https prefix",
			input:    "https://ghcr.io",
			expected: "ghcr.io",
		},
		{
			name:     "http prefix",
			input:    "http://localhost:5000",
			expected: "localhost:5000",
		},
		{
			name:     "no prefix",
			input:    "registry.example.com",
			expected: "registry.example.com",
		},
		{
			name:     "with port no prefix",
			input:    "localhost:5000",
			expected: "localhost:5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripProtocol(tt.input); got != tt.expected {
				t.Errorf("stripProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLayerMediaType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"plan.json", "application/json"},
		{"plan.yaml", "application/yaml"},
		{"plan.yml", "application/yaml"},
		{"PLAN.YAML", "application/yaml"},
		{"/abs/path/report.json", "application/json"},
		{"plan", "application/octet-stream"},
		{"plan.txt", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := LayerMediaType(tt.path); got != tt.expected {
				t.Errorf("LayerMediaType(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestPush_RequiresTag(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		Path:       "plan.yaml",
		Registry:   "localhost:5000",
		Repository: "sogno/plans",
	})
	if err == nil {
		t.Fatal("expected error for missing tag")
	}
	if !strings.Contains(err.Error(), "tag") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPush_RequiresPath(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		Registry:   "localhost:5000",
		Repository: "sogno/plans",
		Tag:        "v1",
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !strings.Contains(err.Error(), "path") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPush_MissingDocument(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{
		Path:       filepath.Join(t.TempDir(), "nope.yaml"),
		Registry:   "localhost:5000",
		Repository: "sogno/plans",
		Tag:        "v1",
	})
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if !strings.Contains(err.Error(), "stat") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPush_InvalidReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte("Measurement: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Push(context.Background(), PushOptions{
		Path:       path,
		Registry:   "localhost:5000",
		Repository: "Sogno/UPPER CASE",
		Tag:        "v1",
	})
	if err == nil {
		t.Fatal("expected error for invalid reference")
	}
	if !strings.Contains(err.Error(), "invalid image reference") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateAuthClient(t *testing.T) {
	tests := []struct {
		name        string
		plainHTTP   bool
		insecureTLS bool
	}{
		{name: "default", plainHTTP: false, insecureTLS: false},
		{name: "plain http", plainHTTP: true, insecureTLS: false},
		{name: "insecure tls", plainHTTP: false, insecureTLS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createAuthClient(tt.plainHTTP, tt.insecureTLS)
			if c == nil {
				t.Fatal("expected auth client")
			}
			if c.Cache == nil {
				t.Error("expected credential cache")
			}
		})
	}
}
