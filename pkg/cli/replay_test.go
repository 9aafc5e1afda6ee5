/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"path/filepath"
	"testing"
)

const testFeedJSON = `{
  "samples": [
    {"device": "n1", "kind": "VpmuMag", "value": 1.03, "perUnit": true},
    {"device": "b1", "kind": "P1", "value": 0.45, "perUnit": true},
    {"device": "ghost", "kind": "Vmag", "value": 1.0, "perUnit": true},
    {"device": "n1", "kind": "VpmuMag", "value": 9.5, "perUnit": true}
  ]
}`

func TestReplayCmd(t *testing.T) {
	grid, results, plan := testInputs(t)
	dir := t.TempDir()
	feed := writeFixture(t, dir, "feed.json", testFeedJSON)
	out := filepath.Join(dir, "summary.json")

	doc := runCLI(t, out, "pyvolt", "replay",
		"-g", grid, "-r", results, "-p", plan,
		"--feed", feed, "-o", out)

	if doc["kind"] != "ReplaySummary" {
		t.Errorf("kind = %v, want ReplaySummary", doc["kind"])
	}
	stats := doc["stats"].(map[string]any)
	if got := stats["received"].(float64); got != 4 {
		t.Errorf("received = %v, want 4", got)
	}
	// n1 VpmuMag updates Vmag and VpmuMag/VpmuPhase pair's magnitude slot;
	// b1 P1 matches exactly; the ghost device is unmatched; the 9.5 pu
	// voltage falls outside the default sanity bounds.
	if got := stats["applied"].(float64); got != 2 {
		t.Errorf("applied = %v, want 2 (stats: %v)", got, stats)
	}
	if got := stats["unmatched"].(float64); got != 1 {
		t.Errorf("unmatched = %v, want 1", got)
	}
	if got := stats["rejected"].(float64); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := stats["maxDrift"].(float64); got <= 0 {
		t.Errorf("maxDrift = %v, want > 0", got)
	}
}

func TestReplayCmd_OnlyFilter(t *testing.T) {
	grid, results, plan := testInputs(t)
	dir := t.TempDir()
	feed := writeFixture(t, dir, "feed.json", testFeedJSON)
	out := filepath.Join(dir, "summary.json")

	doc := runCLI(t, out, "pyvolt", "replay",
		"-g", grid, "-r", results, "-p", plan,
		"--feed", feed, "--only", "b*", "-o", out)

	stats := doc["stats"].(map[string]any)
	if got := stats["applied"].(float64); got != 1 {
		t.Errorf("applied = %v, want 1", got)
	}
	if got := stats["filtered"].(float64); got != 3 {
		t.Errorf("filtered = %v, want 3", got)
	}
}

func TestReplayCmd_BoundsDisabled(t *testing.T) {
	grid, results, plan := testInputs(t)
	dir := t.TempDir()
	feed := writeFixture(t, dir, "feed.json", testFeedJSON)
	out := filepath.Join(dir, "summary.json")

	doc := runCLI(t, out, "pyvolt", "replay",
		"-g", grid, "-r", results, "-p", plan,
		"--feed", feed, "--bounds=false", "-o", out)

	stats := doc["stats"].(map[string]any)
	if got := stats["rejected"].(float64); got != 0 {
		t.Errorf("rejected = %v, want 0", got)
	}
	if got := stats["applied"].(float64); got != 3 {
		t.Errorf("applied = %v, want 3", got)
	}
}
