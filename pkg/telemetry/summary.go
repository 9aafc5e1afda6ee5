package telemetry

import (
	"github.com/martinmoraga/pyvolt/pkg/header"
)

// Summary is the document a replay run emits: where the samples came from
// and what happened to them.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	// FeedSource is the path/URI of the replayed feed.
	FeedSource string `json:"feedSource" yaml:"feedSource"`

	// Measurements is the size of the set the feed replayed into.
	Measurements int `json:"measurements" yaml:"measurements"`

	// Stats are the replay counters.
	Stats Stats `json:"stats" yaml:"stats"`
}

// NewSummary assembles the replay-summary document.
func NewSummary(stats Stats, feedSource string, measurements int, version string) *Summary {
	s := &Summary{
		FeedSource:   feedSource,
		Measurements: measurements,
		Stats:        stats,
	}
	s.Init(header.KindReplaySummary, header.FullAPIVersion, version)
	return s
}
