package telemetry

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/martinmoraga/pyvolt/pkg/measurement"
	"github.com/martinmoraga/pyvolt/pkg/noise"
	"github.com/martinmoraga/pyvolt/pkg/topology"
	"github.com/martinmoraga/pyvolt/pkg/units"
)

func testSet(t *testing.T) *measurement.Set {
	t.Helper()
	n1 := &topology.Node{UUID: "n1", BaseVoltage: 400, BaseApparentPower: 100}
	n2 := &topology.Node{UUID: "n2", BaseVoltage: 400, BaseApparentPower: 100}
	b1 := &topology.Branch{UUID: "b1", FromNode: "n1", ToNode: "n2", BaseVoltage: 400, BaseApparentPower: 100}

	set := measurement.NewSet()
	create := func(el topology.Element, kind measurement.Kind, ideal float64) {
		t.Helper()
		if _, err := set.Create(el, el.GetKind(), kind, ideal, 1); err != nil {
			t.Fatalf("Create(%s, %v): %v", el.GetUUID(), kind, err)
		}
	}
	create(n1, measurement.KindVmag, 1.02)
	create(n2, measurement.KindVmag, 0.99)
	create(b1, measurement.KindP1, 0.7)

	// Field mode copies ideals into values.
	set.Inject(noise.New(noise.WithMode(noise.ModeField)))
	return set
}

func TestReplayer_Apply(t *testing.T) {
	set := testSet(t)

	tests := []struct {
		name   string
		r      Replayer
		sample Sample
		want   Outcome
	}{
		{
			name:   "applied per-unit",
			r:      Replayer{Set: set, Bounds: DefaultBounds()},
			sample: Sample{Device: "n1", Kind: measurement.KindVmag, Value: 1.05, PerUnit: true},
			want:   OutcomeApplied,
		},
		{
			name:   "applied without bounds",
			r:      Replayer{Set: set},
			sample: Sample{Device: "n1", Kind: measurement.KindVmag, Value: 99, PerUnit: true},
			want:   OutcomeApplied,
		},
		{
			name:   "filtered by device pattern",
			r:      Replayer{Set: set, Only: []string{"n*"}},
			sample: Sample{Device: "b1", Kind: measurement.KindP1, Value: 0.7, PerUnit: true},
			want:   OutcomeFiltered,
		},
		{
			name:   "unmatched unknown kind",
			r:      Replayer{Set: set},
			sample: Sample{Device: "n1", Kind: measurement.Kind(99), Value: 1, PerUnit: true},
			want:   OutcomeUnmatched,
		},
		{
			name:   "unmatched unknown device",
			r:      Replayer{Set: set, Bounds: DefaultBounds()},
			sample: Sample{Device: "ghost", Kind: measurement.KindVmag, Value: 1, PerUnit: true},
			want:   OutcomeUnmatched,
		},
		{
			name:   "rejected per-unit out of range",
			r:      Replayer{Set: set, Bounds: DefaultBounds()},
			sample: Sample{Device: "n1", Kind: measurement.KindVmag, Value: 2.5, PerUnit: true},
			want:   OutcomeRejected,
		},
		{
			name:   "rejected actual converts out of range",
			r:      Replayer{Set: set, Bounds: DefaultBounds()},
			sample: Sample{Device: "n1", Kind: measurement.KindVmag, Value: 2 * 400e3 / math.Sqrt(3)},
			want:   OutcomeRejected,
		},
		{
			name:   "unmatched actual without element",
			r:      Replayer{Set: set, Bounds: DefaultBounds()},
			sample: Sample{Device: "ghost", Kind: measurement.KindVmag, Value: 230},
			want:   OutcomeUnmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Apply(tt.sample); got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReplayer_ApplyActualWritesBothScales(t *testing.T) {
	set := testSet(t)
	r := Replayer{Set: set, Bounds: DefaultBounds()}

	// 242 kV actual on a 400e3/sqrt3 volt base sits near 1.05 per unit.
	if got := r.Apply(Sample{Device: "n1", Kind: measurement.KindVmag, Value: 242e3}); got != OutcomeApplied {
		t.Fatalf("Apply() = %v, want Applied", got)
	}

	m := set.Measurements()[0]
	if m.ValueActual != 242e3 {
		t.Errorf("ValueActual = %v, want 242e3", m.ValueActual)
	}
	wantPU := units.ToPerUnit(units.FamilyVoltage, m.Element, 242e3)
	if m.Value != wantPU {
		t.Errorf("Value = %v, want %v", m.Value, wantPU)
	}
}

func TestReplayer_Replay(t *testing.T) {
	set := testSet(t)
	r := Replayer{Set: set, Bounds: DefaultBounds()}

	samples := []Sample{
		{Device: "n1", Kind: measurement.KindVmag, Value: 1.05, PerUnit: true},
		{Device: "n2", Kind: measurement.KindVmag, Value: 5.0, PerUnit: true},
		{Device: "ghost", Kind: measurement.KindVmag, Value: 1.0, PerUnit: true},
		{Device: "b1", Kind: measurement.KindP1, Value: 0.8, PerUnit: true},
	}

	stats, err := r.Replay(context.Background(), samples)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}

	if stats.Received != 4 {
		t.Errorf("Received = %d, want 4", stats.Received)
	}
	if stats.Applied != 2 {
		t.Errorf("Applied = %d, want 2", stats.Applied)
	}
	if stats.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", stats.Rejected)
	}
	if stats.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", stats.Unmatched)
	}
	if stats.Filtered != 0 {
		t.Errorf("Filtered = %d, want 0", stats.Filtered)
	}

	// Largest slot change: P1 moved 0.7 -> 0.8.
	if math.Abs(stats.MaxDrift-0.1) > 1e-9 {
		t.Errorf("MaxDrift = %v, want 0.1", stats.MaxDrift)
	}
}

func TestReplayer_ReplayOnly(t *testing.T) {
	set := testSet(t)
	r := Replayer{Set: set, Only: []string{"n*"}}

	samples := []Sample{
		{Device: "n1", Kind: measurement.KindVmag, Value: 1.01, PerUnit: true},
		{Device: "b1", Kind: measurement.KindP1, Value: 0.9, PerUnit: true},
	}
	stats, err := r.Replay(context.Background(), samples)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if stats.Applied != 1 || stats.Filtered != 1 {
		t.Errorf("stats = %+v, want 1 applied and 1 filtered", stats)
	}
}

func TestReplayer_ReplayPaced(t *testing.T) {
	set := testSet(t)
	r := Replayer{
		Set:     set,
		Limiter: rate.NewLimiter(rate.Every(time.Microsecond), 1),
	}

	samples := []Sample{
		{Device: "n1", Kind: measurement.KindVmag, Value: 1.01, PerUnit: true},
		{Device: "n2", Kind: measurement.KindVmag, Value: 1.0, PerUnit: true},
	}
	stats, err := r.Replay(context.Background(), samples)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if stats.Applied != 2 {
		t.Errorf("Applied = %d, want 2", stats.Applied)
	}
}

func TestReplayer_ReplayCanceled(t *testing.T) {
	set := testSet(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Replayer{Set: set}
	stats, err := r.Replay(ctx, []Sample{
		{Device: "n1", Kind: measurement.KindVmag, Value: 1.01, PerUnit: true},
	})
	if err == nil {
		t.Fatal("Replay() with canceled context should fail")
	}
	if stats.Received != 0 {
		t.Errorf("Received = %d, want 0", stats.Received)
	}
}

func TestReplayer_ReplayDeadlineExceeded(t *testing.T) {
	set := testSet(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Burst covers the first sample; the second would wait an hour.
	r := Replayer{
		Set:     set,
		Limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
	}
	stats, err := r.Replay(ctx, []Sample{
		{Device: "n1", Kind: measurement.KindVmag, Value: 1.01, PerUnit: true},
		{Device: "n2", Kind: measurement.KindVmag, Value: 1.0, PerUnit: true},
	})
	if err == nil {
		t.Fatal("Replay() past the deadline should fail")
	}
	if stats.Received != 1 {
		t.Errorf("Received = %d, want 1", stats.Received)
	}
}

func TestLoadFeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.json")
	doc := `{"samples":[
		{"device":"n1","kind":"Vmag","value":1.01,"perUnit":true,"at":"2026-08-22T10:00:00Z"},
		{"device":"b1","kind":"P1","value":0.75,"perUnit":true}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}

	feed, err := LoadFeed(path)
	if err != nil {
		t.Fatalf("LoadFeed() error = %v", err)
	}
	if feed.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", feed.Len())
	}
	if feed.Samples[0].Kind != measurement.KindVmag {
		t.Errorf("sample kind = %v, want Vmag", feed.Samples[0].Kind)
	}
	if feed.Samples[0].At.IsZero() {
		t.Error("sample timestamp not parsed")
	}
}

func TestLoadFeedUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.json")
	doc := `{"samples":[{"device":"n1","kind":"Frequency","value":50}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	if _, err := LoadFeed(path); err == nil {
		t.Fatal("LoadFeed() with unknown kind should fail")
	}
}

func TestBounds(t *testing.T) {
	b := DefaultBounds()

	tests := []struct {
		family units.Family
		v      float64
		want   bool
	}{
		{units.FamilyVoltage, 1.0, true},
		{units.FamilyVoltage, 0.5, true},
		{units.FamilyVoltage, 1.5, true},
		{units.FamilyVoltage, 0.49, false},
		{units.FamilyVoltage, 1.51, false},
		{units.FamilyCurrent, -0.1, false},
		{units.FamilyCurrent, 9.9, true},
		{units.FamilyPower, -10, true},
		{units.FamilyPower, 10.5, false},
		{units.FamilyPhase, math.Pi, true},
		{units.FamilyPhase, 7, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.family, tt.v); got != tt.want {
			t.Errorf("Contains(%s, %v) = %v, want %v", tt.family, tt.v, got, tt.want)
		}
	}

	var empty Bounds
	if !empty.Contains(units.FamilyVoltage, 1e9) {
		t.Error("empty bounds should pass everything")
	}
	if !b.Contains(units.Family("frequency"), 50) {
		t.Error("unconfigured family should pass")
	}
}
