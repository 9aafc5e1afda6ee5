package powerflow

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/martinmoraga/pyvolt/pkg/errors"
)

var _ Provider = (*Results)(nil)

func testResults() *Results {
	return &Results{
		Nodes: []*NodeResult{
			{UUID: "n1", Voltage: Phasor{Re: 1.02, Im: -0.05}, Power: Phasor{Re: 0.5, Im: 0.1}},
			{UUID: "n2", Voltage: Phasor{Re: 0.98, Im: 0.01}},
		},
		Branches: []*BranchResult{
			{UUID: "b1", Current: Phasor{Re: 0.9, Im: 0.2}, Power: Phasor{Re: 0.3, Im: 0.05}, Power2: Phasor{Re: -0.29, Im: -0.04}},
		},
	}
}

func TestPhasor(t *testing.T) {
	p := Phasor{Re: 3, Im: 4}

	if got := p.Magnitude(); got != 5 {
		t.Errorf("Magnitude() = %v, want 5", got)
	}
	if got, want := p.Angle(), math.Atan2(4, 3); got != want {
		t.Errorf("Angle() = %v, want %v", got, want)
	}
	if got := p.Complex(); real(got) != 3 || imag(got) != 4 {
		t.Errorf("Complex() = %v, want (3+4i)", got)
	}

	zero := Phasor{}
	if zero.Magnitude() != 0 || zero.Angle() != 0 {
		t.Error("zero phasor must have zero magnitude and angle")
	}

	neg := Phasor{Re: -1, Im: 0}
	if got := neg.Angle(); got != math.Pi {
		t.Errorf("Angle(-1+0i) = %v, want pi", got)
	}
}

func TestResultsInit(t *testing.T) {
	r := testResults()
	if err := r.Init(); err != nil {
		t.Fatalf("Init(): %v", err)
	}

	tests := []struct {
		name string
		r    *Results
	}{
		{"node without uuid", &Results{Nodes: []*NodeResult{{}}}},
		{"branch without uuid", &Results{Branches: []*BranchResult{{}}}},
		{"duplicate node uuid", &Results{Nodes: []*NodeResult{{UUID: "x"}, {UUID: "x"}}}},
		{"duplicate branch uuid", &Results{Branches: []*BranchResult{{UUID: "x"}, {UUID: "x"}}}},
		{"uuid shared across kinds", &Results{
			Nodes:    []*NodeResult{{UUID: "x"}},
			Branches: []*BranchResult{{UUID: "x"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Init()
			if err == nil {
				t.Fatal("Init() succeeded, want error")
			}
			if !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("Init() error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidArgument)
			}
		})
	}
}

func TestResultsLookups(t *testing.T) {
	r := testResults()
	if err := r.Init(); err != nil {
		t.Fatalf("Init(): %v", err)
	}

	n, err := r.Node("n1")
	if err != nil {
		t.Fatalf("Node(n1): %v", err)
	}
	if n.Voltage.Re != 1.02 {
		t.Errorf("Node(n1).Voltage.Re = %v, want 1.02", n.Voltage.Re)
	}

	b, err := r.Branch("b1")
	if err != nil {
		t.Fatalf("Branch(b1): %v", err)
	}
	if b.Power2.Re != -0.29 {
		t.Errorf("Branch(b1).Power2.Re = %v, want -0.29", b.Power2.Re)
	}

	if _, err := r.Node("n9"); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Node(n9) error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeNotFound)
	}
	if _, err := r.Node("b1"); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Error("Node() must not find a branch uuid")
	}
	if _, err := r.Branch("n1"); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Error("Branch() must not find a node uuid")
	}

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestLoadJSON(t *testing.T) {
	doc := `{
		"nodes": [
			{"uuid": "n1", "voltage": {"re": 1.02, "im": -0.05}, "power": {"re": 0.5, "im": 0.1}}
		],
		"branches": [
			{"uuid": "b1", "current": {"re": 0.9, "im": 0.2}, "power": {"re": 0.3, "im": 0.05}, "power2": {"re": -0.29, "im": -0.04}}
		]
	}`
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	n, err := r.Node("n1")
	if err != nil {
		t.Fatalf("Node(n1): %v", err)
	}
	if n.Voltage.Im != -0.05 {
		t.Errorf("Voltage.Im = %v, want -0.05", n.Voltage.Im)
	}
	if _, err := r.Branch("b1"); err != nil {
		t.Errorf("Branch(b1): %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `nodes:
  - uuid: n1
    voltage:
      re: 1.02
      im: -0.05
    power:
      re: 0.5
      im: 0.1
`
	path := filepath.Join(t.TempDir(), "results.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	n, err := r.Node("n1")
	if err != nil {
		t.Fatalf("Node(n1): %v", err)
	}
	if n.Power.Re != 0.5 {
		t.Errorf("Power.Re = %v, want 0.5", n.Power.Re)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of a missing file must fail")
	}

	dup := `{"nodes": [{"uuid": "x"}, {"uuid": "x"}]}`
	path := filepath.Join(t.TempDir(), "dup.json")
	if err := os.WriteFile(path, []byte(dup), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.IsCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Load() duplicate uuid error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidArgument)
	}
}
