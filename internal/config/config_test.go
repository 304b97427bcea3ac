package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rootlab/internal/roots"
)

func TestDefaultProblem(t *testing.T) {
	p := DefaultProblem()

	if p.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if p.MaxIterations <= 0 {
		t.Error("max iterations should be positive")
	}
	if len(p.Methods) != 3 {
		t.Errorf("expected 3 default methods, got %v", p.Methods)
	}
	if err := p.Validate(); !errors.Is(err, ErrMissingExpr) {
		t.Errorf("default problem has no expr, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("falling")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.X0 != 2 {
		t.Errorf("expected x0 2, got %f", p.X0)
	}
	if p.Seed().Bracket != (roots.Bracket{Low: 0, High: 10}) {
		t.Errorf("unexpected bracket %+v", p.Seed().Bracket)
	}

	p.Bracket[0] = -5
	*p.TrueRoot = 0
	if Presets["falling"].Bracket[0] != 0 || *Presets["falling"].TrueRoot != fallingRoot {
		t.Error("GetPreset should return an independent copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if p := GetPreset("nonexistent"); p != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"cosine", "cubic", "falling", "flat", "sqrt2"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if p.TrueRoot == nil {
			continue
		}
		e, err := p.Objective()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if v := e.Func()(*p.TrueRoot); math.Abs(v) > 1e-12 {
			t.Errorf("%s: f(true_root) = %g", name, v)
		}
	}
}

func TestFallingPresetMatchesModel(t *testing.T) {
	p := GetPreset("falling")
	e, err := p.Objective()
	if err != nil {
		t.Fatal(err)
	}
	model := func(h float64) float64 {
		v := math.Sqrt(2 * 9.81 * h)
		return v*math.Tanh(v/(2*5)*3) - 4
	}
	for _, x := range []float64{0.5, 1, 2, 7.5} {
		if got, want := e.Func()(x), model(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("f(%g) = %g, want %g", x, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Problem)
		want   error
	}{
		{"missing expr", func(p *Problem) { p.Expr = "" }, ErrMissingExpr},
		{"short bracket", func(p *Problem) { p.Bracket = []float64{1} }, ErrBadBracket},
		{"no methods", func(p *Problem) { p.Methods = nil }, ErrNoMethods},
		{"unknown method", func(p *Problem) { p.Methods = []string{"secant"} }, ErrUnknownMethod},
		{"nan true root", func(p *Problem) { p.TrueRoot = ptr(math.NaN()) }, ErrBadTrueRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPreset("cubic")
			tt.modify(p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	p := GetPreset("cubic")
	p.Expr = "x +"
	if err := p.Validate(); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	orig := GetPreset("cubic")
	orig.DerivativeStep = 1e-5

	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Expr != orig.Expr || got.X0 != orig.X0 || got.MaxIterations != orig.MaxIterations {
		t.Errorf("round trip mismatch: %+v vs %+v", got, orig)
	}
	if got.TrueRoot == nil || *got.TrueRoot != *orig.TrueRoot {
		t.Errorf("true_root lost: %v", got.TrueRoot)
	}
	if got.SolverConfig() != orig.SolverConfig() {
		t.Errorf("solver config %+v, want %+v", got.SolverConfig(), orig.SolverConfig())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	doc := "name: partial\nexpr: x - 1\nbracket: [0, 2]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tolerance != DefaultTolerance || got.MaxIterations != DefaultMaxIterations {
		t.Errorf("defaults not applied: %+v", got)
	}
	if len(got.Methods) != 3 {
		t.Errorf("methods = %v", got.Methods)
	}
	if err := got.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
