package roots

import (
	"math"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		truth   float64
		wantAbs float64
		wantRel float64
	}{
		{
			name:    "converged",
			result:  Result{Method: "bisection", Converged: true, Root: 1.01, Iterations: 7, Evaluations: 9},
			truth:   1,
			wantAbs: 0.01,
			wantRel: 0.01,
		},
		{
			name:    "negative root",
			result:  Result{Method: "newton", Converged: true, Root: -2.2},
			truth:   -2,
			wantAbs: 0.2,
			wantRel: 0.1,
		},
		{
			name:    "zero true root falls back to absolute",
			result:  Result{Method: "reference", Converged: true, Root: 1e-8},
			truth:   0,
			wantAbs: 1e-8,
			wantRel: 1e-8,
		},
		{
			name:    "failed result measures last estimate",
			result:  Result{Method: "newton", Reason: DidNotConverge, Root: 3},
			truth:   1,
			wantAbs: 2,
			wantRel: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(tt.result, tt.truth)
			if math.Abs(c.AbsError-tt.wantAbs) > 1e-12 {
				t.Errorf("AbsError = %g, want %g", c.AbsError, tt.wantAbs)
			}
			if math.Abs(c.RelError-tt.wantRel) > 1e-12 {
				t.Errorf("RelError = %g, want %g", c.RelError, tt.wantRel)
			}
			if c.Method != tt.result.Method || c.Converged != tt.result.Converged || c.Reason != tt.result.Reason {
				t.Errorf("comparison lost result identity: %+v", c)
			}
			if c.Iterations != tt.result.Iterations || c.Evaluations != tt.result.Evaluations {
				t.Errorf("comparison lost cost: %+v", c)
			}
		})
	}
}

func TestComparisonAgrees(t *testing.T) {
	a := Comparison{Converged: true, Root: 1.0000000001}
	b := Comparison{Converged: true, Root: 1.0000000002}
	far := Comparison{Converged: true, Root: 1.1}
	failed := Comparison{Converged: false, Root: 1.0000000001}

	if !a.Agrees(b, 1e-9) {
		t.Error("expected close roots to agree")
	}
	if a.Agrees(far, 1e-9) {
		t.Error("expected distant roots to disagree")
	}
	if a.Agrees(failed, 1e-9) {
		t.Error("a failed result never agrees")
	}
}

func TestFailureKindString(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{None, "none"},
		{NoSignChange, "no sign change"},
		{ZeroDerivative, "zero derivative"},
		{DidNotConverge, "did not converge"},
		{NumericalInstability, "numerical instability"},
		{FailureKind(42), "FailureKind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResultErr(t *testing.T) {
	ok := Result{Method: "bisection", Converged: true, Root: 1}
	if ok.Err() != nil {
		t.Errorf("converged result should have nil Err, got %v", ok.Err())
	}

	bad := Result{Method: "reference", Reason: DidNotConverge, Root: 0.5}
	want := "reference: did not converge (last estimate 0.5)"
	if bad.Err() == nil || bad.Err().Error() != want {
		t.Errorf("Err() = %v, want %q", bad.Err(), want)
	}
}
