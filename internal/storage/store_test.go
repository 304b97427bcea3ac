package storage

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
)

func runPreset(t *testing.T, name string, modify func(*config.Problem)) *experiment.Report {
	t.Helper()
	p := config.GetPreset(name)
	if modify != nil {
		modify(p)
	}
	report, err := experiment.Run(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	return report
}

func TestSaveLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	report := runPreset(t, "cubic", nil)
	id, err := store.Save(report)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a uuid: %v", id, err)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != id || meta.Problem.Expr != report.Problem.Expr {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Baseline == nil || *meta.Baseline != report.Baseline {
		t.Errorf("baseline %v, want %g", meta.Baseline, report.Baseline)
	}
	if len(meta.Methods) != len(report.Runs) {
		t.Fatalf("expected %d methods, got %d", len(report.Runs), len(meta.Methods))
	}
	for i, m := range meta.Methods {
		run := report.Runs[i]
		if m.Method != run.Method || m.Iterations != run.Result.Iterations || !m.Converged {
			t.Errorf("method %d: %+v vs %+v", i, m, run.Result)
		}
		if m.Root == nil || *m.Root != run.Result.Root {
			t.Errorf("%s: root %v, want %g", m.Method, m.Root, run.Result.Root)
		}
	}
}

func TestLoadTrace(t *testing.T) {
	store := New(t.TempDir())
	report := runPreset(t, "sqrt2", nil)

	id, err := store.Save(report)
	if err != nil {
		t.Fatal(err)
	}
	trace, err := store.LoadTrace(id)
	if err != nil {
		t.Fatal(err)
	}

	var want int
	for _, run := range report.Runs {
		want += len(run.Trace)
	}
	if len(trace) != want {
		t.Fatalf("expected %d rows, got %d", want, len(trace))
	}

	first := report.Runs[0].Trace[0]
	if trace[0].Method != first.Method || trace[0].X != first.X || trace[0].Residual != first.Residual {
		t.Errorf("first row %+v, want %+v", trace[0], first)
	}
	last := report.Runs[len(report.Runs)-1].Trace
	if got := trace[len(trace)-1]; got != last[len(last)-1] {
		t.Errorf("last row %+v, want %+v", got, last[len(last)-1])
	}
}

func TestSaveNonFinite(t *testing.T) {
	store := New(t.TempDir())
	report := runPreset(t, "cosine", func(p *config.Problem) {
		p.Bracket = []float64{2, 3}
		p.Methods = []string{"bisection", "newton"}
	})

	id, err := store.Save(report)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Baseline != nil {
		t.Errorf("expected null baseline, got %g", *meta.Baseline)
	}
	if meta.BaselineSource != experiment.BaselineNone {
		t.Errorf("baseline source %s", meta.BaselineSource)
	}
	if meta.Methods[0].Reason != "no sign change" || meta.Methods[0].AbsError != nil {
		t.Errorf("unexpected bisection summary %+v", meta.Methods[0])
	}
}

func TestSaveFailureRemovesRunDir(t *testing.T) {
	store := New(t.TempDir())
	report := runPreset(t, "cubic", nil)
	inf := math.Inf(1)
	report.Problem.TrueRoot = &inf

	if _, err := store.Save(report); err == nil {
		t.Fatal("expected encode error for an infinite true root")
	}

	entries, err := os.ReadDir(store.baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d entries behind", len(entries))
	}
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no listed runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	older := runPreset(t, "cubic", nil)
	newer := runPreset(t, "sqrt2", nil)
	newer.StartedAt = older.StartedAt.Add(time.Second)

	if _, err := store.Save(older); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(newer); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store.baseDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Problem.Name != "sqrt2" {
		t.Errorf("expected newest first, got %s", runs[0].Problem.Name)
	}
}

func TestLoadNotFound(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := store.LoadTrace("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestNewDefaultDir(t *testing.T) {
	if s := New(""); s.baseDir != DefaultDir {
		t.Errorf("expected %s, got %s", DefaultDir, s.baseDir)
	}
}
