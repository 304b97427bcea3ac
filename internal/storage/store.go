package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/roots"
)

// DefaultDir is the run store used when none is configured.
const DefaultDir = ".rootlab"

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	if baseDir == "" {
		baseDir = DefaultDir
	}
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// MethodSummary is a solver outcome as persisted. Non-finite numbers are
// stored as null.
type MethodSummary struct {
	Method      string   `json:"method"`
	Converged   bool     `json:"converged"`
	Reason      string   `json:"reason"`
	Root        *float64 `json:"root"`
	Residual    *float64 `json:"residual"`
	AbsError    *float64 `json:"abs_error"`
	RelError    *float64 `json:"rel_error"`
	Iterations  int      `json:"iterations"`
	Evaluations int      `json:"evaluations"`
	ElapsedNS   int64    `json:"elapsed_ns"`
}

type RunMetadata struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Problem        config.Problem  `json:"problem"`
	Baseline       *float64        `json:"baseline"`
	BaselineSource string          `json:"baseline_source"`
	Methods        []MethodSummary `json:"methods"`
}

// Save persists report under a fresh run id and returns the id. A failed
// save leaves no run directory behind.
func (s *Store) Save(report *experiment.Report) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      report.StartedAt,
		Problem:        *report.Problem,
		Baseline:       finite(report.Baseline),
		BaselineSource: report.BaselineSource,
		Methods:        make([]MethodSummary, 0, len(report.Runs)),
	}
	for _, run := range report.Runs {
		meta.Methods = append(meta.Methods, summarize(run))
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), report); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func summarize(run experiment.MethodRun) MethodSummary {
	return MethodSummary{
		Method:      run.Method,
		Converged:   run.Result.Converged,
		Reason:      run.Result.Reason.String(),
		Root:        finite(run.Result.Root),
		Residual:    finite(run.Result.Residual),
		AbsError:    finite(run.Comparison.AbsError),
		RelError:    finite(run.Comparison.RelError),
		Iterations:  run.Result.Iterations,
		Evaluations: run.Result.Evaluations,
		ElapsedNS:   run.Elapsed.Nanoseconds(),
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("storage: encode %s: %w", path, err)
	}
	return f.Close()
}

func writeTrace(path string, report *experiment.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := NewRecorder(f)
	if err != nil {
		return err
	}
	for _, run := range report.Runs {
		for _, st := range run.Trace {
			rec.OnIterate(st)
		}
	}
	if err := rec.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", metaPath, err)
	}

	return &meta, nil
}

// LoadTrace reads a run's iteration trace back in the order it was saved.
func (s *Store) LoadTrace(runID string) ([]roots.IterationState, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadTrace(file)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
