package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/san-kum/rootlab/internal/roots"
)

var traceHeader = []string{"method", "iteration", "x", "previous", "residual", "low", "high"}

// Recorder streams iterations as CSV rows. It is safe for concurrent use,
// so one Recorder can observe several solvers running in parallel.
type Recorder struct {
	mu   sync.Mutex
	w    *csv.Writer
	rows int
	err  error
}

// NewRecorder writes the header to w and returns a Recorder appending to it.
func NewRecorder(w io.Writer) (*Recorder, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return nil, err
	}
	return &Recorder{w: cw}, nil
}

func (r *Recorder) OnIterate(s roots.IterationState) {
	row := []string{
		s.Method,
		strconv.Itoa(s.Iteration),
		formatFloat(s.X),
		formatFloat(s.Previous),
		formatFloat(s.Residual),
		formatFloat(s.Low),
		formatFloat(s.High),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if err := r.w.Write(row); err != nil {
		r.err = err
		return
	}
	r.rows++
}

// Rows returns the number of iterations recorded so far.
func (r *Recorder) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// Flush flushes buffered rows and reports the first write error, if any.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.w.Flush()
	return r.w.Error()
}

// ReadTrace parses rows written by a Recorder.
func ReadTrace(rd io.Reader) ([]roots.IterationState, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []roots.IterationState{}, nil
	}

	out := make([]roots.IterationState, 0, len(records)-1)
	for i, rec := range records[1:] {
		it, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("storage: trace row %d: %w", i+1, err)
		}
		vals := make([]float64, 5)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+2], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: trace row %d: %w", i+1, err)
			}
		}
		out = append(out, roots.IterationState{
			Method:    rec[0],
			Iteration: it,
			X:         vals[0],
			Previous:  vals[1],
			Residual:  vals[2],
			Low:       vals[3],
			High:      vals[4],
		})
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
