package logging

import (
	"github.com/rs/zerolog"

	"github.com/san-kum/rootlab/internal/roots"
)

// Observer logs every solver iteration as a debug event.
type Observer struct {
	logger zerolog.Logger
}

func NewObserver(logger zerolog.Logger) *Observer {
	return &Observer{logger: logger}
}

func (o *Observer) OnIterate(s roots.IterationState) {
	e := o.logger.Debug()
	if !e.Enabled() {
		return
	}
	e = e.Str("method", s.Method).
		Int("iteration", s.Iteration).
		Float64("x", s.X).
		Float64("residual", s.Residual)
	if s.Low != 0 || s.High != 0 {
		e = e.Float64("low", s.Low).Float64("high", s.High)
	}
	e.Msg("iterate")
}

// LogResult writes a one-line summary of a solve: info when it converged,
// warn otherwise.
func LogResult(logger zerolog.Logger, r roots.Result) {
	var e *zerolog.Event
	if r.Converged {
		e = logger.Info()
	} else {
		e = logger.Warn().Str("reason", r.Reason.String())
	}
	e.Str("method", r.Method).
		Bool("converged", r.Converged).
		Float64("root", r.Root).
		Float64("residual", r.Residual).
		Int("iterations", r.Iterations).
		Int("evaluations", r.Evaluations).
		Msg("solve finished")
}

type multi []roots.Observer

func (m multi) OnIterate(s roots.IterationState) {
	for _, o := range m {
		o.OnIterate(s)
	}
}

// Multi fans each iteration out to every non-nil observer.
func Multi(observers ...roots.Observer) roots.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
