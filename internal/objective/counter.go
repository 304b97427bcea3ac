package objective

import (
	"sync/atomic"

	"github.com/san-kum/rootlab/internal/roots"
)

// Counter wraps a roots.Func and counts its evaluations.
type Counter struct {
	f     roots.Func
	calls atomic.Int64
}

func NewCounter(f roots.Func) *Counter {
	return &Counter{f: f}
}

func (c *Counter) Func() roots.Func {
	return func(x float64) float64 {
		c.calls.Add(1)
		return c.f(x)
	}
}

func (c *Counter) Calls() int64 { return c.calls.Load() }

func (c *Counter) Reset() { c.calls.Store(0) }
