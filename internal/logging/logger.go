// Package logging builds the zerolog loggers used by the CLI and adapts them
// to the solver Observer hook.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type options struct {
	pretty    bool
	component string
}

type Option func(*options)

// Pretty switches from JSON lines to zerolog's human-readable console format.
func Pretty() Option {
	return func(o *options) { o.pretty = true }
}

// Component tags every event with a component field.
func Component(name string) Option {
	return func(o *options) { o.component = name }
}

// New returns a logger writing to w at level.
func New(w io.Writer, level zerolog.Level, opts ...Option) zerolog.Logger {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	out := w
	if o.pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if o.component != "" {
		ctx = ctx.Str("component", o.component)
	}
	return ctx.Logger()
}

// ParseLevel accepts zerolog level names ("debug", "info", ...).
func ParseLevel(s string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}
