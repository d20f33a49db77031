// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corun

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultNoopLimit bounds consecutive Noop suspensions within one step.
const DefaultNoopLimit = 1024

// Options holds resolved driver configuration.
// NewDriver calls ResolveOptions to collapse functional options into it.
type Options struct {
	// Clock supplies wall-clock time for Sleep evaluation.
	Clock func() time.Time

	// NoopLimit is the maximum number of consecutive Noop suspensions
	// one step may resolve. Exceeding it faults the instance with ErrRunaway.
	NoopLimit int

	// Executor runs Spawn work.
	Executor Executor

	// Registry records running instances. Share one Registry between
	// drivers to answer IsRunning across parameter types.
	Registry *Registry

	// Logger receives driver events.
	Logger logrus.FieldLogger

	// Metrics, if non-nil, receives driver observations.
	Metrics *Metrics
}

// Option configures a Driver.
type Option func(*Options)

// ResolveOptions applies functional options and fills in defaults.
func ResolveOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.NoopLimit <= 0 {
		o.NoopLimit = DefaultNoopLimit
	}
	if o.Executor == nil {
		o.Executor = Go
	}
	if o.Registry == nil {
		o.Registry = NewRegistry()
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// WithClock sets the clock used for Sleep deadlines.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

// WithNoopLimit sets the runaway bound for Noop chains.
func WithNoopLimit(n int) Option {
	return func(o *Options) {
		o.NoopLimit = n
	}
}

// WithExecutor sets the background Executor.
func WithExecutor(e Executor) Option {
	return func(o *Options) {
		o.Executor = e
	}
}

// WithRegistry shares an existing Registry.
func WithRegistry(r *Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
