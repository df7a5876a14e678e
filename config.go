// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultName is used for tracing, logging, and metrics if [WithName]
// is not specified.
const DefaultName = "parallel.Compute"

// An Option configures a single call to [Compute] or [ComputeErr].
type Option func(*config)

type config struct {
	inlineThreshold int
	logger          *zerolog.Logger
	meter           metric.Meter
	mw              []Middleware
	name            string
	observers       []func(*ChunkInfo)
	threads         int
}

// newConfig applies the options and fills in defaults. The thread
// count is resolved here so that it reflects the environment at call
// time.
func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Sanitize()
	return cfg
}

// Sanitize replaces unset or out-of-range values with defaults.
func (c *config) Sanitize() {
	if c.inlineThreshold < 0 {
		c.inlineThreshold = 0
	}
	if c.logger == nil {
		nop := zerolog.Nop()
		c.logger = &nop
	}
	if c.meter == nil {
		c.meter = noop.NewMeterProvider().Meter(DefaultName)
	}
	if c.name == "" {
		c.name = DefaultName
	}
	if c.threads <= 0 {
		c.threads = DefaultThreadCount()
	}
}

// WithChunkObserver registers a callback that receives a [ChunkInfo]
// once each worker has reached a terminal state. Observers are called
// from worker goroutines and must be safe for concurrent use. This
// option may be repeated.
func WithChunkObserver(fn func(*ChunkInfo)) Option {
	return func(c *config) {
		c.observers = append(c.observers, fn)
	}
}

// WithInlineThreshold causes inputs with fewer than n elements to be
// transformed on the calling goroutine as a single chunk, avoiding the
// cost of starting workers for trivially small inputs. The default of
// zero disables inline execution.
func WithInlineThreshold(n int) Option {
	return func(c *config) {
		c.inlineThreshold = n
	}
}

// WithLogger attaches a structured logger. Dispatch decisions and
// per-chunk completions are logged at debug level and failures at warn
// level. No logging is performed by default.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &l
	}
}

// WithMeter records call, element, failure, and chunk-duration
// measurements on the meter. See [MetricCalls] and related constants
// for instrument names.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// WithMiddleware appends [Middleware] to decorate worker execution.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *config) {
		c.mw = append(c.mw, mw...)
	}
}

// WithName sets the name reported to [runtime/trace], logs, metrics,
// and [ChunkInfo].
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithThreadCount overrides the number of workers, which otherwise
// defaults to [DefaultThreadCount]. A non-positive value selects the
// default. The number of workers never exceeds the number of input
// elements.
func WithThreadCount(n int) Option {
	return func(c *config) {
		c.threads = n
	}
}
