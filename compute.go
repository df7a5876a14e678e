// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"runtime/trace"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"
	"vawter.tech/parallel/internal/safe"
)

// Compute applies fn to every element of items using concurrent workers
// and returns the results in input order. That is, the Nth output is
// the result of applying fn to the Nth input, regardless of which
// worker computed it or when that worker finished.
//
// If fn panics, Compute returns a [*TransformError] wrapping a
// [*RecoveredError] and no results. See [ComputeErr] for details.
func Compute[T, U any](items []T, fn func(T) U, opts ...Option) ([]U, error) {
	return ComputeErr(items, Infallible(fn), opts...)
}

// ComputeErr applies a fallible function to every element of items using
// concurrent workers and returns the results in input order.
//
// The input is divided by [Partition] into one contiguous chunk per
// worker. Each worker applies fn to the elements of its chunk in
// ascending order and stops at the first error or panic. ComputeErr
// always waits for every worker to finish. If any worker failed, the
// failure from the lowest-numbered chunk is returned, so the reported
// error does not depend on scheduling. Failures of fn are reported as
// [*TransformError] and failures of [Middleware] as [*ChunkError]. No
// partial results are returned alongside an error.
//
// The items slice is shared, read-only, by all workers and must not be
// modified until ComputeErr returns. The function fn is called exactly
// once per element from multiple goroutines and must be safe for
// concurrent use. An empty input returns an empty slice without calling
// fn or starting any goroutines.
func ComputeErr[T, U any](items []T, fn func(T) (U, error), opts ...Option) ([]U, error) {
	if len(items) == 0 {
		return []U{}, nil
	}
	d := newDispatcher(newConfig(opts))
	defer d.task.End()

	inline := len(items) < d.cfg.inlineThreshold
	threads := d.cfg.threads
	if inline {
		threads = 1
	}
	chunks := Partition(len(items), threads)
	d.metrics.RecordCall(d.ctx)
	d.log.Debug().
		Int("items", len(items)).
		Int("threads", threads).
		Int("chunks", len(chunks)).
		Bool("inline", inline).
		Msg("dispatching")

	// Each worker owns one slot in these slices.
	buffers := make([][]U, len(chunks))
	errs := make([]error, len(chunks))
	work := func(c Chunk) error {
		buffers[c.Index], errs[c.Index] = runChunk(d, items, fn, c)
		return errs[c.Index]
	}

	var failed bool
	if inline {
		failed = work(chunks[0]) != nil
	} else {
		var g errgroup.Group
		for _, c := range chunks {
			g.Go(func() error { return work(c) })
		}
		failed = g.Wait() != nil
	}

	if failed {
		// The error from Wait is whichever worker failed first in
		// wall-clock time; report the lowest chunk instead.
		err := firstError(errs)
		d.metrics.RecordFailure(d.ctx)
		evt := d.log.Warn().Err(err)
		var tErr *TransformError
		if errors.As(err, &tErr) {
			evt = evt.Int("chunk", tErr.Chunk.Index).Int("index", tErr.Index)
		}
		evt.Msg("compute failed")
		return nil, err
	}
	return slices.Concat(buffers...), nil
}

// dispatcher holds the per-call state shared by all workers.
type dispatcher struct {
	cfg     *config
	ctx     context.Context
	invoke  Invoker
	log     zerolog.Logger
	metrics *metrics
	task    *trace.Task
}

func newDispatcher(cfg *config) *dispatcher {
	ctx, task := trace.NewTask(context.Background(), cfg.name)
	log := cfg.logger.With().
		Str("component", "parallel").
		Str("name", cfg.name).
		Logger()

	m, err := newMetrics(cfg.meter, cfg.name)
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled")
		m, _ = newMetrics(noop.NewMeterProvider().Meter(cfg.name), cfg.name)
	}

	return &dispatcher{
		cfg:     cfg,
		ctx:     ctx,
		invoke:  buildInvoker(cfg.mw),
		log:     log,
		metrics: m,
		task:    task,
	}
}

// runChunk transforms the elements of a single chunk into a private
// buffer. It stops at the first failure. Panics from fn and from
// Middleware are recovered, but panics from chunk observers are not.
func runChunk[T, U any](d *dispatcher, items []T, fn func(T) (U, error), c Chunk) ([]U, error) {
	defer trace.StartRegion(d.ctx, "chunk").End()

	info := &ChunkInfo{
		Chunk:   c,
		Name:    d.cfg.name,
		Started: time.Now(),
	}

	var buf []U
	var ran bool
	var taskErr error
	cursor := c.Start
	task := func() error {
		if ran {
			return errTaskReused
		}
		ran = true
		buf = make([]U, c.Len())
		taskErr = safe.Run(func() error {
			for ; cursor < c.End; cursor++ {
				v, err := fn(items[cursor])
				if err != nil {
					return err
				}
				buf[cursor-c.Start] = v
			}
			return nil
		})
		return taskErr
	}

	err := safe.Run(func() error { return d.invoke(d.ctx, c, task) })
	switch {
	case taskErr != nil:
		// Report the transformation failure even if a Middleware
		// replaced or discarded it.
		err = &TransformError{Chunk: c, Err: taskErr, Index: cursor}
	case err != nil:
		err = &ChunkError{Chunk: c, Err: err}
	case !ran:
		err = &ChunkError{Chunk: c, Err: ErrNotRun}
	}

	info.Elapsed = time.Since(info.Started)
	info.Err = err
	info.Processed = cursor - c.Start
	d.finish(info)

	if err != nil {
		return nil, err
	}
	return buf, nil
}

// finish reports a terminal chunk to metrics, logs, and observers.
func (d *dispatcher) finish(info *ChunkInfo) {
	d.metrics.RecordChunk(d.ctx, info.Processed, info.Elapsed)
	if info.Err != nil {
		d.log.Debug().
			Int("chunk", info.Chunk.Index).
			Err(info.Err).
			Msg("chunk failed")
	} else {
		d.log.Debug().
			Int("chunk", info.Chunk.Index).
			Int("start", info.Chunk.Start).
			Int("end", info.Chunk.End).
			Int64("duration_ms", info.Elapsed.Milliseconds()).
			Msg("chunk complete")
	}
	for _, fn := range d.cfg.observers {
		fn(info)
	}
}

// firstError returns the error associated with the lowest chunk index.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
