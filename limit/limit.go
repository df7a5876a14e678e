// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package limit provides [parallel.Middleware] to impose execution
// limits on workers.
//
// A single Middleware value may be shared by many concurrent calls to
// [parallel.Compute], in which case the limit applies to their workers
// collectively. Attach the Middlewares using [parallel.WithMiddleware].
package limit

import (
	"context"
	"errors"
	"runtime/trace"

	"golang.org/x/time/rate"
	"vawter.tech/parallel"
)

// WithMaxConcurrency limits the total number of workers that may
// execute at once by blocking workers until a slot is available. This
// is useful when several independent calls to [parallel.Compute] would
// otherwise oversubscribe the available CPUs.
func WithMaxConcurrency(limit int) parallel.Middleware {
	if limit <= 0 {
		panic(errors.New("limit must be greater than zero"))
	}
	ch := make(chan struct{}, limit)
	return func(next parallel.Invoker) parallel.Invoker {
		return func(ctx context.Context, c parallel.Chunk, task parallel.Task) error {
			// Fast-path: A concurrency slot is available.
			select {
			case ch <- struct{}{}:
			default:
				region := trace.StartRegion(ctx, "concurrency wait")
				ch <- struct{}{}
				region.End()
			}
			defer func() { <-ch }()
			return next(ctx, c, task)
		}
	}
}

// WithMaxRate is a wrapper around a [rate.Limiter] that paces the start
// of workers to r per second, with bursts of up to b workers. A burst
// of less than one causes every worker to fail.
func WithMaxRate(r float64, b int) parallel.Middleware {
	l := rate.NewLimiter(rate.Limit(r), b)
	return func(next parallel.Invoker) parallel.Invoker {
		return func(ctx context.Context, c parallel.Chunk, task parallel.Task) error {
			// Fast-path: there's capacity.
			if !l.Allow() {
				region := trace.StartRegion(ctx, "rate limit wait")
				err := l.Wait(ctx)
				region.End()
				if err != nil {
					return err
				}
			}
			return next(ctx, c, task)
		}
	}
}
