// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
)

// A Task computes the results for a single [Chunk]. A Task may be
// executed at most once.
type Task func() error

// An Invoker executes a worker's Task. The context carries the
// [runtime/trace.Task] for the call and is never canceled.
type Invoker func(ctx context.Context, chunk Chunk, task Task) error

// A Middleware decorates the execution of every worker. Middleware is
// attached with [WithMiddleware] and is applied in declaration order,
// so that the first Middleware is the outermost.
//
// An Invoker returned by a Middleware must either execute the task
// synchronously, before returning, or return an error. A worker whose
// Invoker returns nil without running the task fails with [ErrNotRun].
type Middleware func(next Invoker) Invoker

var errTaskReused = errors.New("task executed more than once")

// InvokerCall simply executes the task.
func InvokerCall(_ context.Context, _ Chunk, task Task) error { return task() }

// buildInvoker composes the middleware from the bottom up.
func buildInvoker(mw []Middleware) Invoker {
	chain := Invoker(InvokerCall)
	for i := len(mw) - 1; i >= 0; i-- {
		chain = mw[i](chain)
	}
	return chain
}
