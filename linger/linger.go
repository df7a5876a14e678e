// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package linger contains a utility for reporting workers that are
// still running, and where they were executing when they started.
//
// It is primarily useful in tests, to ensure that no worker outlives
// the call to [parallel.Compute] that started it, including workers
// held up by other [parallel.Middleware].
package linger

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"vawter.tech/parallel"
)

// This value is sensitive to the code structure.
const callersOffset = 2

// NewRecorder constructs a [Recorder] that samples the worker's call
// stack at the requested depth when the worker starts.
func NewRecorder(depth int) *Recorder {
	return &Recorder{depth: depth}
}

// A Recorder is attached to calls using [parallel.WithMiddleware] and
// tracks the workers that are currently executing.
type Recorder struct {
	counter atomic.Uintptr
	data    sync.Map // uintptr -> *active
	depth   int
}

type active struct {
	chunk parallel.Chunk
	stack []uintptr
}

// Callers returns a snapshot of the stacks sampled for any workers that
// are currently running.
func (r *Recorder) Callers() [][]uintptr {
	var ret [][]uintptr
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.(*active).stack)
		return true
	})
	return ret
}

// Chunks returns a snapshot of the chunks being processed by workers
// that are currently running.
func (r *Recorder) Chunks() []parallel.Chunk {
	var ret []parallel.Chunk
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.(*active).chunk)
		return true
	})
	return ret
}

// Middleware is a [parallel.Middleware] that records each worker for
// the duration of its execution.
func (r *Recorder) Middleware(next parallel.Invoker) parallel.Invoker {
	return func(ctx context.Context, c parallel.Chunk, task parallel.Task) error {
		pc := make([]uintptr, r.depth)
		pc = pc[:runtime.Callers(callersOffset, pc)]

		id := r.counter.Add(1)
		r.data.Store(id, &active{chunk: c, stack: pc})
		defer r.data.Delete(id)

		return next(ctx, c, task)
	}
}

// CheckClean will record a test error if there are any active workers
// being tracked by the Recorder. A snapshot of the stack where each
// worker started is written into the test log.
func CheckClean(t TestingT, r *Recorder) {
	var stuck []*active
	r.data.Range(func(_, value any) bool {
		stuck = append(stuck, value.(*active))
		return true
	})
	if len(stuck) == 0 {
		return
	}

	// Improve error messages if we're being called from a real test.
	if x, ok := t.(interface{ Helper() }); ok {
		x.Helper()
	}

	t.Errorf("lingering workers detected")
	for _, a := range stuck {
		t.Errorf("  stuck worker for %s started at:", a.chunk)
		frames := runtime.CallersFrames(a.stack)
		for {
			frame, more := frames.Next()
			t.Errorf("    %s ( %s:%d )", frame.Function, frame.File, frame.Line)
			if !more {
				break
			}
		}
	}
}

// TestingT is the subset of [testing.TB] needed by [CheckClean].
type TestingT interface {
	Errorf(string, ...any)
}
