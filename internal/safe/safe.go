// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package safe contains utilities for executing caller-provided
// functions on worker goroutines.
package safe

import (
	"fmt"
	"runtime"
	"strings"
)

const captureDepth = 32

// A RecoveredError associates a recovered panic with the stack of the
// goroutine that panicked.
type RecoveredError struct {
	Err   error     // The panic value, or an error formatted from it.
	Stack []uintptr // Program counters, innermost first.
	Value any       // The value passed to panic.
}

// Error implements error. The stack is omitted; see
// [RecoveredError.StackTrace].
func (e *RecoveredError) Error() string {
	return fmt.Sprintf("recovered: %v", e.Err)
}

// StackTrace formats the captured stack, one frame per line.
func (e *RecoveredError) StackTrace() string {
	var sb strings.Builder
	frames := runtime.CallersFrames(e.Stack)
	for {
		frame, more := frames.Next()
		_, _ = fmt.Fprintf(&sb, "%s ( %s:%d )\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// String is for debugging use only.
func (e *RecoveredError) String() string {
	return e.Error() + "\n" + e.StackTrace()
}

// Unwrap returns the enclosed error.
func (e *RecoveredError) Unwrap() error { return e.Err }

// Run executes the function. If the function panics, the panic is
// converted into a [RecoveredError] and any value the function was in
// the process of returning is discarded.
func Run(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rErr, ok := r.(error)
		if !ok {
			rErr = fmt.Errorf("panic: %v", r)
		}
		stack := make([]uintptr, captureDepth)
		stack = stack[:runtime.Callers(2, stack)]
		err = &RecoveredError{
			Err:   rErr,
			Stack: stack,
			Value: r,
		}
	}()
	return fn()
}
