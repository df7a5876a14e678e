// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"errors"
	"fmt"

	"vawter.tech/parallel/internal/safe"
)

// ErrNotRun is wrapped in a [ChunkError] when a [Middleware] returns
// without executing the worker's [Task].
var ErrNotRun = errors.New("chunk was not executed")

// A RecoveredError will be wrapped by a [TransformError] when the
// transformation function panics. The panic value is available from
// the Value field and the goroutine stack from the Stack field.
type RecoveredError = safe.RecoveredError

// A TransformError reports that the transformation function failed,
// either by returning an error or by panicking, while processing the
// input element at Index.
type TransformError struct {
	Chunk Chunk // The chunk being processed by the failed worker.
	Err   error // The returned error or a *RecoveredError.
	Index int   // Input index of the failed element.
}

// Error implements error.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed at index %d: %v", e.Index, e.Err)
}

// Unwrap returns the enclosed error.
func (e *TransformError) Unwrap() error { return e.Err }

// A ChunkError reports that a worker failed outside of the
// transformation function, e.g. in a [Middleware].
type ChunkError struct {
	Chunk Chunk
	Err   error
}

// Error implements error.
func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Chunk, e.Err)
}

// Unwrap returns the enclosed error.
func (e *ChunkError) Unwrap() error { return e.Err }
