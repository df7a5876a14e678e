// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package parallel applies a transformation to every element of a
// slice using concurrent workers, returning the results in input order.
//
// It is intended for CPU-bound work in which each element can be
// processed independently:
//
//	squares, err := parallel.Compute(values, func(v int) int {
//	    return v * v
//	})
//
// # Scheduling
//
// The input is divided by [Partition] into contiguous chunks whose
// sizes differ by at most one, and each chunk is processed by its own
// goroutine. The number of chunks is the smaller of the input length
// and the thread count, which defaults to [DefaultThreadCount] and may
// be overridden with [WithThreadCount]. The calling goroutine blocks
// until every worker has finished, then concatenates the per-chunk
// results in chunk order. Completion order is never observable.
//
// Partitioning is static. Inputs whose elements have highly variable
// cost will finish no sooner than the slowest chunk.
//
// # Failures
//
// [ComputeErr] accepts a function that may return an error. A worker
// stops at the first element whose transformation fails or panics.
// Other workers are allowed to run to completion. The call then fails
// with a [*TransformError] identifying the input index; if several
// workers failed, the one with the lowest chunk index is reported.
// Panics are recovered and wrapped in a [RecoveredError] carrying the
// panic value and stack. Results are all-or-nothing.
//
// # Concurrency requirements
//
// The input slice is read concurrently by all workers and must not be
// modified during the call. The transformation function is called from
// multiple goroutines; any state it captures must be immutable or
// synchronized by the caller.
//
// # Observability
//
// Every call creates a [runtime/trace.Task] and each worker a
// [runtime/trace.Region], so the partitioning is visible in Go
// execution traces. [WithLogger] attaches a zerolog logger,
// [WithMeter] records OpenTelemetry metrics, and [WithChunkObserver]
// delivers a [ChunkInfo] for every finished chunk.
//
// # Middleware
//
// [Middleware] wraps each worker's execution. The
// [vawter.tech/parallel/limit] package provides middleware to bound
// concurrency across calls and to pace worker starts. The
// [vawter.tech/parallel/linger] package provides a test helper that
// detects workers still running after a call has returned.
//
// # Sequences
//
// The [vawter.tech/parallel/seq] package accepts [iter.Seq] and
// [iter.Seq2] inputs.
package parallel
