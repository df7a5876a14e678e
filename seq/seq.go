// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package seq adapts [iter.Seq] and [iter.Seq2] inputs to
// [parallel.ComputeErr].
//
// The input sequence is fully collected on the calling goroutine before
// any worker starts, so it must be finite. Results are returned in the
// order in which the sequence yielded its elements.
package seq
