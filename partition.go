// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"runtime"
)

// A Chunk is the contiguous, half-open range of input indices
// [Start, End) assigned to a single worker.
type Chunk struct {
	Index int // Position of the chunk within the partition.
	Start int
	End   int
}

// Len returns the number of indices in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// String is for debugging use only.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d [%d, %d)", c.Index, c.Start, c.End)
}

// DefaultThreadCount returns the number of goroutines that may execute
// simultaneously, as reported by [runtime.GOMAXPROCS]. The value is
// never less than one.
func DefaultThreadCount() int {
	return max(1, runtime.GOMAXPROCS(0))
}

// Partition divides the index range [0, n) into at most k contiguous
// chunks whose sizes differ by no more than one. The first n mod k
// chunks receive the extra element.
//
// A non-positive n yields no chunks. A non-positive k is treated as
// one. When k exceeds n, exactly n single-element chunks are returned.
func Partition(n, k int) []Chunk {
	if n <= 0 {
		return nil
	}
	k = min(max(k, 1), n)

	size, extra := n/k, n%k
	ret := make([]Chunk, k)
	start := 0
	for i := range ret {
		end := start + size
		if i < extra {
			end++
		}
		ret[i] = Chunk{Index: i, Start: start, End: end}
		start = end
	}
	return ret
}
