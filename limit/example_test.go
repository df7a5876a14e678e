// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package limit_test

import (
	"fmt"
	"sync"

	"vawter.tech/parallel"
	"vawter.tech/parallel/limit"
)

func Example() {
	// Share one budget of four workers between all calls. In general,
	// rate-limiting should be applied before concurrency limits.
	budget := parallel.WithMiddleware(
		limit.WithMaxRate(1000, 8),
		limit.WithMaxConcurrency(4),
	)

	var wg sync.WaitGroup
	results := make([][]int, 3)
	for i := range results {
		wg.Go(func() {
			out, err := parallel.Compute([]int{1, 2, 3, 4}, func(v int) int {
				return v * (i + 1)
			}, budget)
			if err != nil {
				panic(err)
			}
			results[i] = out
		})
	}
	wg.Wait()

	for _, out := range results {
		fmt.Println(out)
	}
	// Output:
	// [1 2 3 4]
	// [2 4 6 8]
	// [3 6 9 12]
}
