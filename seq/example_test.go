// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq_test

import (
	"fmt"
	"slices"
	"strings"

	"vawter.tech/parallel"
	"vawter.tech/parallel/seq"
)

func ExampleCompute() {
	// Square each integer in a range, preserving input order.
	squares, err := seq.Compute(seq.Range(0, 7), func(v int) int {
		return v * v
	}, parallel.WithThreadCount(3))
	if err != nil {
		panic(err)
	}
	fmt.Println(squares)

	// Output:
	// [0 1 4 9 16 25 36]
}

func ExampleCompute2() {
	// Transform indexed values into formatted strings.
	pairs := slices.All([]string{"hello", "world"})
	results, err := seq.Compute2(pairs, func(idx int, s string) string {
		return fmt.Sprintf("%d:%s", idx, strings.ToUpper(s))
	})
	if err != nil {
		panic(err)
	}
	for _, val := range results {
		fmt.Println(val)
	}

	// Output:
	// 0:HELLO
	// 1:WORLD
}
