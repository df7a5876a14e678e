// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Command parmap reads integers and applies a named transformation to
// them in parallel, printing the results in input order.
//
//	parmap --op square 1 2 3 4
//	seq 1 20 | PARMAP_THREADS=4 parmap --op fib
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "parmap:", err)
		os.Exit(1)
	}
}
