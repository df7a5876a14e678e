// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"iter"
	"slices"

	"vawter.tech/parallel"
)

type pair[K, V any] struct {
	K K
	V V
}

// Compute collects the sequence and applies fn to every element using
// [parallel.Compute].
func Compute[T, U any](items iter.Seq[T], fn func(T) U, opts ...parallel.Option) ([]U, error) {
	return parallel.Compute(slices.Collect(items), fn, opts...)
}

// ComputeErr collects the sequence and applies fn to every element
// using [parallel.ComputeErr].
func ComputeErr[T, U any](items iter.Seq[T], fn func(T) (U, error), opts ...parallel.Option) ([]U, error) {
	return parallel.ComputeErr(slices.Collect(items), fn, opts...)
}

// Compute2 is a pairwise version of [Compute].
func Compute2[K, V, U any](items iter.Seq2[K, V], fn func(K, V) U, opts ...parallel.Option) ([]U, error) {
	return ComputeErr2(items, func(k K, v V) (U, error) {
		return fn(k, v), nil
	}, opts...)
}

// ComputeErr2 is a pairwise version of [ComputeErr]. The Index of a
// [parallel.TransformError] counts pairs in yield order.
func ComputeErr2[K, V, U any](items iter.Seq2[K, V], fn func(K, V) (U, error), opts ...parallel.Option) ([]U, error) {
	var pairs []pair[K, V]
	for k, v := range items {
		pairs = append(pairs, pair[K, V]{k, v})
	}
	return parallel.ComputeErr(pairs, func(p pair[K, V]) (U, error) {
		return fn(p.K, p.V)
	}, opts...)
}

// Range returns the integers in [start, end) in ascending order. It
// yields nothing if end <= start.
func Range(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := start; i < end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
