// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"vawter.tech/parallel"
)

func TestRange(t *testing.T) {
	r := require.New(t)

	r.Equal([]int{0, 1, 2, 3, 4, 5, 6}, slices.Collect(Range(0, 7)))
	r.Equal([]int{-2, -1}, slices.Collect(Range(-2, 0)))
	r.Empty(slices.Collect(Range(3, 3)))
	r.Empty(slices.Collect(Range(5, 1)))

	// Early break.
	var got []int
	for v := range Range(0, 100) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	r.Equal([]int{0, 1, 2}, got)
}

func TestCompute(t *testing.T) {
	r := require.New(t)

	for _, threads := range []int{0, 1, 2, 4} {
		got, err := Compute(Range(0, 7), func(v int) int { return v },
			parallel.WithThreadCount(threads))
		r.NoError(err)
		r.Equal([]int{0, 1, 2, 3, 4, 5, 6}, got)
	}
}

func TestComputeEmpty(t *testing.T) {
	r := require.New(t)

	got, err := Compute(Range(0, 0), func(v int) int {
		r.Fail("should not be called")
		return v
	})
	r.NoError(err)
	r.Empty(got)
}

func TestComputeErr(t *testing.T) {
	r := require.New(t)

	items := slices.Values([]string{"1", "2", "x", "4"})
	got, err := ComputeErr(items, strconv.Atoi, parallel.WithThreadCount(2))
	r.Nil(got)

	var tErr *parallel.TransformError
	r.ErrorAs(err, &tErr)
	r.Equal(2, tErr.Index)

	var numErr *strconv.NumError
	r.ErrorAs(err, &numErr)
	r.Equal("x", numErr.Num)
}

func TestCompute2(t *testing.T) {
	r := require.New(t)

	got, err := Compute2(slices.All([]string{"a", "b", "c"}), func(idx int, s string) string {
		return strconv.Itoa(idx) + s
	}, parallel.WithThreadCount(2))
	r.NoError(err)
	r.Equal([]string{"0a", "1b", "2c"}, got)
}

func TestCompute2MapOrder(t *testing.T) {
	r := require.New(t)

	// The output follows the order in which the map was iterated.
	m := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	var keys []string
	got, err := Compute2(maps.All(m), func(k string, v int) string {
		return k + strconv.Itoa(v)
	})
	r.NoError(err)
	r.Len(got, len(m))
	for _, s := range got {
		keys = append(keys, s[:1])
		r.Equal(strconv.Itoa(m[s[:1]]), s[1:])
	}
	r.ElementsMatch(slices.Collect(maps.Keys(m)), keys)
}

func TestComputeErr2(t *testing.T) {
	r := require.New(t)

	errOdd := errors.New("odd")
	_, err := ComputeErr2(slices.All([]int{2, 4, 5, 6}), func(_ int, v int) (int, error) {
		if v%2 == 1 {
			return 0, errOdd
		}
		return v / 2, nil
	})
	r.ErrorIs(err, errOdd)

	var tErr *parallel.TransformError
	r.ErrorAs(err, &tErr)
	r.Equal(2, tErr.Index)
}
