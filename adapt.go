// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

// Infallible adapts a transformation that cannot return an error to the
// signature accepted by [ComputeErr]. A panic raised by fn is still
// reported as a [TransformError].
func Infallible[T, U any](fn func(T) U) func(T) (U, error) {
	return func(t T) (U, error) {
		return fn(t), nil
	}
}
