// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package safe

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireStack asserts that the RecoveredError has a non-empty Stack
// whose frames include the named function.
func requireStack(r *require.Assertions, err error, funcName string) {
	var recovered *RecoveredError
	r.ErrorAs(err, &recovered)
	r.NotEmpty(recovered.Stack)

	frames := runtime.CallersFrames(recovered.Stack)
	var found bool
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.Function, funcName) {
			found = true
			break
		}
		if !more {
			break
		}
	}
	r.True(found, "expected stack to contain %q, got:\n%s",
		funcName, recovered.String())
}

func TestRun(t *testing.T) {
	r := require.New(t)

	r.NoError(Run(func() error { return nil }))

	boom := errors.New("boom")
	err := Run(func() error { return boom })
	r.ErrorIs(err, boom)
	var recovered *RecoveredError
	r.False(errors.As(err, &recovered))
}

func TestRunPanicError(t *testing.T) {
	r := require.New(t)

	kaboom := errors.New("kaboom")
	err := Run(func() error { panic(kaboom) })
	r.ErrorIs(err, kaboom)
	requireStack(r, err, "TestRunPanicError")

	var recovered *RecoveredError
	r.ErrorAs(err, &recovered)
	r.Same(kaboom, recovered.Value)
	r.Equal("recovered: kaboom", recovered.Error())
}

func TestRunPanicValue(t *testing.T) {
	r := require.New(t)

	err := Run(func() error { panic(42) })
	r.ErrorContains(err, "panic: 42")
	requireStack(r, err, "TestRunPanicValue")

	var recovered *RecoveredError
	r.ErrorAs(err, &recovered)
	r.Equal(42, recovered.Value)
	r.Contains(recovered.StackTrace(), "TestRunPanicValue")
}

func TestRunPanicMasksReturn(t *testing.T) {
	r := require.New(t)

	boom := errors.New("boom")
	kaboom := errors.New("kaboom")
	err := Run(func() error {
		defer func() { panic(kaboom) }()
		return boom
	})
	r.ErrorIs(err, kaboom)
	r.NotErrorIs(err, boom)
}
