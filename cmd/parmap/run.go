// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"vawter.tech/parallel"
	"vawter.tech/parallel/limit"
)

const envPrefix = "PARMAP"

// Configuration keys, which are also the flag names.
const (
	keyInline      = "inline-threshold"
	keyLogLevel    = "log-level"
	keyConcurrency = "max-concurrency"
	keyOp          = "op"
	keyThreads     = "threads"
)

// An op is a named transformation.
type op func(int64) (int64, error)

var ops = map[string]op{
	"double":    func(v int64) (int64, error) { return 2 * v, nil },
	"factorial": factorial,
	"fib":       fib,
	"square":    func(v int64) (int64, error) { return v * v, nil },
}

var (
	errNegative = errors.New("negative input")
	errOverflow = errors.New("result overflows int64")
)

func factorial(v int64) (int64, error) {
	switch {
	case v < 0:
		return 0, errNegative
	case v > 20:
		return 0, errOverflow
	}
	ret := int64(1)
	for i := int64(2); i <= v; i++ {
		ret *= i
	}
	return ret, nil
}

func fib(v int64) (int64, error) {
	switch {
	case v < 0:
		return 0, errNegative
	case v > 92:
		return 0, errOverflow
	}
	var a, b int64 = 0, 1
	for range v {
		a, b = b, a+b
	}
	return a, nil
}

// newConfig binds the command-line flags and PARMAP_ environment
// variables into a viper instance. Flags take precedence.
func newConfig(args []string, stderr io.Writer) (*viper.Viper, []string, error) {
	fs := pflag.NewFlagSet("parmap", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Int(keyInline, 0, "run inputs smaller than this on the calling goroutine")
	fs.String(keyLogLevel, "warn", "log level: debug, info, warn, error")
	fs.Int(keyConcurrency, 0, "limit the number of simultaneously running workers")
	fs.String(keyOp, "double", "transformation: "+strings.Join(opNames(), ", "))
	fs.Int(keyThreads, 0, "number of workers; defaults to GOMAXPROCS")
	// Stop at the first input so that negative numbers are not read as
	// flags. A leading negative input needs a "--" separator.
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, nil, err
	}
	return v, fs.Args(), nil
}

func opNames() []string {
	ret := make([]string, 0, len(ops))
	for name := range ops {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

// readInputs parses the positional arguments or, if there are none,
// whitespace-separated integers from the reader.
func readInputs(args []string, in io.Reader) ([]int64, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(in)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			args = append(args, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	ret := make([]int64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		ret[i] = v
	}
	return ret, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	v, rest, err := newConfig(args, stderr)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("bad %s: %w", keyLogLevel, err)
	}
	// Workers log concurrently.
	out := zerolog.SyncWriter(zerolog.ConsoleWriter{Out: stderr, NoColor: true})
	log := zerolog.New(out).
		Level(level).
		With().Timestamp().Logger()

	fn, ok := ops[v.GetString(keyOp)]
	if !ok {
		return fmt.Errorf("unknown %s %q; expecting one of %s",
			keyOp, v.GetString(keyOp), strings.Join(opNames(), ", "))
	}

	inputs, err := readInputs(rest, stdin)
	if err != nil {
		return err
	}
	log.Debug().Int("count", len(inputs)).Str("op", v.GetString(keyOp)).Msg("read inputs")

	opts := []parallel.Option{
		parallel.WithInlineThreshold(v.GetInt(keyInline)),
		parallel.WithLogger(log),
		parallel.WithName("parmap." + v.GetString(keyOp)),
		parallel.WithThreadCount(v.GetInt(keyThreads)),
	}
	if n := v.GetInt(keyConcurrency); n > 0 {
		opts = append(opts, parallel.WithMiddleware(limit.WithMaxConcurrency(n)))
	}

	results, err := parallel.ComputeErr(inputs, fn, opts...)
	if err != nil {
		var tErr *parallel.TransformError
		if errors.As(err, &tErr) {
			return fmt.Errorf("%s(%d): %w", v.GetString(keyOp), inputs[tErr.Index], tErr.Err)
		}
		return err
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = strconv.FormatInt(r, 10)
	}
	_, err = fmt.Fprintf(stdout, "[%s]\n", strings.Join(parts, ", "))
	return err
}
