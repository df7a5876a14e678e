// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names recorded on the meter passed to [WithMeter]. Every
// measurement carries a "name" attribute set by [WithName].
const (
	MetricCalls         = "parallel.calls"          // Int64Counter
	MetricChunkDuration = "parallel.chunk.duration" // Float64Histogram, seconds
	MetricElements      = "parallel.elements"       // Int64Counter
	MetricFailures      = "parallel.failures"       // Int64Counter
)

type metrics struct {
	attrs         metric.MeasurementOption
	calls         metric.Int64Counter
	chunkDuration metric.Float64Histogram
	elements      metric.Int64Counter
	failures      metric.Int64Counter
}

func newMetrics(meter metric.Meter, name string) (*metrics, error) {
	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Number of parallel compute calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	chunkDuration, err := meter.Float64Histogram(MetricChunkDuration,
		metric.WithDescription("Time taken by a worker to process its chunk"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricChunkDuration, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Number of elements successfully transformed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	failures, err := meter.Int64Counter(MetricFailures,
		metric.WithDescription("Number of compute calls that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFailures, err)
	}

	return &metrics{
		attrs:         metric.WithAttributes(attribute.String("name", name)),
		calls:         calls,
		chunkDuration: chunkDuration,
		elements:      elements,
		failures:      failures,
	}, nil
}

func (m *metrics) RecordCall(ctx context.Context) {
	m.calls.Add(ctx, 1, m.attrs)
}

func (m *metrics) RecordChunk(ctx context.Context, processed int, elapsed time.Duration) {
	m.elements.Add(ctx, int64(processed), m.attrs)
	m.chunkDuration.Record(ctx, elapsed.Seconds(), m.attrs)
}

func (m *metrics) RecordFailure(ctx context.Context) {
	m.failures.Add(ctx, 1, m.attrs)
}
