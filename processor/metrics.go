package processor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// meterName is the instrumentation scope name for jobbatch metrics.
const meterName = "github.com/MasterOfBinary/jobbatch"

// MetricsProcessor wraps another processor and records OpenTelemetry metrics
// for every batch. Create one with WrapWithMetrics.
//
// Instruments:
//   - jobbatch.batch.duration (Float64Histogram): Processor time in seconds,
//     with attribute status ("ok" or "error")
//   - jobbatch.batch.size (Int64Histogram): jobs per batch
//   - jobbatch.batch.executions (Int64Counter): Processor calls, with
//     attribute status ("ok" or "error")
//   - jobbatch.job.outcomes (Int64Counter): outcomes returned, with
//     attribute status ("SUCCESS" or "FAIL")
type MetricsProcessor[J batch.Job] struct {
	processor  batch.Processor[J]
	duration   metric.Float64Histogram
	size       metric.Int64Histogram
	executions metric.Int64Counter
	outcomes   metric.Int64Counter
}

// WrapWithMetricsDefault wraps proc using the global OTel MeterProvider. If
// no MeterProvider is configured, noop instruments are used and the wrapper
// becomes a pass-through.
func WrapWithMetricsDefault[J batch.Job](proc batch.Processor[J]) *MetricsProcessor[J] {
	return WrapWithMetrics(proc, otel.Meter(meterName))
}

// WrapWithMetrics wraps proc, recording metrics with the provided meter.
func WrapWithMetrics[J batch.Job](proc batch.Processor[J], meter metric.Meter) *MetricsProcessor[J] {
	// Instruments are created once. On error the API hands back noop
	// instruments, so the errors are ignored.
	duration, _ := meter.Float64Histogram(
		"jobbatch.batch.duration",
		metric.WithDescription("Duration of Processor calls in seconds"),
		metric.WithUnit("s"),
	)
	size, _ := meter.Int64Histogram(
		"jobbatch.batch.size",
		metric.WithDescription("Number of jobs per batch"),
		metric.WithUnit("{job}"),
	)
	executions, _ := meter.Int64Counter(
		"jobbatch.batch.executions",
		metric.WithDescription("Total number of Processor calls"),
		metric.WithUnit("{execution}"),
	)
	outcomes, _ := meter.Int64Counter(
		"jobbatch.job.outcomes",
		metric.WithDescription("Total number of job outcomes by status"),
		metric.WithUnit("{outcome}"),
	)

	return &MetricsProcessor[J]{
		processor:  proc,
		duration:   duration,
		size:       size,
		executions: executions,
		outcomes:   outcomes,
	}
}

// Process implements the Processor interface.
func (p *MetricsProcessor[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	if p.processor == nil {
		return nil, errNilProcessor
	}

	start := time.Now()
	outcomes, err := p.processor.Process(ctx, jobs)
	elapsed := time.Since(start).Seconds()

	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))

	p.duration.Record(ctx, elapsed, attrs)
	p.executions.Add(ctx, 1, attrs)
	p.size.Record(ctx, int64(len(jobs)))

	succeeded, failed := countOutcomes(outcomes)
	if succeeded > 0 {
		p.outcomes.Add(ctx, int64(succeeded), metric.WithAttributes(attribute.String("status", batch.StatusSuccess.String())))
	}
	if failed > 0 {
		p.outcomes.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("status", batch.StatusFail.String())))
	}

	return outcomes, err
}
