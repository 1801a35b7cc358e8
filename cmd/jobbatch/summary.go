package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/MasterOfBinary/jobbatch/batch"
)

func printSummary(w io.Writer, s batch.Stats, failed int64) {
	fmt.Fprintf(w, "jobs submitted:    %d\n", s.JobsSubmitted)
	fmt.Fprintf(w, "jobs succeeded:    %d\n", s.JobsSucceeded)
	fmt.Fprintf(w, "jobs failed:       %d (%d seen by submitters)\n", s.JobsFailed, failed)
	fmt.Fprintf(w, "failure rate:      %.2f%%\n", s.FailureRate())
	fmt.Fprintf(w, "batches:           %d\n", s.BatchesCompleted)
	fmt.Fprintf(w, "batch size:        avg %.1f, min %d, max %d\n", s.AverageBatchSize(), s.MinBatchSize, s.MaxBatchSize)
	fmt.Fprintf(w, "batch time:        avg %v, min %v, max %v\n", s.AverageBatchTime(), s.MinBatchTime, s.MaxBatchTime)
	fmt.Fprintf(w, "processor errors:  %d\n", s.ProcessorErrors)
	fmt.Fprintf(w, "unmatched/missing: %d/%d\n", s.UnmatchedOutcomes, s.MissingOutcomes)
	fmt.Fprintf(w, "elapsed:           %v\n", s.Duration())
}

// printMetrics collects from reader and prints one line per data point.
func printMetrics(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}

	var lines []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			lines = append(lines, metricLines(m)...)
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

func metricLines(m metricdata.Metrics) []string {
	var lines []string
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range data.DataPoints {
			lines = append(lines, fmt.Sprintf("%s{%s} %d", m.Name, dp.Attributes.Encoded(attribute.DefaultEncoder()), dp.Value))
		}
	case metricdata.Histogram[int64]:
		for _, dp := range data.DataPoints {
			lines = append(lines, fmt.Sprintf("%s count=%d sum=%d", m.Name, dp.Count, dp.Sum))
		}
	case metricdata.Histogram[float64]:
		for _, dp := range data.DataPoints {
			lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3f", m.Name, dp.Count, dp.Sum))
		}
	}
	return lines
}
