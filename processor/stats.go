package processor

import (
	"context"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// StatsProcessor wraps another processor and collects statistics about its execution.
// It tracks processing times, outcome counts, and error rates for the wrapped processor,
// independently of the stats kept by the Collector.
type StatsProcessor[J batch.Job] struct {
	// Processor is the wrapped processor that does the actual work.
	Processor batch.Processor[J]

	// Stats is used to collect processing metrics.
	// If nil, no statistics are collected.
	Stats batch.StatsCollector

	// RecordAsBatch determines whether to record statistics as batch-level metrics.
	// If true, uses RecordBatchStart/Complete. If false, only records job-level metrics.
	RecordAsBatch bool
}

// Process implements the Processor interface by delegating to the wrapped processor
// and collecting statistics about the operation.
func (p *StatsProcessor[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	if p.Processor == nil {
		return nil, errNilProcessor
	}

	if p.Stats == nil {
		// No stats collector, just pass through
		return p.Processor.Process(ctx, jobs)
	}

	startTime := time.Now()

	if p.RecordAsBatch {
		p.Stats.RecordBatchStart(len(jobs))
	}

	outcomes, err := p.Processor.Process(ctx, jobs)

	for _, o := range outcomes {
		switch o.Status {
		case batch.StatusSuccess:
			p.Stats.RecordJobSucceeded()
		case batch.StatusFail:
			p.Stats.RecordJobFailed()
		default:
			p.Stats.RecordUnmatchedOutcome()
		}
	}

	if err != nil {
		p.Stats.RecordProcessorError()
	}

	if p.RecordAsBatch {
		p.Stats.RecordBatchComplete(len(jobs), time.Since(startTime))
	}

	return outcomes, err
}

// WrapWithStats wraps a processor with statistics collection.
// This is a convenience function for creating a StatsProcessor.
//
// Example:
//
//	stats := batch.NewBasicStatsCollector()
//	wrapped := processor.WrapWithStats(myProcessor, stats, false)
//
//	// Later, get statistics
//	currentStats := stats.GetStats()
func WrapWithStats[J batch.Job](proc batch.Processor[J], stats batch.StatsCollector, recordAsBatch bool) *StatsProcessor[J] {
	return &StatsProcessor[J]{
		Processor:     proc,
		Stats:         stats,
		RecordAsBatch: recordAsBatch,
	}
}
