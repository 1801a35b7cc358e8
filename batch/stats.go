package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector defines the interface for collecting metrics from a
// Collector. Implementations can store metrics in memory, send to monitoring
// systems, or export to various formats.
// The StatsCollector is optional - if not provided, no statistics are collected.
type StatsCollector interface {
	// RecordJobSubmitted is called for every accepted submission.
	RecordJobSubmitted()

	// RecordBatchStart is called when a batch is handed to the Processor.
	RecordBatchStart(batchSize int)

	// RecordBatchComplete is called when the Processor returns, whether or
	// not it failed. duration is the time spent in the Processor.
	RecordBatchComplete(batchSize int, duration time.Duration)

	// RecordJobSucceeded is called for each job completed with StatusSuccess.
	RecordJobSucceeded()

	// RecordJobFailed is called for each job completed with StatusFail.
	RecordJobFailed()

	// RecordUnmatchedOutcome is called for each outcome that didn't match a
	// job in its batch, or carried a non-terminal status.
	RecordUnmatchedOutcome()

	// RecordMissingOutcome is called for each job its Processor returned no
	// outcome for.
	RecordMissingOutcome()

	// RecordProcessorError is called when the Processor fails a whole batch.
	RecordProcessorError()

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about a Collector.
type Stats struct {
	// JobsSubmitted is the total number of jobs accepted by Submit.
	JobsSubmitted uint64

	// BatchesStarted is the total number of batches handed to the Processor.
	BatchesStarted uint64

	// BatchesCompleted is the total number of Processor calls that returned.
	BatchesCompleted uint64

	// JobsSucceeded is the total number of jobs completed with StatusSuccess.
	JobsSucceeded uint64

	// JobsFailed is the total number of jobs completed with StatusFail.
	JobsFailed uint64

	// UnmatchedOutcomes is the total number of outcomes that were dropped.
	UnmatchedOutcomes uint64

	// MissingOutcomes is the total number of jobs left without an outcome.
	MissingOutcomes uint64

	// ProcessorErrors is the total number of failed Processor calls.
	ProcessorErrors uint64

	// TotalProcessingTime is the cumulative time spent in the Processor.
	TotalProcessingTime time.Duration

	// MinBatchTime is the minimum time taken to process a batch.
	MinBatchTime time.Duration

	// MaxBatchTime is the maximum time taken to process a batch.
	MaxBatchTime time.Duration

	// MinBatchSize is the smallest batch size dispatched.
	MinBatchSize int

	// MaxBatchSize is the largest batch size dispatched.
	MaxBatchSize int

	// JobsDispatched is the total number of jobs handed to the Processor.
	JobsDispatched uint64

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// NoOpStatsCollector is a stats collector that discards all metrics.
// This is the default stats collector when none is specified.
type NoOpStatsCollector struct{}

// RecordJobSubmitted implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordJobSubmitted() {}

// RecordBatchStart implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchStart(batchSize int) {}

// RecordBatchComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchComplete(batchSize int, duration time.Duration) {}

// RecordJobSucceeded implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordJobSucceeded() {}

// RecordJobFailed implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordJobFailed() {}

// RecordUnmatchedOutcome implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordUnmatchedOutcome() {}

// RecordMissingOutcome implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordMissingOutcome() {}

// RecordProcessorError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordProcessorError() {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a simple in-memory implementation of StatsCollector.
// All operations are thread-safe.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Atomic counters for lock-free updates
	jobsSubmitted     uint64
	batchesStarted    uint64
	batchesCompleted  uint64
	jobsDispatched    uint64
	jobsSucceeded     uint64
	jobsFailed        uint64
	unmatchedOutcomes uint64
	missingOutcomes   uint64
	processorErrors   uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
			MinBatchTime:   time.Duration(1<<63 - 1), // Max duration as initial value
		},
	}
}

// RecordJobSubmitted implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordJobSubmitted() {
	atomic.AddUint64(&b.jobsSubmitted, 1)
}

// RecordBatchStart implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchStart(batchSize int) {
	atomic.AddUint64(&b.batchesStarted, 1)
	atomic.AddUint64(&b.jobsDispatched, uint64(batchSize))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()

	if batchSize < b.stats.MinBatchSize || b.stats.MinBatchSize == 0 {
		b.stats.MinBatchSize = batchSize
	}
	if batchSize > b.stats.MaxBatchSize {
		b.stats.MaxBatchSize = batchSize
	}
}

// RecordBatchComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchComplete(batchSize int, duration time.Duration) {
	atomic.AddUint64(&b.batchesCompleted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalProcessingTime += duration

	if duration < b.stats.MinBatchTime {
		b.stats.MinBatchTime = duration
	}
	if duration > b.stats.MaxBatchTime {
		b.stats.MaxBatchTime = duration
	}
}

// RecordJobSucceeded implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordJobSucceeded() {
	atomic.AddUint64(&b.jobsSucceeded, 1)
}

// RecordJobFailed implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordJobFailed() {
	atomic.AddUint64(&b.jobsFailed, 1)
}

// RecordUnmatchedOutcome implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordUnmatchedOutcome() {
	atomic.AddUint64(&b.unmatchedOutcomes, 1)
}

// RecordMissingOutcome implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordMissingOutcome() {
	atomic.AddUint64(&b.missingOutcomes, 1)
}

// RecordProcessorError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordProcessorError() {
	atomic.AddUint64(&b.processorErrors, 1)
}

// GetStats implements the StatsCollector interface.
// It returns a snapshot of the current statistics.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.JobsSubmitted = atomic.LoadUint64(&b.jobsSubmitted)
	stats.BatchesStarted = atomic.LoadUint64(&b.batchesStarted)
	stats.BatchesCompleted = atomic.LoadUint64(&b.batchesCompleted)
	stats.JobsDispatched = atomic.LoadUint64(&b.jobsDispatched)
	stats.JobsSucceeded = atomic.LoadUint64(&b.jobsSucceeded)
	stats.JobsFailed = atomic.LoadUint64(&b.jobsFailed)
	stats.UnmatchedOutcomes = atomic.LoadUint64(&b.unmatchedOutcomes)
	stats.MissingOutcomes = atomic.LoadUint64(&b.missingOutcomes)
	stats.ProcessorErrors = atomic.LoadUint64(&b.processorErrors)

	// Fix min batch time if no batches completed
	if stats.BatchesCompleted == 0 {
		stats.MinBatchTime = 0
	}

	return stats
}

// AverageBatchTime returns the average time taken to process a batch.
// Returns 0 if no batches have been completed.
func (s *Stats) AverageBatchTime() time.Duration {
	if s.BatchesCompleted == 0 {
		return 0
	}
	return s.TotalProcessingTime / time.Duration(s.BatchesCompleted)
}

// AverageBatchSize returns the average number of jobs per dispatched batch.
// Returns 0 if no batches have been started.
func (s *Stats) AverageBatchSize() float64 {
	if s.BatchesStarted == 0 {
		return 0
	}
	return float64(s.JobsDispatched) / float64(s.BatchesStarted)
}

// FailureRate returns the percentage of completed jobs that failed.
// Returns 0 if no jobs have completed.
func (s *Stats) FailureRate() float64 {
	total := s.JobsSucceeded + s.JobsFailed
	if total == 0 {
		return 0
	}
	return float64(s.JobsFailed) / float64(total) * 100
}

// Duration returns the total duration since statistics collection started.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}
