package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// LoggingProcessor wraps another processor and adds logging capabilities.
// It logs when processing starts and completes, along with any errors encountered.
type LoggingProcessor[J batch.Job] struct {
	// Processor is the wrapped processor that does the actual work.
	Processor batch.Processor[J]

	// Logger is used to log processing events.
	// If nil, no logging occurs.
	Logger batch.Logger

	// Name is an optional name for this processor used in log messages.
	// If empty, a generic name is used.
	Name string
}

// Process implements the Processor interface by delegating to the wrapped processor
// and logging the operation.
func (p *LoggingProcessor[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	if p.Processor == nil {
		return nil, errNilProcessor
	}

	if p.Logger == nil {
		// No logger, just pass through
		return p.Processor.Process(ctx, jobs)
	}

	name := p.Name
	if name == "" {
		name = fmt.Sprintf("%T", p.Processor)
	}

	startTime := time.Now()
	p.Logger.Debug("Processor '%s' starting with %d jobs", name, len(jobs))

	outcomes, err := p.Processor.Process(ctx, jobs)

	duration := time.Since(startTime)
	if err != nil {
		p.Logger.Error("Processor '%s' failed after %v: %v", name, duration, err)
		return outcomes, err
	}

	succeeded, failed := countOutcomes(outcomes)
	p.Logger.Debug("Processor '%s' completed in %v: %d outcomes (%d succeeded, %d failed)",
		name, duration, len(outcomes), succeeded, failed)
	if len(outcomes) != len(jobs) {
		p.Logger.Warn("Processor '%s' returned %d outcomes for %d jobs", name, len(outcomes), len(jobs))
	}

	return outcomes, nil
}

// WrapWithLogging wraps a processor with logging capabilities.
// This is a convenience function for creating a LoggingProcessor.
//
// Example:
//
//	logger := batch.NewSimpleLogger(batch.LogLevelDebug)
//	wrapped := processor.WrapWithLogging(myProcessor, logger, "MyProcessor")
func WrapWithLogging[J batch.Job](proc batch.Processor[J], logger batch.Logger, name string) *LoggingProcessor[J] {
	return &LoggingProcessor[J]{
		Processor: proc,
		Logger:    logger,
		Name:      name,
	}
}

// countOutcomes counts terminal outcomes by status.
func countOutcomes(outcomes []batch.Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		switch o.Status {
		case batch.StatusSuccess:
			succeeded++
		case batch.StatusFail:
			failed++
		}
	}
	return succeeded, failed
}
