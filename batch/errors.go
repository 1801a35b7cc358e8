package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every configuration error returned when
	// creating a Collector or parsing a config file.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrClosed is the failure message source for jobs submitted after
	// Collector.Shutdown.
	ErrClosed = errors.New("collector: shut down")

	// ErrProcessorPanic is wrapped in a ProcessorError when the Processor
	// panics.
	ErrProcessorPanic = errors.New("panic in processor")

	// ErrMissingOutcome is the failure message source for jobs the Processor
	// returned no outcome for, when Options.FailMissingOutcomes is set.
	ErrMissingOutcome = errors.New("processor returned no outcome for job")

	// ErrOutcomeMismatch is returned by strict processors when the outcomes
	// don't correspond one-to-one with the submitted jobs.
	ErrOutcomeMismatch = errors.New("outcomes do not match jobs")
)

// ProcessorError is returned when a processor fails for a whole batch.
type ProcessorError struct {
	// Err is the error returned by the Processor.
	Err error

	// BatchSize is the number of jobs in the failed batch.
	BatchSize int
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("processor error (batch of %d): %v", e.BatchSize, e.Err)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// OutcomeError describes a job that completed with StatusFail.
type OutcomeError struct {
	JobID   ID
	Message string
}

// Is reports whether target is ErrClosed and the job failed because it was
// submitted after Shutdown.
func (e *OutcomeError) Is(target error) bool {
	return target == ErrClosed && e.Message == ErrClosed.Error()
}

func (e *OutcomeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s failed", e.JobID)
	}
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}
