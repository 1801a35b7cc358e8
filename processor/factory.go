package processor

import (
	"errors"
	"fmt"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// FilterConfig provides configuration options for creating a Filter processor.
type FilterConfig[J batch.Job] struct {
	// Predicate is a function that returns true for jobs that should be kept
	// and false for jobs that should be rejected.
	// This field is required.
	Predicate FilterFunc[J]

	// InvertMatch inverts the predicate logic: if true, jobs matching the predicate
	// will be rejected instead of kept.
	// Default is false (keep matching jobs).
	InvertMatch bool

	// Message is the failure message of rejected jobs.
	// If empty, "rejected by filter" is used.
	Message string

	// Processor receives the kept jobs. If nil, kept jobs succeed.
	Processor batch.Processor[J]
}

// Validate checks if the FilterConfig is valid.
func (c FilterConfig[J]) Validate() error {
	if c.Predicate == nil {
		return errors.New("predicate function cannot be nil")
	}
	return nil
}

// NewFilter creates a new Filter processor with the given configuration.
// It validates the configuration and returns an error if invalid.
//
// Example:
//
//	proc, err := processor.NewFilter(processor.FilterConfig[*EmailJob]{
//		Predicate: func(job *EmailJob) bool {
//			// Return true to keep the job, false to reject it
//			return job.To != ""
//		},
//		Message:   "missing recipient",
//		Processor: sender,
//	})
//	if err != nil {
//		// handle error
//	}
func NewFilter[J batch.Job](config FilterConfig[J]) (*Filter[J], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter config: %w", err)
	}

	message := config.Message
	if message == "" {
		message = "rejected by filter"
	}

	return &Filter[J]{
		Predicate:   config.Predicate,
		InvertMatch: config.InvertMatch,
		Message:     message,
		Processor:   config.Processor,
	}, nil
}

// ErrorConfig provides configuration options for creating an Error processor.
type ErrorConfig struct {
	// Message is the failure message of each failed job.
	// If empty, "processor error" is used.
	Message string

	// FailFraction controls what fraction of jobs fail.
	// Value range is 0.0 to 1.0, where:
	// - 0.0 means no jobs fail (the processor succeeds every job) - this is the zero value default
	// - 1.0 means all jobs fail
	// - 0.5 means every other job fails
	// Note: If you want all jobs to fail, explicitly set FailFraction to 1.0
	FailFraction float64
}

// Validate checks if the ErrorConfig is valid.
func (c ErrorConfig) Validate() error {
	if c.FailFraction < 0 || c.FailFraction > 1 {
		return fmt.Errorf("fail fraction must be between 0 and 1, got %v", c.FailFraction)
	}
	return nil
}

// NewError creates a new Error processor with the given configuration.
//
// Example:
//
//	proc, err := processor.NewError[*EmailJob](processor.ErrorConfig{
//		Message:      "smtp unavailable",
//		FailFraction: 0.1, // one job in ten fails
//	})
func NewError[J batch.Job](config ErrorConfig) (*Error[J], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid error config: %w", err)
	}

	message := config.Message
	if message == "" {
		message = "processor error"
	}

	return &Error[J]{
		Message:      message,
		FailFraction: config.FailFraction,
	}, nil
}
