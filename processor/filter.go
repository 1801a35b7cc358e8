package processor

import (
	"context"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// FilterFunc is a function that decides whether a job should be processed.
// Return true to keep the job, false to reject it.
type FilterFunc[J batch.Job] func(job J) bool

// Filter is a processor that rejects jobs based on a predicate function
// before they reach the wrapped Processor. Rejected jobs fail with Message;
// the rest are handed on.
//
// Use NewFilter to create a Filter processor with validation.
type Filter[J batch.Job] struct {
	// Predicate is a function that returns true for jobs that should be kept
	// and false for jobs that should be rejected.
	// If nil, no filtering occurs (all jobs pass through).
	Predicate FilterFunc[J]

	// InvertMatch inverts the predicate logic: if true, jobs matching the predicate
	// will be rejected instead of kept.
	// Default is false (keep matching jobs).
	InvertMatch bool

	// Message is the failure message of rejected jobs.
	Message string

	// Processor receives the kept jobs. If nil, kept jobs succeed.
	Processor batch.Processor[J]
}

// Process implements the Processor interface. The outcomes of rejected jobs
// come first, followed by whatever the wrapped Processor returned.
func (p *Filter[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	kept := jobs
	var outcomes []batch.Outcome

	if p.Predicate != nil {
		kept = make([]J, 0, len(jobs))
		for _, job := range jobs {
			shouldKeep := p.Predicate(job)

			// Invert logic if needed
			if p.InvertMatch {
				shouldKeep = !shouldKeep
			}

			if shouldKeep {
				kept = append(kept, job)
			} else {
				outcomes = append(outcomes, batch.Failed(job.ID(), p.Message))
			}
		}
	}

	if len(kept) == 0 {
		return outcomes, nil
	}

	if p.Processor == nil {
		for _, job := range kept {
			outcomes = append(outcomes, batch.Succeeded(job.ID()))
		}
		return outcomes, nil
	}

	rest, err := p.Processor.Process(ctx, kept)
	return append(outcomes, rest...), err
}
