package processor

import (
	"context"
	"fmt"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Strict wraps a Processor and checks that it returns exactly one terminal
// outcome per job. The Collector tolerates missing, extra and unknown
// outcomes; Strict turns them into an error wrapping
// batch.ErrOutcomeMismatch, so they surface through the Collector's error
// handling instead.
//
// The outcomes are returned either way, so the ones that match still apply.
type Strict[J batch.Job] struct {
	Processor batch.Processor[J]
}

// Process implements the Processor interface.
func (p *Strict[J]) Process(ctx context.Context, jobs []J) ([]batch.Outcome, error) {
	if p.Processor == nil {
		return nil, errNilProcessor
	}

	outcomes, err := p.Processor.Process(ctx, jobs)
	if err != nil {
		return outcomes, err
	}

	if err := checkOutcomes(jobs, outcomes); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// checkOutcomes reports the first way in which outcomes differ from a 1:1
// mapping onto jobs.
func checkOutcomes[J batch.Job](jobs []J, outcomes []batch.Outcome) error {
	expected := make(map[batch.ID]int, len(jobs))
	for _, job := range jobs {
		expected[job.ID()]++
	}

	for _, o := range outcomes {
		if !o.Status.IsComplete() {
			return fmt.Errorf("%w: job %s has status %s", batch.ErrOutcomeMismatch, o.JobID, o.Status)
		}
		if expected[o.JobID] == 0 {
			return fmt.Errorf("%w: unexpected outcome for job %s", batch.ErrOutcomeMismatch, o.JobID)
		}
		expected[o.JobID]--
	}

	if len(outcomes) != len(jobs) {
		return fmt.Errorf("%w: %d outcomes for %d jobs", batch.ErrOutcomeMismatch, len(outcomes), len(jobs))
	}
	return nil
}
