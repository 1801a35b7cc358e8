package processor

import (
	"context"
	"sync"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// Collect is a processor that records every batch it receives and reports
// each job as successful.
//
// It is useful for capturing what a Collector dispatched, in tests and
// demos. Collect is safe for concurrent use because Process may be invoked
// by multiple goroutines.
type Collect[J batch.Job] struct {
	mu      sync.Mutex
	batches [][]J
}

// Process appends a copy of jobs to the recorded batches.
func (c *Collect[J]) Process(_ context.Context, jobs []J) ([]batch.Outcome, error) {
	recorded := make([]J, len(jobs))
	copy(recorded, jobs)

	c.mu.Lock()
	c.batches = append(c.batches, recorded)
	c.mu.Unlock()

	outcomes := make([]batch.Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = batch.Succeeded(job.ID())
	}
	return outcomes, nil
}

// Batches returns the batches received so far, in the order Process was
// called.
func (c *Collect[J]) Batches() [][]J {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([][]J, len(c.batches))
	copy(result, c.batches)
	return result
}

// Jobs returns every job received so far, flattened.
func (c *Collect[J]) Jobs() []J {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []J
	for _, b := range c.batches {
		result = append(result, b...)
	}
	return result
}
