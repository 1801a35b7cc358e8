package batch_test

import (
	"context"
	"sync"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// testJob is a Job with a readable name, to make failures easier to read.
type testJob struct {
	id   batch.ID
	name string
}

func newTestJob(name string) *testJob {
	return &testJob{id: batch.NewID(), name: name}
}

func (j *testJob) ID() batch.ID {
	return j.id
}

func (j *testJob) String() string {
	return j.name
}

// recordingProcessor records every batch it receives. By default every job
// succeeds; OutcomesFn can override that.
type recordingProcessor struct {
	Delay      time.Duration
	OutcomesFn func(ctx context.Context, jobs []*testJob) ([]batch.Outcome, error)

	mu      sync.Mutex
	batches [][]string
	times   []time.Time
}

func (p *recordingProcessor) Process(ctx context.Context, jobs []*testJob) ([]batch.Outcome, error) {
	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.name
	}

	p.mu.Lock()
	p.batches = append(p.batches, names)
	p.times = append(p.times, time.Now())
	p.mu.Unlock()

	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}

	if p.OutcomesFn != nil {
		return p.OutcomesFn(ctx, jobs)
	}

	outcomes := make([]batch.Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = batch.Succeeded(job.ID())
	}
	return outcomes, nil
}

func (p *recordingProcessor) Batches() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([][]string, len(p.batches))
	copy(result, p.batches)
	return result
}

func (p *recordingProcessor) Times() []time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]time.Time, len(p.times))
	copy(result, p.times)
	return result
}

// constantConfig is shorthand for a ConstantConfig.
func constantConfig(batchSize int, maxDelay time.Duration) batch.Config {
	return batch.NewConstantConfig(&batch.ConfigValues{
		BatchSize: batchSize,
		MaxDelay:  maxDelay,
	})
}

// waitAll waits for every result, up to timeout in total.
func waitAll(timeout time.Duration, results ...*batch.Result) bool {
	deadline := time.Now().Add(timeout)
	for _, res := range results {
		if !res.Wait(time.Until(deadline)) {
			return false
		}
	}
	return true
}

// silentConfig changes without notifying the Collector.
type silentConfig struct {
	mu     sync.Mutex
	values batch.ConfigValues
}

func (c *silentConfig) Get() batch.ConfigValues {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

func (c *silentConfig) setBatchSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.BatchSize = n
}
