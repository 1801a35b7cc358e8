package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterOfBinary/jobbatch/batch"
)

type testJob struct {
	id  batch.ID
	bad bool
}

func (j testJob) ID() batch.ID {
	return j.id
}

func newJob(bad bool) testJob {
	return testJob{id: batch.NewID(), bad: bad}
}

// badJobProcessor fails jobs marked bad, after an optional delay.
func badJobProcessor(delay time.Duration) batch.ProcessorFunc[testJob] {
	return func(ctx context.Context, jobs []testJob) ([]batch.Outcome, error) {
		if delay > 0 {
			time.Sleep(delay)
		}
		outcomes := make([]batch.Outcome, len(jobs))
		for i, job := range jobs {
			if job.bad {
				outcomes[i] = batch.Failed(job.id, "bad job")
				continue
			}
			outcomes[i] = batch.Succeeded(job.id)
		}
		return outcomes, nil
	}
}

func newCollector(t *testing.T, values batch.ConfigValues, proc batch.Processor[testJob]) *batch.Collector[testJob] {
	t.Helper()
	c, err := batch.New[testJob](batch.NewConstantConfig(&values), proc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown() })
	return c
}

func TestRunner_Success(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1, MaxDelay: time.Hour}, badJobProcessor(0))
	runner := NewRunner(c)

	job := newJob(false)
	outcome, err := runner.Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, batch.Succeeded(job.ID()), outcome)
}

func TestRunner_Failure(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1, MaxDelay: time.Hour}, badJobProcessor(0))
	runner := NewRunner(c)

	job := newJob(true)
	outcome, err := runner.Run(context.Background(), job)

	var outcomeErr *batch.OutcomeError
	require.ErrorAs(t, err, &outcomeErr)
	assert.Equal(t, job.ID(), outcomeErr.JobID)
	assert.Equal(t, "bad job", outcomeErr.Message)
	assert.Equal(t, batch.StatusFail, outcome.Status)
	assert.Contains(t, err.Error(), "bad job")
}

func TestRunner_ContextExpires(t *testing.T) {
	// batch size never reached, MaxDelay far away
	c := newCollector(t, batch.ConfigValues{BatchSize: 10, MaxDelay: time.Hour}, badJobProcessor(0))
	runner := NewRunner(c)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome, err := runner.Run(ctx, newJob(false))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, batch.StatusPending, outcome.Status)

	// the job is still queued
	assert.Equal(t, 1, c.Pending())
}

func TestRunner_ContextExpiresWhileRunning(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1, MaxDelay: time.Hour}, badJobProcessor(100*time.Millisecond))
	runner := NewRunner(c)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome, err := runner.Run(ctx, newJob(false))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, batch.StatusRunning, outcome.Status)
}

func TestRunner_ConcurrentCallsShareBatches(t *testing.T) {
	var calls int32
	proc := batch.ProcessorFunc[testJob](func(ctx context.Context, jobs []testJob) ([]batch.Outcome, error) {
		atomic.AddInt32(&calls, 1)
		return badJobProcessor(0)(ctx, jobs)
	})
	c := newCollector(t, batch.ConfigValues{BatchSize: 4, MaxDelay: time.Hour}, proc)
	runner := NewRunner(c)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := runner.Run(ctx, newJob(false))
			errs <- err
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-errs)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRunner_AfterShutdown(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1}, badJobProcessor(0))
	require.NoError(t, c.Shutdown())

	_, err := NewRunner(c).Run(context.Background(), newJob(false))

	var outcomeErr *batch.OutcomeError
	require.True(t, errors.As(err, &outcomeErr))
	assert.Equal(t, batch.ErrClosed.Error(), outcomeErr.Message)
	assert.ErrorIs(t, err, batch.ErrClosed)
}

func TestRunner_FailureIsNotErrClosed(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1, MaxDelay: time.Hour}, badJobProcessor(0))

	_, err := NewRunner(c).Run(context.Background(), newJob(true))
	require.Error(t, err)
	assert.NotErrorIs(t, err, batch.ErrClosed)
}

func TestRunner_NilContext(t *testing.T) {
	c := newCollector(t, batch.ConfigValues{BatchSize: 1}, badJobProcessor(0))

	//nolint:staticcheck // nil context is handled
	_, err := NewRunner(c).Run(nil, newJob(false))
	assert.NoError(t, err)
}
