package source

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MasterOfBinary/jobbatch/batch"
)

type testJob struct {
	id batch.ID
	n  int
}

func (j testJob) ID() batch.ID {
	return j.id
}

func makeJobs(n int) []testJob {
	jobs := make([]testJob, n)
	for i := range jobs {
		jobs[i] = testJob{id: batch.NewID(), n: i}
	}
	return jobs
}

// orderProcessor succeeds every job and records the order it saw them in.
type orderProcessor struct {
	mu   sync.Mutex
	seen []int
}

func (p *orderProcessor) Process(ctx context.Context, jobs []testJob) ([]batch.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	outcomes := make([]batch.Outcome, len(jobs))
	for i, job := range jobs {
		p.seen = append(p.seen, job.n)
		outcomes[i] = batch.Succeeded(job.id)
	}
	return outcomes, nil
}

func newCollector(t *testing.T, proc batch.Processor[testJob], size int, delay time.Duration) *batch.Collector[testJob] {
	t.Helper()
	c, err := batch.New[testJob](batch.NewConstantConfig(&batch.ConfigValues{
		BatchSize: size,
		MaxDelay:  delay,
	}), proc)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Shutdown() })
	return c
}

func TestChannel_Feed(t *testing.T) {
	proc := &orderProcessor{}
	c := newCollector(t, proc, 3, 10*time.Millisecond)

	input := make(chan testJob)
	jobs := makeJobs(10)
	go func() {
		for _, job := range jobs {
			input <- job
		}
		close(input)
	}()

	src := &Channel[testJob]{Input: input}
	results, err := Wait(context.Background(), src.Feed(context.Background(), c))
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %v, want %v", len(results), len(jobs))
	}
	for i, res := range results {
		if res.ID() != jobs[i].id {
			t.Errorf("results[%d].ID() = %v, want %v", i, res.ID(), jobs[i].id)
		}
		if res.Status() != batch.StatusSuccess {
			t.Errorf("results[%d].Status() = %v, want SUCCESS", i, res.Status())
		}
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.seen) != len(jobs) {
		t.Fatalf("processor saw %v jobs, want %v", len(proc.seen), len(jobs))
	}
}

func TestChannel_FeedPreservesSubmitOrder(t *testing.T) {
	proc := &orderProcessor{}
	// A single batch holds everything, so the processor sees submit order
	c := newCollector(t, proc, 5, time.Hour)

	results, err := Wait(context.Background(), Slice(makeJobs(5)).Feed(context.Background(), c))
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("len(results) = %v, want 5", len(results))
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	for i, n := range proc.seen {
		if n != i {
			t.Errorf("seen[%d] = %v, want %v", i, n, i)
		}
	}
}

func TestChannel_FeedStopsOnCancel(t *testing.T) {
	c := newCollector(t, &orderProcessor{}, 100, time.Hour)

	// Input is never closed
	input := make(chan testJob, 1)
	input <- makeJobs(1)[0]

	ctx, cancel := context.WithCancel(context.Background())
	out := (&Channel[testJob]{Input: input}).Feed(ctx, c)

	res, ok := <-out
	if !ok {
		t.Fatal("output closed before the first job")
	}
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("unexpected Result after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("Feed did not stop after cancel")
	}

	// The submitted job stays queued
	if res.Status() != batch.StatusPending {
		t.Errorf("Status() = %v, want PENDING", res.Status())
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %v, want 1", c.Pending())
	}
}

func TestWait_ContextDone(t *testing.T) {
	c := newCollector(t, &orderProcessor{}, 100, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results, err := Wait(ctx, Slice(makeJobs(2)).Feed(context.Background(), c))
	if err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want %v", err, context.DeadlineExceeded)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %v, want 2", len(results))
	}
}

func TestSlice(t *testing.T) {
	jobs := makeJobs(3)
	src := Slice(jobs)

	if src.Buffer != 3 {
		t.Errorf("Buffer = %v, want 3", src.Buffer)
	}

	i := 0
	for job := range src.Input {
		if job.id != jobs[i].id {
			t.Errorf("Input[%d] = %v, want %v", i, job.id, jobs[i].id)
		}
		i++
	}
	if i != 3 {
		t.Errorf("read %v jobs, want 3", i)
	}
}
