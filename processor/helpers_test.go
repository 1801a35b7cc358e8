package processor

import (
	"context"
	"fmt"
	"sync"

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

type testProcessor struct {
	processFunc func(context.Context, []testJob) ([]batch.Outcome, error)
}

func (p *testProcessor) Process(ctx context.Context, jobs []testJob) ([]batch.Outcome, error) {
	if p.processFunc != nil {
		return p.processFunc(ctx, jobs)
	}
	return Succeed[testJob]().Process(ctx, jobs)
}

type captureLogger struct {
	mu       sync.Mutex
	messages []string
}

func (c *captureLogger) Log(level batch.LogLevel, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	c.messages = append(c.messages, level.String()+" "+msg)
}
func (c *captureLogger) Debug(format string, args ...interface{}) {
	c.Log(batch.LogLevelDebug, format, args...)
}
func (c *captureLogger) Info(format string, args ...interface{}) {
	c.Log(batch.LogLevelInfo, format, args...)
}
func (c *captureLogger) Warn(format string, args ...interface{}) {
	c.Log(batch.LogLevelWarn, format, args...)
}
func (c *captureLogger) Error(format string, args ...interface{}) {
	c.Log(batch.LogLevelError, format, args...)
}

func (c *captureLogger) getMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}

func countStatus(outcomes []batch.Outcome, status batch.Status) int {
	var n int
	for _, o := range outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
