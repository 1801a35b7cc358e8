package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// pendingEntry pairs a queued job with its Result. It lives only in the
// Collector's queue and in the batch it is drained into.
type pendingEntry[J Job] struct {
	job    J
	result *Result
}

// Collector accumulates submitted jobs and hands them to a Processor in
// batches. A batch is dispatched as soon as BatchSize jobs are pending, or
// once MaxDelay has elapsed since the previous dispatch, whichever comes
// first.
//
// Create a Collector with New or NewWithOptions, and always call Shutdown
// when done with it:
//
//	c, err := batch.New(batch.NewConstantConfig(&batch.ConfigValues{
//		BatchSize: 100,
//		MaxDelay:  250 * time.Millisecond,
//	}), processor)
//	if err != nil {
//		return err
//	}
//	defer c.Shutdown()
//
//	res := c.Submit(job)
//	if res.Wait(time.Second) && res.Status() == batch.StatusSuccess {
//		// ...
//	}
//
// The trigger policy (see ShouldDispatch) is evaluated on every Submit, and
// by a background timer armed for the moment the oldest pending window
// closes, so a partial batch is flushed even when no further jobs arrive.
//
// The Processor is always called outside the Collector's lock, on its own
// goroutine, so batches may be processed concurrently. Use
// ResourceLimits.MaxConcurrentBatches to bound that. Within a batch, jobs are
// in submission order.
type Collector[J Job] struct {
	processor   Processor[J]
	config      Config
	logger      Logger
	stats       StatsCollector
	resources   *resourceTracker
	onError     func(error)
	errorPolicy ProcessorErrorPolicy
	failMissing bool

	batchCount uint64 // atomic

	inflight     sync.WaitGroup
	wake         chan struct{}
	stop         chan struct{}
	timerDone    chan struct{}
	shutdownOnce sync.Once

	// mu protects the following variables
	mu           sync.Mutex
	pending      []*pendingEntry[J]
	lastDispatch time.Time
	closed       bool
}

// New creates a new Collector using the provided config and processor. If
// config is nil, DefaultConfigValues is used.
//
// An error wrapping ErrInvalidConfig is returned if the config values are
// invalid (for example BatchSize < 1) or processor is nil.
func New[J Job](config Config, processor Processor[J]) (*Collector[J], error) {
	return NewWithOptions(processor, &Options{Config: config})
}

// NewWithOptions creates a new Collector with the given options. The
// background timer starts immediately.
//
// Example:
//
//	stats := batch.NewBasicStatsCollector()
//	c, err := batch.NewWithOptions(processor, &batch.Options{
//		Config:               batch.NewConstantConfig(&batch.ConfigValues{BatchSize: 10, MaxDelay: time.Second}),
//		ResourceLimits:       &batch.ResourceLimits{MaxConcurrentBatches: 2},
//		Logger:               batch.NewSlogLogger(slog.Default()),
//		Stats:                stats,
//		ProcessorErrorPolicy: batch.FailBatch,
//	})
func NewWithOptions[J Job](processor Processor[J], opts *Options) (*Collector[J], error) {
	if processor == nil {
		return nil, fmt.Errorf("%w: processor cannot be nil", ErrInvalidConfig)
	}

	opts = opts.WithDefaults()

	values := opts.Config.Get()
	if err := values.Validate(); err != nil {
		return nil, err
	}

	var limits ResourceLimits
	if opts.ResourceLimits != nil {
		limits = *opts.ResourceLimits
		if err := limits.Validate(); err != nil {
			return nil, err
		}
	}

	c := &Collector[J]{
		processor:    processor,
		config:       opts.Config,
		logger:       opts.Logger,
		stats:        opts.Stats,
		resources:    newResourceTracker(limits),
		onError:      opts.ErrorHandler,
		errorPolicy:  opts.ProcessorErrorPolicy,
		failMissing:  opts.FailMissingOutcomes,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		timerDone:    make(chan struct{}),
		lastDispatch: time.Now(),
	}

	c.logger.Info("Starting collector: batch size %d, max delay %v", values.BatchSize, values.MaxDelay)

	go c.run()

	return c, nil
}

// Submit queues job for processing and returns its Result, in
// StatusPending. Submit never blocks on the Processor: a batch triggered by
// this call is dispatched on another goroutine.
//
// Submitting after Shutdown doesn't queue the job; the returned Result is
// already in StatusFail, with ErrClosed as its failure message.
//
// IDs should be unique among jobs that may share a batch. Duplicates are
// tolerated: outcomes for the same ID are handed out to the jobs carrying it
// in submission order.
func (c *Collector[J]) Submit(job J) *Result {
	res := newResult(job.ID())

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		res.complete(StatusFail, ErrClosed.Error())
		c.logger.Warn("Job %s submitted after shutdown", res.id)
		return res
	}
	c.pending = append(c.pending, &pendingEntry[J]{job: job, result: res})
	batches := c.drainTriggeredLocked(time.Now())
	waiting := len(c.pending) > 0
	c.mu.Unlock()

	c.stats.RecordJobSubmitted()
	c.dispatchAsync(batches)
	if waiting {
		c.signal()
	}

	return res
}

// Pending returns the number of jobs waiting to be dispatched.
func (c *Collector[J]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Shutdown stops the background timer, then dispatches every pending job,
// in FIFO batches of at most BatchSize, and waits for all batches, including
// ones already in flight, to finish. When Shutdown returns, no job submitted
// before it is still StatusPending.
//
// The errors of Processor calls made by Shutdown itself are joined and
// returned. Failures of batches that were already in flight are reported
// through Options.ErrorHandler only.
//
// Shutdown is idempotent; calls after the first return nil. It must not be
// called from within the Processor.
func (c *Collector[J]) Shutdown() error {
	var err error
	c.shutdownOnce.Do(func() {
		close(c.stop)
		<-c.timerDone

		c.mu.Lock()
		c.closed = true
		size := fixConfig(c.config.Get()).BatchSize
		var batches [][]*pendingEntry[J]
		for len(c.pending) > 0 {
			batches = append(batches, c.drainLocked(size))
		}
		c.mu.Unlock()

		c.logger.Info("Shutting down collector: %d remaining batch(es)", len(batches))

		var errs []error
		for _, entries := range batches {
			if e := c.sendBatch(entries); e != nil {
				errs = append(errs, e)
			}
		}

		c.inflight.Wait()
		c.logger.Info("Collector shut down. Total batches: %d", atomic.LoadUint64(&c.batchCount))

		err = errors.Join(errs...)
	})
	return err
}

// signal wakes the background timer so it re-arms from the current state.
func (c *Collector[J]) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// run is the background timer. It sleeps until the current window of the
// pending jobs closes, evaluates the trigger policy, and re-arms. Submit and
// config changes wake it early. It returns on Shutdown.
func (c *Collector[J]) run() {
	defer close(c.timerDone)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	notifier, _ := c.config.(ChangeNotifier)

	for {
		// Fetched before the deadline so a change in between is not missed
		var changed <-chan struct{}
		if notifier != nil {
			changed = notifier.Changed()
		}

		if d, ok := c.untilDue(time.Now()); ok {
			timer.Reset(d)
		} else {
			timer.Stop()
		}

		select {
		case <-c.stop:
			return
		case <-c.wake:
		case <-changed:
		case now := <-timer.C:
			c.dispatchIfTriggered(now)
		}
	}
}

// untilDue reports how long until the pending jobs are due, using the
// current config.
func (c *Collector[J]) untilDue(now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	config := fixConfig(c.config.Get())
	return timeUntilDue(len(c.pending), config.BatchSize, now.Sub(c.lastDispatch), config.MaxDelay, config.TickInterval)
}

// dispatchIfTriggered evaluates the trigger policy and dispatches whatever
// it drains.
func (c *Collector[J]) dispatchIfTriggered(now time.Time) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	batches := c.drainTriggeredLocked(now)
	c.mu.Unlock()

	c.dispatchAsync(batches)
}

// drainTriggeredLocked drains batches for as long as the trigger policy says
// so. With a constant config that is at most once; it only repeats when a
// DynamicConfig shrank BatchSize below the number of pending jobs.
//
// c.mu must be held.
func (c *Collector[J]) drainTriggeredLocked(now time.Time) [][]*pendingEntry[J] {
	var batches [][]*pendingEntry[J]
	for {
		config := fixConfig(c.config.Get())
		if !ShouldDispatch(len(c.pending), config.BatchSize, now.Sub(c.lastDispatch), config.MaxDelay) {
			return batches
		}
		batches = append(batches, c.drainLocked(config.BatchSize))
		c.lastDispatch = now
		c.inflight.Add(1)
	}
}

// drainLocked removes up to n of the oldest entries from the queue.
//
// c.mu must be held.
func (c *Collector[J]) drainLocked(n int) []*pendingEntry[J] {
	if n > len(c.pending) {
		n = len(c.pending)
	}

	entries := make([]*pendingEntry[J], n)
	copy(entries, c.pending[:n])
	clear(c.pending[:n])

	c.pending = c.pending[n:]
	if len(c.pending) == 0 {
		c.pending = nil
	}

	return entries
}

// dispatchAsync sends each batch on its own goroutine. The in-flight counter
// must already account for every batch.
func (c *Collector[J]) dispatchAsync(batches [][]*pendingEntry[J]) {
	for _, entries := range batches {
		go func(entries []*pendingEntry[J]) {
			defer c.inflight.Done()
			_ = c.sendBatch(entries)
		}(entries)
	}
}

// sendBatch marks every job of the batch RUNNING, calls the Processor, and
// applies the returned outcomes. Any Processor failure is returned as a
// *ProcessorError, after being logged and passed to the error handler.
func (c *Collector[J]) sendBatch(entries []*pendingEntry[J]) error {
	if len(entries) == 0 {
		return nil
	}

	batchNum := atomic.AddUint64(&c.batchCount, 1)

	jobs := make([]J, len(entries))
	for i, e := range entries {
		e.result.markRunning()
		jobs[i] = e.job
	}

	ctx, release, err := c.resources.startBatch(context.Background())
	if err != nil {
		return c.failBatch(batchNum, entries, err)
	}

	c.logger.Debug("Dispatching batch %d with %d jobs (%d active)", batchNum, len(jobs), c.resources.active())
	c.stats.RecordBatchStart(len(jobs))

	startTime := time.Now()
	outcomes, err := c.invoke(ctx, jobs)
	duration := time.Since(startTime)
	release()

	c.stats.RecordBatchComplete(len(jobs), duration)

	c.mu.Lock()
	if now := time.Now(); now.After(c.lastDispatch) {
		c.lastDispatch = now
	}
	c.mu.Unlock()

	succeeded, failed, missing := c.applyOutcomes(batchNum, entries, outcomes, err == nil)

	if err != nil {
		return c.failBatch(batchNum, entries, err)
	}

	c.logger.Info("Batch %d complete: %d succeeded, %d failed, %d missing, duration: %v",
		batchNum, succeeded, failed, missing, duration)

	return nil
}

// invoke calls the Processor, converting a panic into an error.
func (c *Collector[J]) invoke(ctx context.Context, jobs []J) (outcomes []Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcomes = nil
			err = fmt.Errorf("%w: %v", ErrProcessorPanic, r)
		}
	}()
	return c.processor.Process(ctx, jobs)
}

// applyOutcomes completes the result of each entry that has a matching
// outcome. Entries sharing an ID are matched in order. When finished is
// true, entries left without an outcome are counted as missing (and failed,
// if so configured).
func (c *Collector[J]) applyOutcomes(batchNum uint64, entries []*pendingEntry[J], outcomes []Outcome, finished bool) (succeeded, failed, missing int) {
	byID := make(map[ID][]*pendingEntry[J], len(entries))
	for _, e := range entries {
		if len(byID[e.result.id]) > 0 {
			c.logger.Warn("Batch %d: duplicate job ID %s", batchNum, e.result.id)
		}
		byID[e.result.id] = append(byID[e.result.id], e)
	}

	for _, o := range outcomes {
		if !o.Status.IsComplete() {
			c.logger.Warn("Batch %d: ignoring outcome for job %s with status %s", batchNum, o.JobID, o.Status)
			c.stats.RecordUnmatchedOutcome()
			continue
		}

		queue := byID[o.JobID]
		if len(queue) == 0 {
			c.logger.Warn("Batch %d: ignoring outcome for unknown job %s", batchNum, o.JobID)
			c.stats.RecordUnmatchedOutcome()
			continue
		}
		byID[o.JobID] = queue[1:]

		if !queue[0].result.complete(o.Status, o.Message) {
			continue
		}
		if o.Status == StatusSuccess {
			succeeded++
			c.stats.RecordJobSucceeded()
		} else {
			failed++
			c.stats.RecordJobFailed()
		}
	}

	if !finished {
		return succeeded, failed, missing
	}

	for _, e := range entries {
		if e.result.Status().IsComplete() {
			continue
		}
		missing++
		c.stats.RecordMissingOutcome()
		c.logger.Warn("Batch %d: no outcome for job %s", batchNum, e.result.id)
		if c.failMissing && e.result.complete(StatusFail, ErrMissingOutcome.Error()) {
			c.stats.RecordJobFailed()
		}
	}

	return succeeded, failed, missing
}

// failBatch handles a Processor failure according to the error policy and
// returns it as a *ProcessorError.
func (c *Collector[J]) failBatch(batchNum uint64, entries []*pendingEntry[J], err error) error {
	perr := &ProcessorError{Err: err, BatchSize: len(entries)}

	c.logger.Error("Batch %d: %v", batchNum, perr)
	c.stats.RecordProcessorError()

	if c.errorPolicy == FailBatch {
		for _, e := range entries {
			if e.result.complete(StatusFail, err.Error()) {
				c.stats.RecordJobFailed()
			}
		}
	}

	if c.onError != nil {
		c.onError(perr)
	}

	return perr
}
