package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ResourceLimits bounds the resources the Collector uses while dispatching.
// The zero value means no limits.
type ResourceLimits struct {
	// MaxConcurrentBatches limits the number of Processor calls that can run
	// at the same time. Dispatches beyond the limit wait for a slot; their
	// jobs are already RUNNING while they wait. A value of 0 means no limit.
	MaxConcurrentBatches int `json:"maxConcurrentBatches" yaml:"max_concurrent_batches"`

	// MaxProcessingTime bounds the context passed to each Processor call.
	// A Processor that respects its context fails the batch once this is
	// exceeded. A value of 0 means no limit.
	MaxProcessingTime time.Duration `json:"maxProcessingTime" yaml:"max_processing_time"`
}

// DefaultResourceLimits returns sensible default resource limits based on
// the system's available resources.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxConcurrentBatches: runtime.NumCPU() * 2, // 2 batches per CPU
		MaxProcessingTime:    5 * time.Minute,
	}
}

// Validate checks if the resource limits are valid.
func (r ResourceLimits) Validate() error {
	if r.MaxConcurrentBatches < 0 {
		return fmt.Errorf("%w: MaxConcurrentBatches cannot be negative", ErrInvalidConfig)
	}

	if r.MaxProcessingTime < 0 {
		return fmt.Errorf("%w: MaxProcessingTime cannot be negative", ErrInvalidConfig)
	}

	return nil
}

// resourceTracker enforces ResourceLimits for in-flight dispatches.
type resourceTracker struct {
	activeBatches int32
	limits        ResourceLimits
	sem           *semaphore.Weighted // nil when unbounded
}

// newResourceTracker creates a new resource tracker with the given limits.
func newResourceTracker(limits ResourceLimits) *resourceTracker {
	rt := &resourceTracker{limits: limits}
	if limits.MaxConcurrentBatches > 0 {
		rt.sem = semaphore.NewWeighted(int64(limits.MaxConcurrentBatches))
	}
	return rt
}

// startBatch blocks until a dispatch slot is free, and returns the context
// the Processor should run with, plus a function that releases the slot.
func (rt *resourceTracker) startBatch(ctx context.Context) (context.Context, func(), error) {
	if rt.sem != nil {
		if err := rt.sem.Acquire(ctx, 1); err != nil {
			return ctx, func() {}, err
		}
	}
	atomic.AddInt32(&rt.activeBatches, 1)

	cancel := context.CancelFunc(func() {})
	if rt.limits.MaxProcessingTime > 0 {
		ctx, cancel = context.WithTimeout(ctx, rt.limits.MaxProcessingTime)
	}

	return ctx, func() {
		cancel()
		atomic.AddInt32(&rt.activeBatches, -1)
		if rt.sem != nil {
			rt.sem.Release(1)
		}
	}, nil
}

// active returns the number of Processor calls currently running.
func (rt *resourceTracker) active() int {
	return int(atomic.LoadInt32(&rt.activeBatches))
}
