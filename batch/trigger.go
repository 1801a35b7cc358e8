package batch

import "time"

// ShouldDispatch is the trigger policy used by Collector. It reports whether
// a batch should be dispatched now, given the number of pending jobs and the
// time elapsed since the previous dispatch.
//
// Nothing is dispatched while pending is zero. Otherwise a batch is due when
// pending has reached batchSize, or when elapsed has reached maxDelay. A
// maxDelay of zero (or less) makes any pending job eligible immediately.
//
// Collector evaluates the policy under the same lock that guards enqueueing,
// and drains at most batchSize jobs per dispatch, so with a constant config
// the size check only ever fires on equality.
func ShouldDispatch(pending, batchSize int, elapsed, maxDelay time.Duration) bool {
	if pending <= 0 {
		return false
	}
	if pending >= batchSize {
		return true
	}
	return maxDelay <= 0 || elapsed >= maxDelay
}

// timeUntilDue returns how long the background timer should sleep before
// evaluating the policy again. ok is false when nothing is pending, in which
// case only a Submit or a config change can make a batch due. A positive
// tick caps the sleep.
func timeUntilDue(pending, batchSize int, elapsed, maxDelay, tick time.Duration) (d time.Duration, ok bool) {
	if pending <= 0 {
		return 0, false
	}
	if pending >= batchSize {
		return 0, true
	}
	if maxDelay > elapsed {
		d = maxDelay - elapsed
	}
	if tick > 0 && tick < d {
		d = tick
	}
	return d, true
}
