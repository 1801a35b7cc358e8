// Package batch contains the core micro-batching functionality.
// The main type is Collector, which can be created using New. Callers Submit
// individual jobs and get back a Result right away; the Collector groups
// pending jobs into batches and hands each batch to a Processor supplied by
// the application. Callers can then wait on their Result until the batch
// containing their job has been processed.
//
// Collector uses BatchSize and MaxDelay from Config to determine when to
// dispatch:
//
//   - BatchSize: as soon as BatchSize jobs are pending, they are dispatched.
//   - MaxDelay: once MaxDelay has passed since the previous dispatch, any
//     pending jobs are dispatched, even if fewer than BatchSize.
//
// A few examples:
//
// - BatchSize = 3. Jobs A, B and C are submitted. The Processor is called once with [A, B, C].
// - BatchSize = 2, MaxDelay = 100ms. Jobs A, B and C are submitted. The Processor is called with [A, B] right away, and with [C] about 100ms later.
// - BatchSize = 10, MaxDelay = 0. Every submission is dispatched immediately.
//
// Timers are relative to the previous dispatch. Each dispatch starts a new
// MaxDelay window.
//
// Each Result moves from StatusPending to StatusRunning when its batch is
// dispatched, then to StatusSuccess or StatusFail when the Processor's
// outcome for it is applied:
//
//	PENDING --> RUNNING --> SUCCESS | FAIL
//
// A job whose outcome never arrives stays RUNNING, and its waiters time out,
// unless Options.FailMissingOutcomes is set. What happens when the Processor
// fails a whole batch is decided by Options.ProcessorErrorPolicy.
//
// The configuration is reloaded on every evaluation. This allows dynamic
// Config implementations to update batch behavior while the Collector is
// running.
package batch
