package batch

// ProcessorErrorPolicy decides what happens to the jobs of a batch whose
// Processor call fails.
type ProcessorErrorPolicy int

const (
	// LeaveRunning leaves every job of the failed batch in StatusRunning.
	// Waiters only notice through a timeout. This is the default.
	LeaveRunning ProcessorErrorPolicy = iota

	// FailBatch completes every job of the failed batch that didn't get an
	// outcome with StatusFail, using the error text as failure message.
	FailBatch
)

// String returns the name of the policy.
func (p ProcessorErrorPolicy) String() string {
	switch p {
	case LeaveRunning:
		return "leave-running"
	case FailBatch:
		return "fail-batch"
	default:
		return "unknown"
	}
}

// Options contains optional configuration for creating a new Collector.
type Options struct {
	// Config provides the batching configuration.
	// If nil, DefaultConfigValues is used.
	Config Config

	// ResourceLimits defines resource constraints.
	// If nil, no resource limits are enforced.
	ResourceLimits *ResourceLimits

	// Logger receives log messages. If nil, no logging occurs.
	Logger Logger

	// Stats collects statistics. If nil, no statistics are collected.
	Stats StatsCollector

	// ErrorHandler, if set, is called with every *ProcessorError, from the
	// goroutine that ran the failed batch. It must not call Shutdown.
	ErrorHandler func(error)

	// ProcessorErrorPolicy decides what happens to jobs when the Processor
	// fails. Defaults to LeaveRunning.
	ProcessorErrorPolicy ProcessorErrorPolicy

	// FailMissingOutcomes completes jobs that the Processor returned no
	// outcome for with StatusFail (message ErrMissingOutcome). By default
	// they are left in StatusRunning.
	FailMissingOutcomes bool
}

// WithDefaults returns a copy of the Options with default values where not
// specified.
func (o *Options) WithDefaults() *Options {
	var opts Options
	if o != nil {
		opts = *o
	}

	if opts.Config == nil {
		opts.Config = NewConstantConfig(nil)
	}
	if opts.Logger == nil {
		opts.Logger = &NoOpLogger{}
	}
	if opts.Stats == nil {
		opts.Stats = &NoOpStatsCollector{}
	}

	return &opts
}
