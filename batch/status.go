package batch

// Status records where a job is in its lifecycle.
//
//	PENDING --(batch dispatched)--> RUNNING --(outcome applied)--> SUCCESS | FAIL
//
// SUCCESS and FAIL are terminal.
type Status int

const (
	// StatusPending means the job is queued and hasn't been dispatched yet.
	StatusPending Status = iota
	// StatusRunning means the job's batch has been handed to the Processor.
	StatusRunning
	// StatusSuccess means the Processor reported the job as successful.
	StatusSuccess
	// StatusFail means the job failed. See Result.FailureMessage.
	StatusFail
)

// IsComplete reports whether s is a terminal status.
func (s Status) IsComplete() bool {
	return s == StatusSuccess || s == StatusFail
}

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusRunning:
		return "RUNNING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}
