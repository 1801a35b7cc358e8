package batch

import "github.com/google/uuid"

// ID identifies a Job. It must be stable for the lifetime of the job and
// unique within any one batch handed to a Processor.
type ID = uuid.UUID

// NewID returns a new random ID. It is a convenience for callers that don't
// already have an identity scheme for their jobs.
func NewID() ID {
	return uuid.New()
}

// Job is a unit of work submitted to a Collector. Beyond its ID, a Job is
// opaque to the Collector and is never modified by it.
type Job interface {
	// ID returns the identifier of the job.
	ID() ID
}

// Outcome is the result of processing a single Job, as returned by a
// Processor. Status must be StatusSuccess or StatusFail; outcomes with any
// other status are ignored.
type Outcome struct {
	// JobID is the ID of the job this outcome belongs to.
	JobID ID `json:"jobId"`

	// Status is the terminal status of the job.
	Status Status `json:"status"`

	// Message describes why the job failed. It is only kept when Status is
	// StatusFail.
	Message string `json:"message,omitempty"`
}

// Succeeded returns a successful Outcome for the job with the given ID.
func Succeeded(id ID) Outcome {
	return Outcome{JobID: id, Status: StatusSuccess}
}

// Failed returns a failed Outcome for the job with the given ID, with an
// optional failure message.
func Failed(id ID, message string) Outcome {
	return Outcome{JobID: id, Status: StatusFail, Message: message}
}
