// Package moderation tracks automated content-moderation jobs and merges the
// collaborator's asynchronous callbacks into the document lifecycle.
package moderation

import (
	"time"

	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

// JobStatus is the local state of an issued moderation job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether the job has already absorbed a callback.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Verdict is the collaborator's judgement on completed jobs.
type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictReject Verdict = "reject"
)

// Job ties an externally issued moderation job to exactly one document. The
// ID is the opaque identifier echoed back by the collaborator's callback.
type Job struct {
	ID          string
	DocumentID  domain.DocumentID
	Status      JobStatus
	Verdict     Verdict
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// CallbackPayload is the wire contract the collaborator posts when a job
// finishes. Result is required on completed, Error carries the failure
// reason otherwise.
type CallbackPayload struct {
	JobID  string          `json:"jobId"`
	Status string          `json:"status"`
	Result *CallbackResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// CallbackResult holds the verdict of a completed moderation run.
type CallbackResult struct {
	Verdict    string   `json:"verdict"`
	Violations []string `json:"violations,omitempty"`
}

const (
	callbackCompleted = "completed"
	callbackFailed    = "failed"
)

// Validate checks the payload shape before any state is touched.
func (p CallbackPayload) Validate() error {
	if p.JobID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "jobId is required")
	}
	switch p.Status {
	case callbackCompleted:
		if p.Result == nil {
			return dErrors.New(dErrors.CodeInvalidInput, "completed callback requires a result")
		}
		if v := Verdict(p.Result.Verdict); v != VerdictPass && v != VerdictReject {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown moderation verdict")
		}
	case callbackFailed:
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "status must be completed or failed")
	}
	return nil
}
