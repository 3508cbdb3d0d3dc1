// Package review runs human review assignments on premium documents: an
// admin assigns a reviewer, the reviewer accepts or declines within a
// response window, and an accepted assignment must produce a review within a
// second window. Deadlines are enforced lazily at read time; a background
// sweep only persists what every reader already concludes.
package review

import (
	"time"

	"docshelf/pkg/domain"
)

// RequestStatus is the stored state of a review assignment.
type RequestStatus string

const (
	// RequestPending waits for the reviewer's accept or decline.
	RequestPending RequestStatus = "pending"
	// RequestAccepted means the reviewer took the assignment and the
	// document entered review.
	RequestAccepted RequestStatus = "accepted"
	// RequestRejected is terminal: the reviewer declined.
	RequestRejected RequestStatus = "rejected"
	// RequestExpired is terminal: a deadline passed before the reviewer
	// responded or submitted.
	RequestExpired RequestStatus = "expired"
	// RequestReviewed is terminal: a review was submitted.
	RequestReviewed RequestStatus = "reviewed"
)

// Terminal reports whether the assignment can still change state.
func (s RequestStatus) Terminal() bool {
	return s == RequestRejected || s == RequestExpired || s == RequestReviewed
}

// ReviewRequest assigns one reviewer to one document. The (document,
// reviewer) pair is unique for all time; a declined or expired assignment is
// not reissued to the same reviewer.
type ReviewRequest struct {
	ID         domain.ReviewRequestID
	DocumentID domain.DocumentID
	ReviewerID domain.UserID
	AssignedBy domain.UserID
	Note       string
	Status     RequestStatus
	// Reason carries the reviewer's explanation on decline.
	Reason           string
	ResponseDeadline time.Time
	// ReviewDeadline is set when the reviewer accepts.
	ReviewDeadline *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveStatus is the stored status with lazy expiry applied. Every code
// path that inspects an assignment goes through this, so a read, a mutation
// attempt and the background sweep can never disagree about whether a
// deadline has passed.
func (r ReviewRequest) EffectiveStatus(now time.Time) RequestStatus {
	switch r.Status {
	case RequestPending:
		if now.After(r.ResponseDeadline) {
			return RequestExpired
		}
	case RequestAccepted:
		if r.ReviewDeadline != nil && now.After(*r.ReviewDeadline) {
			return RequestExpired
		}
	}
	return r.Status
}

// Decision is the reviewer's verdict on the document.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// DocumentReview is the immutable outcome of a fulfilled assignment.
type DocumentReview struct {
	ID         domain.ReviewID
	RequestID  domain.ReviewRequestID
	DocumentID domain.DocumentID
	ReviewerID domain.UserID
	Decision   Decision
	Report     string
	// ReportKey locates the full report file in blob storage.
	ReportKey string
	CreatedAt time.Time
}
