// Package document owns the document lifecycle: upload, the moderation and
// review driven status automaton, visibility, premium pricing, and the
// deactivation and soft-delete controls layered on top of it.
package document

import (
	"time"

	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

// Status is the lifecycle state of a document.
type Status string

const (
	// StatusUnmoderated is the initial state after upload, before the
	// moderation verdict arrives.
	StatusUnmoderated Status = "unmoderated"
	// StatusModerated means the document passed automated moderation and,
	// being premium, waits for a human review assignment.
	StatusModerated Status = "moderated"
	// StatusPendingHumanReview means a reviewer accepted the assignment and
	// the review is underway.
	StatusPendingHumanReview Status = "pending_human_review"
	// StatusActive means the document is published.
	StatusActive Status = "active"
	// StatusModerationRejected is terminal: the document failed moderation
	// or human review.
	StatusModerationRejected Status = "moderation_rejected"
	// StatusDeleted is terminal: the document was soft-deleted. Rows are
	// never removed physically.
	StatusDeleted Status = "deleted"
)

// transitions is the full automaton. Anything not listed is invalid.
var transitions = map[Status][]Status{
	StatusUnmoderated:        {StatusModerated, StatusActive, StatusModerationRejected, StatusDeleted},
	StatusModerated:          {StatusPendingHumanReview, StatusDeleted},
	StatusPendingHumanReview: {StatusActive, StatusModerationRejected, StatusModerated, StatusDeleted},
	StatusActive:             {StatusDeleted},
	StatusModerationRejected: {StatusDeleted},
	StatusDeleted:            {},
}

// CanTransitionTo reports whether the automaton permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusDeleted
}

// Assignable reports whether a human review may be assigned in this state.
func (s Status) Assignable() bool {
	return s == StatusModerated
}

// Visibility controls who may read a document without a grant.
type Visibility string

const (
	// VisibilityPublic documents are readable by any authenticated user.
	VisibilityPublic Visibility = "public"
	// VisibilityInternal documents are readable by joined members of the
	// owning organization.
	VisibilityInternal Visibility = "internal"
	// VisibilityPrivate documents are readable only through explicit grants.
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityInternal, VisibilityPrivate:
		return true
	}
	return false
}

// Document is the aggregate root of the lifecycle.
//
// Deactivated is orthogonal to Status: an admin can pull an active document
// from circulation and restore it later without disturbing the automaton.
// Version backs optimistic concurrency on every update.
type Document struct {
	ID          domain.DocumentID
	Title       string
	UploaderID  domain.UserID
	OrgID       *domain.OrgID
	Visibility  Visibility
	IsPremium   bool
	Price       int
	Status      Status
	Deactivated bool
	StorageKey  string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Readable reports whether the document is in circulation for ordinary
// grant evaluation. Deactivated and terminal documents take the restricted
// access path instead.
func (d Document) Readable() bool {
	return !d.Deactivated && d.Status != StatusDeleted
}

// Validate checks structural invariants at creation time.
func (d Document) Validate() error {
	if d.Title == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}
	if !d.Visibility.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown visibility")
	}
	if d.Visibility == VisibilityInternal && d.OrgID == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "internal visibility requires an organization")
	}
	if d.IsPremium && d.Price < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "premium price must not be negative")
	}
	if !d.IsPremium && d.Price != 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "non-premium documents cannot carry a price")
	}
	return nil
}
