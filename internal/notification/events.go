// Package notification emits lifecycle events for the external delivery
// collaborator. Publishing is fire-and-forget: a failed publish is logged
// and dropped, never allowed to roll back the state transition that
// produced it.
package notification

import (
	"time"

	"docshelf/pkg/domain"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventReviewAssigned        EventType = "review.assigned"
	EventReviewAccepted        EventType = "review.accepted"
	EventReviewRejected        EventType = "review.rejected"
	EventReviewExpired         EventType = "review.expired"
	EventReviewSubmitted       EventType = "review.submitted"
	EventDocumentModerated     EventType = "document.moderated"
	EventDocumentRedeemed      EventType = "document.redeemed"
	EventDocumentStatusChanged EventType = "document.status_changed"
)

// Event is the payload handed to the delivery collaborator.
type Event struct {
	Type       EventType         `json:"type"`
	DocumentID domain.DocumentID `json:"document_id"`
	// Recipient is the user the delivery collaborator should notify.
	Recipient domain.UserID `json:"recipient"`
	// Actor is the user whose action produced the event, when distinct.
	Actor      domain.UserID `json:"actor,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
