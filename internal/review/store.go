package review

import (
	"context"
	"time"

	"docshelf/pkg/domain"
)

// RequestStore persists review assignments.
//
// Create enforces the (document, reviewer) pair uniqueness atomically and
// returns sentinel.ErrDuplicate on a second assignment, never relying on a
// separate existence check. Update is an optimistic write on Version,
// returning sentinel.ErrConflict when stale.
type RequestStore interface {
	Create(ctx context.Context, r ReviewRequest) error
	Get(ctx context.Context, id domain.ReviewRequestID) (ReviewRequest, error)
	GetByPair(ctx context.Context, documentID domain.DocumentID, reviewerID domain.UserID) (ReviewRequest, bool, error)
	Update(ctx context.Context, r ReviewRequest) error
	ListByDocument(ctx context.Context, documentID domain.DocumentID) ([]ReviewRequest, error)
	ListByReviewer(ctx context.Context, reviewerID domain.UserID) ([]ReviewRequest, error)
	// ListOverdue returns requests whose stored status is non-terminal but
	// whose effective status at now is expired.
	ListOverdue(ctx context.Context, now time.Time) ([]ReviewRequest, error)
}

// ReviewStore persists submitted reviews. Reviews are append-only.
type ReviewStore interface {
	Create(ctx context.Context, review DocumentReview) error
	GetByRequest(ctx context.Context, requestID domain.ReviewRequestID) (DocumentReview, error)
	ListByDocument(ctx context.Context, documentID domain.DocumentID) ([]DocumentReview, error)
}
