package http

import (
	"context"

	"docshelf/internal/document"
	"docshelf/internal/ledger"
	"docshelf/internal/moderation"
	"docshelf/internal/review"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
)

//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mocks

// DocumentService is the document surface the handlers call.
type DocumentService interface {
	Upload(ctx context.Context, ac authz.Context, in document.UploadInput) (document.Document, error)
	Get(ctx context.Context, id domain.DocumentID) (document.Document, error)
	ContentURL(ctx context.Context, doc document.Document) (string, error)
	Activate(ctx context.Context, ac authz.Context, id domain.DocumentID) (document.Document, error)
	Deactivate(ctx context.Context, ac authz.Context, id domain.DocumentID) (document.Document, error)
	Delete(ctx context.Context, ac authz.Context, id domain.DocumentID) error
}

// AccessEvaluator gates every content-serving request.
type AccessEvaluator interface {
	HasAccess(ctx context.Context, userID domain.UserID, documentID domain.DocumentID) (bool, error)
}

// LedgerService is the points surface the handlers call.
type LedgerService interface {
	Redeem(ctx context.Context, ac authz.Context, documentID domain.DocumentID) (ledger.Redemption, error)
	Balance(ctx context.Context, readerID domain.UserID) (int, error)
	Redemptions(ctx context.Context, readerID domain.UserID) ([]ledger.Redemption, error)
}

// ReviewService is the assignment surface the handlers call.
type ReviewService interface {
	Assign(ctx context.Context, ac authz.Context, documentID domain.DocumentID, reviewerID domain.UserID, note string) (review.ReviewRequest, error)
	Respond(ctx context.Context, ac authz.Context, requestID domain.ReviewRequestID, accept bool, reason string) (review.ReviewRequest, error)
	Submit(ctx context.Context, ac authz.Context, requestID domain.ReviewRequestID, decision review.Decision, report string) (review.DocumentReview, error)
	Get(ctx context.Context, id domain.ReviewRequestID) (review.ReviewRequest, error)
	ListForReviewer(ctx context.Context, reviewerID domain.UserID) ([]review.ReviewRequest, error)
	ListForDocument(ctx context.Context, documentID domain.DocumentID) ([]review.ReviewRequest, error)
}

// ModerationIntake absorbs collaborator callbacks.
type ModerationIntake interface {
	HandleCallback(ctx context.Context, payload moderation.CallbackPayload) error
}
