package ledger

import (
	"context"
	"errors"
	"log/slog"

	"docshelf/internal/document"
	"docshelf/internal/notification"
	"docshelf/internal/platform/metrics"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/requestcontext"
)

// Service exposes the ledger operations.
type Service struct {
	store     Store
	documents document.Store
	notifier  notification.Notifier
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(
	store Store,
	documents document.Store,
	notifier notification.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		documents: documents,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// Redeem purchases permanent access to a premium document for the caller.
// The price is snapshotted into the redemption record at purchase time, so a
// later price change never alters what was spent.
func (s *Service) Redeem(ctx context.Context, ac authz.Context, documentID domain.DocumentID) (Redemption, error) {
	doc, err := s.documents.Get(ctx, documentID)
	if err != nil {
		s.countFailure("not_found")
		return Redemption{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	if !doc.IsPremium {
		s.countFailure("not_premium")
		return Redemption{}, dErrors.New(dErrors.CodeInvalidRequest, "document is not premium")
	}
	if doc.UploaderID == ac.UserID {
		s.countFailure("self_redemption")
		return Redemption{}, dErrors.New(dErrors.CodeInvalidRequest, "uploaders already have access to their own documents")
	}

	r := Redemption{
		ID:          domain.NewRedemptionID(),
		ReaderID:    ac.UserID,
		DocumentID:  documentID,
		PointsSpent: doc.Price,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Redeem(ctx, r); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrDuplicate):
			s.countFailure("already_redeemed")
			return Redemption{}, dErrors.Wrap(err, dErrors.CodeAlreadyRedeemed, "document already redeemed")
		case errors.Is(err, sentinel.ErrInsufficientBalance):
			s.countFailure("insufficient_balance")
			return Redemption{}, dErrors.Wrap(err, dErrors.CodeInsufficientBalance, "balance does not cover the price")
		default:
			return Redemption{}, dErrors.Wrap(err, dErrors.CodeInternal, "redeem document")
		}
	}

	if s.metrics != nil {
		s.metrics.Redemptions.Inc()
	}
	s.logger.InfoContext(ctx, "document redeemed",
		"document_id", documentID,
		"reader_id", ac.UserID,
		"points_spent", r.PointsSpent,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventDocumentRedeemed,
		DocumentID: documentID,
		Recipient:  doc.UploaderID,
		Actor:      ac.UserID,
		OccurredAt: r.CreatedAt,
	})
	return r, nil
}

// Balance returns the reader's current point balance.
func (s *Service) Balance(ctx context.Context, readerID domain.UserID) (int, error) {
	points, err := s.store.Balance(ctx, readerID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "query balance")
	}
	return points, nil
}

// Award credits points to a user, typically the uploader reward when a
// free document clears moderation.
func (s *Service) Award(ctx context.Context, userID domain.UserID, points int) error {
	if points <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "award must be positive")
	}
	if err := s.store.Credit(ctx, userID, points); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "credit balance")
	}
	return nil
}

// Redemptions lists the caller's purchases, oldest first.
func (s *Service) Redemptions(ctx context.Context, readerID domain.UserID) ([]Redemption, error) {
	out, err := s.store.ListRedemptions(ctx, readerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list redemptions")
	}
	return out, nil
}

func (s *Service) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RedemptionsFailed.WithLabelValues(reason).Inc()
	}
}
