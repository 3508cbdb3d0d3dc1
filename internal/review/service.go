package review

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"docshelf/internal/document"
	"docshelf/internal/identity"
	"docshelf/internal/notification"
	"docshelf/internal/platform/metrics"
	"docshelf/internal/storage"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/platform/retry"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
	"docshelf/pkg/requestcontext"
)

// Service runs the assignment state machine. Every mutation that also moves
// the document automaton (accept, submit, expiry of an accepted request)
// runs both writes in one unit of work.
type Service struct {
	requests  RequestStore
	reviews   ReviewStore
	docs      *document.Service
	blobs     storage.Storage
	directory identity.Store
	notifier  notification.Notifier
	metrics   *metrics.Metrics
	uow       tx.Runner
	logger    *slog.Logger

	responseWindow time.Duration
	reviewWindow   time.Duration
}

func NewService(
	requests RequestStore,
	reviews ReviewStore,
	docs *document.Service,
	blobs storage.Storage,
	directory identity.Store,
	notifier notification.Notifier,
	m *metrics.Metrics,
	uow tx.Runner,
	responseWindow, reviewWindow time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		requests:       requests,
		reviews:        reviews,
		docs:           docs,
		blobs:          blobs,
		directory:      directory,
		notifier:       notifier,
		metrics:        m,
		uow:            uow,
		logger:         logger,
		responseWindow: responseWindow,
		reviewWindow:   reviewWindow,
	}
}

// Assign creates a pending review assignment on a premium document that
// cleared automated moderation. Only business admins assign; the target must
// hold the reviewer role and must not already be assigned to this document.
func (s *Service) Assign(ctx context.Context, ac authz.Context, documentID domain.DocumentID, reviewerID domain.UserID, note string) (ReviewRequest, error) {
	if !ac.IsBusinessAdmin() {
		return ReviewRequest{}, dErrors.New(dErrors.CodeForbidden, "only business admins assign reviewers")
	}

	reviewer, err := s.directory.GetUser(ctx, reviewerID)
	if err != nil {
		return ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "reviewer not found")
	}
	if reviewer.Role != domain.RoleReviewer {
		return ReviewRequest{}, dErrors.New(dErrors.CodeInvalidRequest, "assignee does not hold the reviewer role")
	}

	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return ReviewRequest{}, err
	}
	if !doc.IsPremium {
		return ReviewRequest{}, dErrors.New(dErrors.CodeInvalidRequest, "only premium documents receive human review")
	}
	if !doc.Status.Assignable() {
		return ReviewRequest{}, dErrors.New(dErrors.CodeInvalidState, "document is not awaiting review assignment")
	}

	now := requestcontext.Now(ctx)
	r := ReviewRequest{
		ID:               domain.NewReviewRequestID(),
		DocumentID:       documentID,
		ReviewerID:       reviewerID,
		AssignedBy:       ac.UserID,
		Note:             note,
		Status:           RequestPending,
		ResponseDeadline: now.Add(s.responseWindow),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeInvalidRequest, "reviewer is already assigned to this document")
		}
		return ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "create review request")
	}

	s.logger.InfoContext(ctx, "reviewer assigned",
		"request_id", r.ID,
		"document_id", documentID,
		"reviewer_id", reviewerID,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventReviewAssigned,
		DocumentID: documentID,
		Recipient:  reviewerID,
		Actor:      ac.UserID,
		Detail:     note,
		OccurredAt: now,
	})
	return r, nil
}

// Respond records the reviewer's accept or decline. Acceptance starts the
// review clock and moves the document into review atomically with the
// request update. A respond attempt past the response deadline persists the
// expiry it observes and fails.
func (s *Service) Respond(ctx context.Context, ac authz.Context, requestID domain.ReviewRequestID, accept bool, reason string) (ReviewRequest, error) {
	var updated ReviewRequest
	err := retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		return s.uow.RunInTx(ctx, func(ctx context.Context) error {
			r, err := s.requests.Get(ctx, requestID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "review request not found")
			}
			if r.ReviewerID != ac.UserID {
				return dErrors.New(dErrors.CodeInvalidRequest, "only the assigned reviewer may respond")
			}

			now := requestcontext.Now(ctx)
			switch r.EffectiveStatus(now) {
			case RequestPending:
			case RequestExpired:
				if !r.Status.Terminal() {
					if err := s.persistExpiry(ctx, r, now); err != nil {
						return err
					}
				}
				return dErrors.New(dErrors.CodeInvalidState, "response deadline has passed")
			default:
				return dErrors.New(dErrors.CodeInvalidState, "review request already responded to")
			}

			if accept {
				r.Status = RequestAccepted
				deadline := now.Add(s.reviewWindow)
				r.ReviewDeadline = &deadline
				if _, err := s.docs.BeginHumanReview(ctx, r.DocumentID); err != nil {
					return err
				}
			} else {
				r.Status = RequestRejected
				r.Reason = reason
			}
			r.UpdatedAt = now
			if err := s.requests.Update(ctx, r); err != nil {
				return err
			}
			r.Version++
			updated = r
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeConflict, "review request was updated concurrently")
		}
		return ReviewRequest{}, err
	}

	eventType := notification.EventReviewRejected
	if accept {
		eventType = notification.EventReviewAccepted
	}
	s.logger.InfoContext(ctx, "reviewer responded",
		"request_id", requestID,
		"accepted", accept,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       eventType,
		DocumentID: updated.DocumentID,
		Recipient:  updated.AssignedBy,
		Actor:      ac.UserID,
		Detail:     reason,
		OccurredAt: requestcontext.Now(ctx),
	})
	return updated, nil
}

// Submit files the reviewer's decision. The immutable review record, the
// request's terminal state and the document's final transition land in one
// unit of work; the report file goes to blob storage first, keyed by the
// request. A submit attempt past the review deadline persists the expiry it
// observes, returns the document to the assignment pool and fails.
func (s *Service) Submit(ctx context.Context, ac authz.Context, requestID domain.ReviewRequestID, decision Decision, report string) (DocumentReview, error) {
	if !decision.Valid() {
		return DocumentReview{}, dErrors.New(dErrors.CodeInvalidInput, "decision must be approved or rejected")
	}

	// The object key carries the review ID; a duplicate submission writes
	// its own object, never over the recorded report.
	reviewID := domain.NewReviewID()
	reportKey, err := s.blobs.Put(ctx,
		path.Join("reviews", requestID.String(), reviewID.String()+".txt"),
		strings.NewReader(report),
		storage.PutOptions{Size: int64(len(report)), ContentType: "text/plain; charset=utf-8"},
	)
	if err != nil {
		return DocumentReview{}, dErrors.Wrap(err, dErrors.CodeInternal, "store review report")
	}

	var (
		created  DocumentReview
		uploader domain.UserID
	)
	err = retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		return s.uow.RunInTx(ctx, func(ctx context.Context) error {
			r, err := s.requests.Get(ctx, requestID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "review request not found")
			}
			if r.ReviewerID != ac.UserID {
				return dErrors.New(dErrors.CodeInvalidRequest, "only the assigned reviewer may submit")
			}

			now := requestcontext.Now(ctx)
			switch r.EffectiveStatus(now) {
			case RequestAccepted:
			case RequestExpired:
				if !r.Status.Terminal() {
					if err := s.persistExpiry(ctx, r, now); err != nil {
						return err
					}
				}
				return dErrors.New(dErrors.CodeInvalidState, "review deadline has passed")
			default:
				return dErrors.New(dErrors.CodeInvalidState, "review request is not accepted")
			}

			// Document write first: the conflict-prone version bump retries
			// before any review state exists for this attempt.
			doc, err := s.docs.CompleteHumanReview(ctx, r.DocumentID, decision == DecisionApproved)
			if err != nil {
				return err
			}

			review := DocumentReview{
				ID:         reviewID,
				RequestID:  r.ID,
				DocumentID: r.DocumentID,
				ReviewerID: r.ReviewerID,
				Decision:   decision,
				Report:     report,
				ReportKey:  reportKey,
				CreatedAt:  now,
			}
			if err := s.reviews.Create(ctx, review); err != nil {
				if errors.Is(err, sentinel.ErrDuplicate) {
					return dErrors.Wrap(err, dErrors.CodeInvalidState, "review already submitted for this request")
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "create document review")
			}

			r.Status = RequestReviewed
			r.UpdatedAt = now
			if err := s.requests.Update(ctx, r); err != nil {
				return err
			}

			uploader = doc.UploaderID
			created = review
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return DocumentReview{}, dErrors.Wrap(err, dErrors.CodeConflict, "review request was updated concurrently")
		}
		return DocumentReview{}, err
	}

	if s.metrics != nil {
		s.metrics.ReviewsSubmitted.WithLabelValues(string(decision)).Inc()
	}
	s.logger.InfoContext(ctx, "review submitted",
		"request_id", requestID,
		"document_id", created.DocumentID,
		"decision", decision,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventReviewSubmitted,
		DocumentID: created.DocumentID,
		Recipient:  uploader,
		Actor:      ac.UserID,
		Detail:     string(decision),
		OccurredAt: requestcontext.Now(ctx),
	})
	return created, nil
}

// persistExpiry writes the expiry every reader already concludes from the
// deadlines. Expiring an accepted request also puts the document back in the
// assignment pool.
func (s *Service) persistExpiry(ctx context.Context, r ReviewRequest, now time.Time) error {
	// Document write first, same ordering as Submit.
	wasAccepted := r.Status == RequestAccepted
	if wasAccepted {
		if _, err := s.docs.ReturnToAssignable(ctx, r.DocumentID); err != nil {
			return err
		}
	}
	r.Status = RequestExpired
	r.UpdatedAt = now
	if err := s.requests.Update(ctx, r); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RequestsExpired.Inc()
	}
	s.logger.InfoContext(ctx, "review request expired",
		"request_id", r.ID,
		"document_id", r.DocumentID,
		"was_accepted", wasAccepted,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventReviewExpired,
		DocumentID: r.DocumentID,
		Recipient:  r.AssignedBy,
		Actor:      r.ReviewerID,
		OccurredAt: now,
	})
	return nil
}

// Get returns an assignment with lazy expiry applied to its status. The
// stored row is not touched; persistence of observed expiry happens on
// mutation attempts and in the sweep.
func (s *Service) Get(ctx context.Context, id domain.ReviewRequestID) (ReviewRequest, error) {
	r, err := s.requests.Get(ctx, id)
	if err != nil {
		return ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "review request not found")
	}
	r.Status = r.EffectiveStatus(requestcontext.Now(ctx))
	return r, nil
}

// ListForReviewer returns the caller's assignments, lazily expired.
func (s *Service) ListForReviewer(ctx context.Context, reviewerID domain.UserID) ([]ReviewRequest, error) {
	out, err := s.requests.ListByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list review requests")
	}
	now := requestcontext.Now(ctx)
	for i := range out {
		out[i].Status = out[i].EffectiveStatus(now)
	}
	return out, nil
}

// ListForDocument returns a document's assignments, lazily expired.
func (s *Service) ListForDocument(ctx context.Context, documentID domain.DocumentID) ([]ReviewRequest, error) {
	out, err := s.requests.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list review requests")
	}
	now := requestcontext.Now(ctx)
	for i := range out {
		out[i].Status = out[i].EffectiveStatus(now)
	}
	return out, nil
}

// Sweep persists expiry for every overdue request. All requests in one sweep
// are judged against the same pinned clock, matching what lazy reads at that
// instant would conclude. Returns how many requests were expired.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)
	overdue, err := s.requests.ListOverdue(ctx, now)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "list overdue requests")
	}

	swept := 0
	for _, r := range overdue {
		err := retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
			return s.uow.RunInTx(ctx, func(ctx context.Context) error {
				current, err := s.requests.Get(ctx, r.ID)
				if err != nil {
					return err
				}
				// A racing respond or submit may have resolved it first.
				if current.Status.Terminal() || current.EffectiveStatus(now) != RequestExpired {
					return nil
				}
				return s.persistExpiry(ctx, current, now)
			})
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "sweep failed for request",
				"request_id", r.ID,
				"error", err,
			)
			continue
		}
		swept++
	}
	return swept, nil
}
