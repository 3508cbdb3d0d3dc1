package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"docshelf/internal/document"
	"docshelf/internal/notification"
	"docshelf/internal/platform/metrics"
	"docshelf/internal/storage"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/platform/retry"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
	"docshelf/pkg/requestcontext"
)

// contentURLTTL must outlive the collaborator's queue; jobs picked up an
// hour after submission still need a working link.
const contentURLTTL = time.Hour

// PointAwarder credits uploader rewards. Implemented by the ledger service.
type PointAwarder interface {
	Award(ctx context.Context, userID domain.UserID, points int) error
}

// Service issues moderation jobs and merges callbacks into document state.
type Service struct {
	jobs        Store
	documents   document.Store
	blobs       storage.Storage
	awards      PointAwarder
	dispatcher  Dispatcher
	notifier    notification.Notifier
	metrics     *metrics.Metrics
	uow         tx.Runner
	awardPoints int
	logger      *slog.Logger
}

func NewService(
	jobs Store,
	documents document.Store,
	blobs storage.Storage,
	awards PointAwarder,
	dispatcher Dispatcher,
	notifier notification.Notifier,
	m *metrics.Metrics,
	uow tx.Runner,
	awardPoints int,
	logger *slog.Logger,
) *Service {
	return &Service{
		jobs:        jobs,
		documents:   documents,
		blobs:       blobs,
		awards:      awards,
		dispatcher:  dispatcher,
		notifier:    notifier,
		metrics:     m,
		uow:         uow,
		awardPoints: awardPoints,
		logger:      logger,
	}
}

// Submit issues a moderation job for a freshly uploaded document and hands
// it to the collaborator. The hand-off itself runs detached; the collaborator
// answers through the callback endpoint whenever it finishes.
func (s *Service) Submit(ctx context.Context, doc document.Document) error {
	job := Job{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Status:     JobPending,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "create moderation job")
	}

	contentURL, err := s.blobs.PresignGet(ctx, doc.StorageKey, contentURLTTL)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "presign content for moderation")
	}

	go func(ctx context.Context) {
		if err := s.dispatcher.Dispatch(ctx, job, contentURL); err != nil {
			s.logger.Error("moderation dispatch failed",
				"job_id", job.ID,
				"document_id", job.DocumentID,
				"error", err,
			)
		}
	}(context.WithoutCancel(ctx))

	s.logger.InfoContext(ctx, "moderation job issued", "job_id", job.ID, "document_id", doc.ID)
	return nil
}

// HandleCallback merges a collaborator callback into local state.
//
// Unknown jobs are rejected without mutation. A replay of the payload a job
// already absorbed is accepted as a no-op; a different terminal payload for
// the same job is a conflict. The job write and the document transition land
// in one unit of work, retried a bounded number of times when a concurrent
// writer bumps the document version first.
func (s *Service) HandleCallback(ctx context.Context, payload CallbackPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	var (
		outcome  Verdict
		replayed bool
		updated  document.Document
	)
	err := retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		replayed = false
		return s.uow.RunInTx(ctx, func(ctx context.Context) error {
			job, err := s.jobs.Get(ctx, payload.JobID)
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "unknown moderation job")
			}
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "load moderation job")
			}
			if job.Status.Terminal() {
				if job.matchesPayload(payload) {
					replayed = true
					return nil
				}
				return dErrors.New(dErrors.CodeConflict, "moderation job already resolved differently")
			}

			now := requestcontext.Now(ctx)
			job.CompletedAt = &now
			switch payload.Status {
			case callbackCompleted:
				job.Status = JobCompleted
				job.Verdict = Verdict(payload.Result.Verdict)
			case callbackFailed:
				job.Status = JobFailed
				job.Verdict = VerdictReject
				job.Error = payload.Error
			}
			// Document write first: a version conflict retries against a
			// still-pending job instead of reading this attempt's own
			// terminal write as a replay.
			updated, err = s.applyVerdict(ctx, job)
			if err != nil {
				return err
			}
			outcome = job.Verdict
			return s.jobs.Complete(ctx, job)
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "document was updated concurrently")
		}
		return err
	}
	if replayed {
		s.logger.InfoContext(ctx, "moderation callback replayed", "job_id", payload.JobID)
		return nil
	}

	if s.metrics != nil {
		s.metrics.ModerationResults.WithLabelValues(string(outcome)).Inc()
	}
	s.logger.InfoContext(ctx, "moderation callback applied",
		"job_id", payload.JobID,
		"document_id", updated.ID,
		"verdict", outcome,
		"status", updated.Status,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventDocumentModerated,
		DocumentID: updated.ID,
		Recipient:  updated.UploaderID,
		Detail:     string(outcome),
		OccurredAt: requestcontext.Now(ctx),
	})
	return nil
}

// applyVerdict advances the document automaton for a freshly resolved job.
// A passing verdict on a non-premium document also credits the uploader's
// reward inside the same unit of work.
func (s *Service) applyVerdict(ctx context.Context, job Job) (document.Document, error) {
	doc, err := s.documents.Get(ctx, job.DocumentID)
	if err != nil {
		return document.Document{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	if doc.Status != document.StatusUnmoderated {
		return document.Document{}, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("moderation verdict for document in state %s", doc.Status))
	}

	next := document.StatusModerationRejected
	if job.Verdict == VerdictPass {
		next = document.StatusActive
		if doc.IsPremium {
			next = document.StatusModerated
		}
	}
	doc.Status = next
	doc.UpdatedAt = requestcontext.Now(ctx)
	if err := s.documents.Update(ctx, doc); err != nil {
		return document.Document{}, err
	}
	doc.Version++

	if next == document.StatusActive && s.awardPoints > 0 {
		if err := s.awards.Award(ctx, doc.UploaderID, s.awardPoints); err != nil {
			return document.Document{}, err
		}
	}
	return doc, nil
}

// matchesPayload reports whether the payload describes the outcome the job
// already holds, meaning the callback is a harmless replay.
func (j Job) matchesPayload(p CallbackPayload) bool {
	switch p.Status {
	case callbackCompleted:
		return j.Status == JobCompleted && j.Verdict == Verdict(p.Result.Verdict)
	case callbackFailed:
		return j.Status == JobFailed
	}
	return false
}
