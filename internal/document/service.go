package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"docshelf/internal/identity"
	"docshelf/internal/notification"
	"docshelf/internal/storage"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/platform/retry"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
	"docshelf/pkg/requestcontext"
)

// ModerationSubmitter hands a freshly uploaded document to the moderation
// pipeline. Implemented by the moderation service.
type ModerationSubmitter interface {
	Submit(ctx context.Context, doc Document) error
}

// Service owns document lifecycle operations. Status transitions driven by
// moderation and review live here so the automaton is enforced in one place.
// Standalone mutations run through the shared unit-of-work runner and so
// serialize with the compound moderation and review writes; the transition
// helpers run inside those callers' units and must not take the runner
// themselves.
type Service struct {
	store      Store
	blobs      storage.Storage
	directory  identity.Store
	moderation ModerationSubmitter
	notifier   notification.Notifier
	uow        tx.Runner
	logger     *slog.Logger
}

func NewService(
	store Store,
	blobs storage.Storage,
	directory identity.Store,
	moderation ModerationSubmitter,
	notifier notification.Notifier,
	uow tx.Runner,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:      store,
		blobs:      blobs,
		directory:  directory,
		moderation: moderation,
		notifier:   notifier,
		uow:        uow,
		logger:     logger,
	}
}

// UploadInput carries everything needed to create a document.
type UploadInput struct {
	Title       string
	Visibility  Visibility
	IsPremium   bool
	Price       int
	OrgID       *domain.OrgID
	Content     io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// Upload stores the blob, creates the document in its initial state and
// hands it to moderation. A failed moderation hand-off does not fail the
// upload; the document simply stays unmoderated until resubmitted.
func (s *Service) Upload(ctx context.Context, ac authz.Context, in UploadInput) (Document, error) {
	now := requestcontext.Now(ctx)
	doc := Document{
		ID:         domain.NewDocumentID(),
		Title:      in.Title,
		UploaderID: ac.UserID,
		OrgID:      in.OrgID,
		Visibility: in.Visibility,
		IsPremium:  in.IsPremium,
		Price:      in.Price,
		Status:     StatusUnmoderated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	if in.OrgID != nil {
		membership, ok, err := s.directory.GetMembership(ctx, ac.UserID, *in.OrgID)
		if err != nil {
			return Document{}, dErrors.Wrap(err, dErrors.CodeInternal, "look up membership")
		}
		if !ok || !membership.Joined() {
			return Document{}, dErrors.New(dErrors.CodeForbidden, "uploader is not a member of the organization")
		}
	}

	key := path.Join("documents", doc.ID.String(), in.Filename)
	storedKey, err := s.blobs.Put(ctx, key, in.Content, storage.PutOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
	})
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeInternal, "store document content")
	}
	doc.StorageKey = storedKey

	if err := s.store.Create(ctx, doc); err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeInternal, "create document")
	}

	if err := s.moderation.Submit(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "moderation hand-off failed",
			"document_id", doc.ID,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "document uploaded",
		"document_id", doc.ID,
		"uploader_id", ac.UserID,
		"premium", doc.IsPremium,
	)
	return doc, nil
}

// Get fetches a document by ID.
func (s *Service) Get(ctx context.Context, id domain.DocumentID) (Document, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	return doc, nil
}

// contentURLTTL bounds how long a handed-out download link stays valid.
const contentURLTTL = 15 * time.Minute

// ContentURL returns a short-lived download URL for the document's blob.
func (s *Service) ContentURL(ctx context.Context, doc Document) (string, error) {
	url, err := s.blobs.PresignGet(ctx, doc.StorageKey, contentURLTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "presign document content")
	}
	return url, nil
}

// Deactivate pulls a document from circulation without touching its
// lifecycle status. Business admins may deactivate anything; org admins only
// documents of their own organization.
func (s *Service) Deactivate(ctx context.Context, ac authz.Context, id domain.DocumentID) (Document, error) {
	return s.setDeactivated(ctx, ac, id, true)
}

// Activate restores a deactivated document to circulation.
func (s *Service) Activate(ctx context.Context, ac authz.Context, id domain.DocumentID) (Document, error) {
	return s.setDeactivated(ctx, ac, id, false)
}

func (s *Service) setDeactivated(ctx context.Context, ac authz.Context, id domain.DocumentID, deactivated bool) (Document, error) {
	var updated Document
	err := retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		return s.uow.RunInTx(ctx, func(ctx context.Context) error {
			doc, err := s.store.Get(ctx, id)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
			}
			if err := s.requireAdminOver(ctx, ac, doc); err != nil {
				return err
			}
			if doc.Status.Terminal() {
				return dErrors.New(dErrors.CodeInvalidState, "document lifecycle is terminal")
			}
			if doc.Deactivated == deactivated {
				updated = doc
				return nil
			}
			doc.Deactivated = deactivated
			doc.UpdatedAt = requestcontext.Now(ctx)
			if err := s.store.Update(ctx, doc); err != nil {
				return err
			}
			doc.Version++
			updated = doc
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Document{}, dErrors.Wrap(err, dErrors.CodeConflict, "document was updated concurrently")
		}
		return Document{}, err
	}

	s.logger.InfoContext(ctx, "document circulation changed",
		"document_id", id,
		"deactivated", deactivated,
		"actor_id", ac.UserID,
	)
	s.notifier.Publish(ctx, notification.Event{
		Type:       notification.EventDocumentStatusChanged,
		DocumentID: id,
		Recipient:  updated.UploaderID,
		Actor:      ac.UserID,
		Detail:     fmt.Sprintf("deactivated=%t", deactivated),
		OccurredAt: requestcontext.Now(ctx),
	})
	return updated, nil
}

// Delete soft-deletes a document. Only the uploader or a business admin may
// delete; the row and blob are kept for audit.
func (s *Service) Delete(ctx context.Context, ac authz.Context, id domain.DocumentID) error {
	err := retry.OnConflict(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		return s.uow.RunInTx(ctx, func(ctx context.Context) error {
			doc, err := s.store.Get(ctx, id)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
			}
			if doc.UploaderID != ac.UserID && !ac.IsBusinessAdmin() {
				return dErrors.New(dErrors.CodeForbidden, "only the uploader or a business admin may delete")
			}
			if doc.Status == StatusDeleted {
				return nil
			}
			doc.Status = StatusDeleted
			doc.UpdatedAt = requestcontext.Now(ctx)
			if err := s.store.Update(ctx, doc); err != nil {
				return err
			}
			s.logger.InfoContext(ctx, "document deleted", "document_id", id, "actor_id", ac.UserID)
			return nil
		})
	})
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "document was updated concurrently")
	}
	return err
}

func (s *Service) requireAdminOver(ctx context.Context, ac authz.Context, doc Document) error {
	if ac.IsBusinessAdmin() {
		return nil
	}
	if ac.Role == domain.RoleOrgAdmin && doc.OrgID != nil {
		membership, ok, err := s.directory.GetMembership(ctx, ac.UserID, *doc.OrgID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "look up membership")
		}
		if ok && membership.Joined() && membership.Admin {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeForbidden, "administrator access required")
}

// transition applies one automaton step and persists it. Callers inside a
// unit of work get a single attempt; a version conflict surfaces as
// sentinel.ErrConflict for the enclosing retry.
func (s *Service) transition(ctx context.Context, id domain.DocumentID, next Status) (Document, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	if !doc.Status.CanTransitionTo(next) {
		return Document{}, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("cannot transition document from %s to %s", doc.Status, next))
	}
	doc.Status = next
	doc.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, doc); err != nil {
		return Document{}, err
	}
	doc.Version++
	return doc, nil
}

// MarkModerationPassed records a passing moderation verdict. Premium
// documents move to the assignable state and wait for a human reviewer;
// non-premium documents publish immediately.
func (s *Service) MarkModerationPassed(ctx context.Context, id domain.DocumentID) (Document, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	if doc.Status != StatusUnmoderated {
		return Document{}, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("moderation verdict for document in state %s", doc.Status))
	}
	next := StatusActive
	if doc.IsPremium {
		next = StatusModerated
	}
	return s.transition(ctx, id, next)
}

// MarkModerationRejected records a failing moderation verdict.
func (s *Service) MarkModerationRejected(ctx context.Context, id domain.DocumentID) (Document, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	if doc.Status != StatusUnmoderated {
		return Document{}, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("moderation verdict for document in state %s", doc.Status))
	}
	return s.transition(ctx, id, StatusModerationRejected)
}

// BeginHumanReview moves an assignable document into review when a reviewer
// accepts the assignment.
func (s *Service) BeginHumanReview(ctx context.Context, id domain.DocumentID) (Document, error) {
	return s.transition(ctx, id, StatusPendingHumanReview)
}

// CompleteHumanReview resolves a review: approval publishes the document,
// rejection ends its lifecycle.
func (s *Service) CompleteHumanReview(ctx context.Context, id domain.DocumentID, approved bool) (Document, error) {
	next := StatusModerationRejected
	if approved {
		next = StatusActive
	}
	return s.transition(ctx, id, next)
}

// ReturnToAssignable puts a document back in the review pool after its
// accepted assignment expired without a submitted review.
func (s *Service) ReturnToAssignable(ctx context.Context, id domain.DocumentID) (Document, error) {
	return s.transition(ctx, id, StatusModerated)
}
