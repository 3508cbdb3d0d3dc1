// Package access decides, for any (user, document) pair, whether content may
// be served. The evaluator holds no state of its own; every answer is
// re-derived from the document, directory, ledger and review stores, so it
// stays consistent as those evolve and must never be cached across requests.
package access

import (
	"context"
	"log/slog"

	"docshelf/internal/document"
	"docshelf/internal/identity"
	"docshelf/internal/ledger"
	"docshelf/internal/review"
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/requestcontext"
)

// Evaluator answers hasAccess questions.
type Evaluator struct {
	docs        document.Store
	directory   identity.Store
	redemptions ledger.Store
	requests    review.RequestStore
	logger      *slog.Logger

	grants []grant
}

// grant is one clause of the access disjunction. Names show up in debug logs
// to explain why access was given.
type grant struct {
	name   string
	allows func(ctx context.Context, user identity.User, doc document.Document) (bool, error)
}

func NewEvaluator(
	docs document.Store,
	directory identity.Store,
	redemptions ledger.Store,
	requests review.RequestStore,
	logger *slog.Logger,
) *Evaluator {
	e := &Evaluator{
		docs:        docs,
		directory:   directory,
		redemptions: redemptions,
		requests:    requests,
		logger:      logger,
	}
	// First true wins. The order documents intent; no grant depends on an
	// earlier one having been checked.
	e.grants = []grant{
		{name: "uploader", allows: e.isUploader},
		{name: "visibility", allows: e.visibilityPermits},
		{name: "redemption", allows: e.hasRedemption},
		{name: "reviewer", allows: e.isActiveReviewer},
		{name: "admin", allows: e.isAdminOver},
	}
	return e
}

// HasAccess reports whether the user may read the document's content.
//
// Deleted documents stay readable only to business admins for audit.
// Deactivated documents take a restricted path: the uploader and
// administrators keep access while the document is out of circulation.
func (e *Evaluator) HasAccess(ctx context.Context, userID domain.UserID, documentID domain.DocumentID) (bool, error) {
	doc, err := e.docs.Get(ctx, documentID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
	}
	user, err := e.directory.GetUser(ctx, userID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeNotFound, "user not found")
	}

	if doc.Status == document.StatusDeleted {
		return user.Role == domain.RoleBusinessAdmin, nil
	}
	if doc.Deactivated {
		for _, g := range []grant{
			{name: "uploader", allows: e.isUploader},
			{name: "admin", allows: e.isAdminOver},
		} {
			ok, err := g.allows(ctx, user, doc)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	for _, g := range e.grants {
		ok, err := g.allows(ctx, user, doc)
		if err != nil {
			return false, err
		}
		if ok {
			e.logger.DebugContext(ctx, "access granted",
				"grant", g.name,
				"user_id", userID,
				"document_id", documentID,
			)
			return true, nil
		}
	}
	return false, nil
}

func (e *Evaluator) isUploader(_ context.Context, user identity.User, doc document.Document) (bool, error) {
	return doc.UploaderID == user.ID, nil
}

// visibilityPermits serves published non-premium content by visibility.
// Premium content is never served on visibility alone, and unpublished
// content is not served to anyone through this grant.
func (e *Evaluator) visibilityPermits(ctx context.Context, user identity.User, doc document.Document) (bool, error) {
	if doc.IsPremium || doc.Status != document.StatusActive {
		return false, nil
	}
	switch doc.Visibility {
	case document.VisibilityPublic:
		return true, nil
	case document.VisibilityInternal:
		if doc.OrgID == nil {
			return false, nil
		}
		membership, ok, err := e.directory.GetMembership(ctx, user.ID, *doc.OrgID)
		if err != nil {
			return false, dErrors.Wrap(err, dErrors.CodeInternal, "look up membership")
		}
		return ok && membership.Joined(), nil
	default:
		// Private is covered by the uploader grant.
		return false, nil
	}
}

func (e *Evaluator) hasRedemption(ctx context.Context, user identity.User, doc document.Document) (bool, error) {
	ok, err := e.redemptions.HasRedemption(ctx, user.ID, doc.ID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "check redemption")
	}
	return ok, nil
}

// isActiveReviewer grants temporary read access while the user's accepted
// assignment on this document is alive, deadline judged lazily.
func (e *Evaluator) isActiveReviewer(ctx context.Context, user identity.User, doc document.Document) (bool, error) {
	r, ok, err := e.requests.GetByPair(ctx, doc.ID, user.ID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "look up review request")
	}
	if !ok {
		return false, nil
	}
	return r.EffectiveStatus(requestcontext.Now(ctx)) == review.RequestAccepted, nil
}

func (e *Evaluator) isAdminOver(ctx context.Context, user identity.User, doc document.Document) (bool, error) {
	if user.Role == domain.RoleBusinessAdmin {
		return true, nil
	}
	if user.Role != domain.RoleOrgAdmin || doc.OrgID == nil {
		return false, nil
	}
	membership, ok, err := e.directory.GetMembership(ctx, user.ID, *doc.OrgID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "look up membership")
	}
	return ok && membership.Joined() && membership.Admin, nil
}
