package document

import (
	"context"

	"docshelf/pkg/domain"
)

// Store persists documents.
//
// Update performs an optimistic write: it only lands when the stored version
// equals doc.Version, then bumps the version by one. A mismatch returns
// sentinel.ErrConflict so services can re-read and retry.
type Store interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, id domain.DocumentID) (Document, error)
	Update(ctx context.Context, doc Document) error
	ListByStatus(ctx context.Context, status Status) ([]Document, error)
}
