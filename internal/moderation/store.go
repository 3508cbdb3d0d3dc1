package moderation

import "context"

// Store persists moderation jobs.
//
// Complete is a compare-and-set: it writes the terminal fields only while
// the stored job is still pending, returning sentinel.ErrConflict once a
// callback has already landed. That check is what serializes racing
// callbacks for the same job.
type Store interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, jobID string) (Job, error)
	Complete(ctx context.Context, job Job) error
}
