package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
)

// PostgresStore persists moderation jobs in the moderation_jobs table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) q(ctx context.Context) tx.Querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, job Job) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO moderation_jobs (id, document_id, status, verdict, error, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.DocumentID.String(), string(job.Status), string(job.Verdict),
		job.Error, job.CreatedAt, job.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert moderation job: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, jobID string) (Job, error) {
	var (
		job     Job
		docID   string
		status  string
		verdict string
	)
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, document_id, status, verdict, error, created_at, completed_at
		FROM moderation_jobs
		WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &docID, &status, &verdict, &job.Error, &job.CreatedAt, &job.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("query moderation job: %w", err)
	}
	job.DocumentID, err = domain.ParseDocumentID(docID)
	if err != nil {
		return Job{}, fmt.Errorf("parse document id: %w", err)
	}
	job.Status = JobStatus(status)
	job.Verdict = Verdict(verdict)
	return job, nil
}

// Complete writes the terminal fields only while the row is still pending.
func (s *PostgresStore) Complete(ctx context.Context, job Job) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE moderation_jobs
		SET status = $2, verdict = $3, error = $4, completed_at = $5
		WHERE id = $1 AND status = $6`,
		job.ID, string(job.Status), string(job.Verdict), job.Error,
		job.CompletedAt, string(JobPending),
	)
	if err != nil {
		return fmt.Errorf("complete moderation job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete moderation job rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := s.q(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM moderation_jobs WHERE id = $1)`,
			job.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check moderation job existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}
