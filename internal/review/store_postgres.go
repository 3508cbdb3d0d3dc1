package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresRequestStore persists assignments in review_requests. Pair
// uniqueness rides on the unique index over (document_id, reviewer_id).
type PostgresRequestStore struct {
	db *sql.DB
}

func NewPostgresRequestStore(db *sql.DB) *PostgresRequestStore {
	return &PostgresRequestStore{db: db}
}

func (s *PostgresRequestStore) q(ctx context.Context) tx.Querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const requestColumns = `id, document_id, reviewer_id, assigned_by, note, status,
	reason, response_deadline, review_deadline, version, created_at, updated_at`

func (s *PostgresRequestStore) Create(ctx context.Context, r ReviewRequest) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO review_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID.String(), r.DocumentID.String(), r.ReviewerID.String(),
		r.AssignedBy.String(), r.Note, string(r.Status), r.Reason,
		r.ResponseDeadline, r.ReviewDeadline, r.Version, r.CreatedAt, r.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return sentinel.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert review request: %w", err)
	}
	return nil
}

func (s *PostgresRequestStore) Get(ctx context.Context, id domain.ReviewRequestID) (ReviewRequest, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM review_requests WHERE id = $1`,
		id.String(),
	)
	return scanRequest(row)
}

func (s *PostgresRequestStore) GetByPair(ctx context.Context, documentID domain.DocumentID, reviewerID domain.UserID) (ReviewRequest, bool, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM review_requests
		 WHERE document_id = $1 AND reviewer_id = $2`,
		documentID.String(), reviewerID.String(),
	)
	r, err := scanRequest(row)
	if errors.Is(err, sentinel.ErrNotFound) {
		return ReviewRequest{}, false, nil
	}
	if err != nil {
		return ReviewRequest{}, false, err
	}
	return r, true, nil
}

func (s *PostgresRequestStore) Update(ctx context.Context, r ReviewRequest) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE review_requests
		SET status = $2, reason = $3, review_deadline = $4,
		    version = version + 1, updated_at = $5
		WHERE id = $1 AND version = $6`,
		r.ID.String(), string(r.Status), r.Reason, r.ReviewDeadline,
		r.UpdatedAt, r.Version,
	)
	if err != nil {
		return fmt.Errorf("update review request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review request rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := s.q(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM review_requests WHERE id = $1)`,
			r.ID.String(),
		).Scan(&exists); err != nil {
			return fmt.Errorf("check review request existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresRequestStore) ListByDocument(ctx context.Context, documentID domain.DocumentID) ([]ReviewRequest, error) {
	return s.list(ctx, `document_id = $1`, documentID.String())
}

func (s *PostgresRequestStore) ListByReviewer(ctx context.Context, reviewerID domain.UserID) ([]ReviewRequest, error) {
	return s.list(ctx, `reviewer_id = $1`, reviewerID.String())
}

func (s *PostgresRequestStore) ListOverdue(ctx context.Context, now time.Time) ([]ReviewRequest, error) {
	return s.list(ctx, `
		(status = 'pending' AND response_deadline < $1)
		OR (status = 'accepted' AND review_deadline IS NOT NULL AND review_deadline < $1)`,
		now)
}

func (s *PostgresRequestStore) list(ctx context.Context, where string, arg any) ([]ReviewRequest, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+requestColumns+` FROM review_requests WHERE `+where+` ORDER BY created_at`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("list review requests: %w", err)
	}
	defer rows.Close()

	var out []ReviewRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (ReviewRequest, error) {
	var (
		r                             ReviewRequest
		id, docID, reviewer, assigner string
		status                        string
		reviewDeadline                sql.NullTime
	)
	err := row.Scan(&id, &docID, &reviewer, &assigner, &r.Note, &status,
		&r.Reason, &r.ResponseDeadline, &reviewDeadline, &r.Version,
		&r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ReviewRequest{}, sentinel.ErrNotFound
	}
	if err != nil {
		return ReviewRequest{}, fmt.Errorf("scan review request: %w", err)
	}

	if r.ID, err = domain.ParseReviewRequestID(id); err != nil {
		return ReviewRequest{}, err
	}
	if r.DocumentID, err = domain.ParseDocumentID(docID); err != nil {
		return ReviewRequest{}, err
	}
	if r.ReviewerID, err = domain.ParseUserID(reviewer); err != nil {
		return ReviewRequest{}, err
	}
	if r.AssignedBy, err = domain.ParseUserID(assigner); err != nil {
		return ReviewRequest{}, err
	}
	r.Status = RequestStatus(status)
	if reviewDeadline.Valid {
		t := reviewDeadline.Time
		r.ReviewDeadline = &t
	}
	return r, nil
}

// PostgresReviewStore persists submitted reviews in document_reviews.
type PostgresReviewStore struct {
	db *sql.DB
}

func NewPostgresReviewStore(db *sql.DB) *PostgresReviewStore {
	return &PostgresReviewStore{db: db}
}

func (s *PostgresReviewStore) q(ctx context.Context) tx.Querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresReviewStore) Create(ctx context.Context, review DocumentReview) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO document_reviews (id, request_id, document_id, reviewer_id, decision, report, report_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		review.ID.String(), review.RequestID.String(), review.DocumentID.String(),
		review.ReviewerID.String(), string(review.Decision), review.Report,
		review.ReportKey, review.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return sentinel.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert document review: %w", err)
	}
	return nil
}

func (s *PostgresReviewStore) GetByRequest(ctx context.Context, requestID domain.ReviewRequestID) (DocumentReview, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, request_id, document_id, reviewer_id, decision, report, report_key, created_at
		FROM document_reviews
		WHERE request_id = $1`,
		requestID.String(),
	)
	return scanReview(row)
}

func (s *PostgresReviewStore) ListByDocument(ctx context.Context, documentID domain.DocumentID) ([]DocumentReview, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id, request_id, document_id, reviewer_id, decision, report, report_key, created_at
		FROM document_reviews
		WHERE document_id = $1
		ORDER BY created_at`,
		documentID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list document reviews: %w", err)
	}
	defer rows.Close()

	var out []DocumentReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func scanReview(row rowScanner) (DocumentReview, error) {
	var (
		review                         DocumentReview
		id, requestID, docID, reviewer string
		decision                       string
	)
	err := row.Scan(&id, &requestID, &docID, &reviewer, &decision,
		&review.Report, &review.ReportKey, &review.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentReview{}, sentinel.ErrNotFound
	}
	if err != nil {
		return DocumentReview{}, fmt.Errorf("scan document review: %w", err)
	}

	if review.ID, err = domain.ParseReviewID(id); err != nil {
		return DocumentReview{}, err
	}
	if review.RequestID, err = domain.ParseReviewRequestID(requestID); err != nil {
		return DocumentReview{}, err
	}
	if review.DocumentID, err = domain.ParseDocumentID(docID); err != nil {
		return DocumentReview{}, err
	}
	if review.ReviewerID, err = domain.ParseUserID(reviewer); err != nil {
		return DocumentReview{}, err
	}
	review.Decision = Decision(decision)
	return review, nil
}
