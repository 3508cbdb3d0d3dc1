package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
)

// PostgresStore persists the ledger in reader_balances and
// document_redemptions. The at-most-once property rides on the unique index
// over (reader_id, document_id); the never-negative property on a guarded
// UPDATE. Both checks run inside one transaction per Redeem call.
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

func (s *PostgresStore) Balance(ctx context.Context, readerID domain.UserID) (int, error) {
	var points int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT points FROM reader_balances WHERE reader_id = $1`,
		readerID.String(),
	).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query balance: %w", err)
	}
	return points, nil
}

func (s *PostgresStore) Credit(ctx context.Context, readerID domain.UserID, points int) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO reader_balances (reader_id, points)
		VALUES ($1, $2)
		ON CONFLICT (reader_id)
		DO UPDATE SET points = reader_balances.points + EXCLUDED.points`,
		readerID.String(), points,
	)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

// Redeem runs the check-debit-insert sequence in one transaction. When a
// transaction is already carried in ctx it joins that one; otherwise it
// opens its own.
func (s *PostgresStore) Redeem(ctx context.Context, r Redemption) error {
	if _, ok := tx.From(ctx); ok {
		return s.redeem(ctx, s.q(ctx), r)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin redeem tx: %w", err)
	}
	if err := s.redeem(ctx, sqlTx, r); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit redeem tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) redeem(ctx context.Context, q tx.Querier, r Redemption) error {
	// A reader with no balance row yet still redeems zero-priced documents.
	if _, err := q.ExecContext(ctx, `
		INSERT INTO reader_balances (reader_id, points)
		VALUES ($1, 0)
		ON CONFLICT (reader_id) DO NOTHING`,
		r.ReaderID.String(),
	); err != nil {
		return fmt.Errorf("ensure balance row: %w", err)
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO document_redemptions (id, reader_id, document_id, points_spent, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (reader_id, document_id) DO NOTHING`,
		r.ID.String(), r.ReaderID.String(), r.DocumentID.String(), r.PointsSpent, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert redemption rows affected: %w", err)
	}
	if inserted == 0 {
		return sentinel.ErrDuplicate
	}

	res, err = q.ExecContext(ctx, `
		UPDATE reader_balances
		SET points = points - $2
		WHERE reader_id = $1 AND points >= $2`,
		r.ReaderID.String(), r.PointsSpent,
	)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	debited, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit balance rows affected: %w", err)
	}
	if debited == 0 {
		return sentinel.ErrInsufficientBalance
	}
	return nil
}

func (s *PostgresStore) HasRedemption(ctx context.Context, readerID domain.UserID, documentID domain.DocumentID) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM document_redemptions
			WHERE reader_id = $1 AND document_id = $2
		)`,
		readerID.String(), documentID.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check redemption: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListRedemptions(ctx context.Context, readerID domain.UserID) ([]Redemption, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id, reader_id, document_id, points_spent, created_at
		FROM document_redemptions
		WHERE reader_id = $1
		ORDER BY created_at`,
		readerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var out []Redemption
	for rows.Next() {
		var (
			r                 Redemption
			id, reader, docID string
		)
		if err := rows.Scan(&id, &reader, &docID, &r.PointsSpent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		parsedID, err := domain.ParseRedemptionID(id)
		if err != nil {
			return nil, err
		}
		r.ID = parsedID
		if r.ReaderID, err = domain.ParseUserID(reader); err != nil {
			return nil, err
		}
		if r.DocumentID, err = domain.ParseDocumentID(docID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
