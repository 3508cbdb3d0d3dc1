package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
	"docshelf/pkg/platform/tx"
)

// PostgresStore persists documents in the documents table.
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

func (s *PostgresStore) Create(ctx context.Context, doc Document) error {
	var orgID any
	if doc.OrgID != nil {
		orgID = doc.OrgID.String()
	}
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO documents
			(id, title, uploader_id, org_id, visibility, is_premium, price,
			 status, deactivated, storage_key, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		doc.ID.String(), doc.Title, doc.UploaderID.String(), orgID,
		string(doc.Visibility), doc.IsPremium, doc.Price,
		string(doc.Status), doc.Deactivated, doc.StorageKey,
		doc.Version, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.DocumentID) (Document, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, title, uploader_id, org_id, visibility, is_premium, price,
		       status, deactivated, storage_key, version, created_at, updated_at
		FROM documents
		WHERE id = $1`,
		id.String(),
	)
	return scanDocument(row)
}

// Update writes the document only when the stored version still matches.
func (s *PostgresStore) Update(ctx context.Context, doc Document) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE documents
		SET title = $2, visibility = $3, is_premium = $4, price = $5,
		    status = $6, deactivated = $7, version = version + 1, updated_at = $8
		WHERE id = $1 AND version = $9`,
		doc.ID.String(), doc.Title, string(doc.Visibility), doc.IsPremium,
		doc.Price, string(doc.Status), doc.Deactivated, doc.UpdatedAt,
		doc.Version,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document rows affected: %w", err)
	}
	if affected == 0 {
		// Distinguish a stale version from a missing row.
		var exists bool
		if err := s.q(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`,
			doc.ID.String(),
		).Scan(&exists); err != nil {
			return fmt.Errorf("check document existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]Document, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id, title, uploader_id, org_id, visibility, is_premium, price,
		       status, deactivated, storage_key, version, created_at, updated_at
		FROM documents
		WHERE status = $1
		ORDER BY created_at`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents by status: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		doc                Document
		id, uploaderID     string
		orgID              sql.NullString
		visibility, status string
	)
	err := row.Scan(&id, &doc.Title, &uploaderID, &orgID, &visibility,
		&doc.IsPremium, &doc.Price, &status, &doc.Deactivated,
		&doc.StorageKey, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}

	doc.ID, err = domain.ParseDocumentID(id)
	if err != nil {
		return Document{}, fmt.Errorf("parse document id: %w", err)
	}
	doc.UploaderID, err = domain.ParseUserID(uploaderID)
	if err != nil {
		return Document{}, fmt.Errorf("parse uploader id: %w", err)
	}
	if orgID.Valid {
		parsed, err := domain.ParseOrgID(orgID.String)
		if err != nil {
			return Document{}, fmt.Errorf("parse org id: %w", err)
		}
		doc.OrgID = &parsed
	}
	doc.Visibility = Visibility(visibility)
	doc.Status = Status(status)
	return doc, nil
}
