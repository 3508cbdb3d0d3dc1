package document

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

func TestPostgresStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	id := domain.NewDocumentID()
	uploader := domain.NewUserID()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "title", "uploader_id", "org_id", "visibility", "is_premium",
			"price", "status", "deactivated", "storage_key", "version",
			"created_at", "updated_at",
		}).AddRow(id.String(), "Guide", uploader.String(), nil, "public", true,
			25, "moderated", false, "documents/x/guide.pdf", 3, now, now)
		mock.ExpectQuery(`SELECT .+ FROM documents`).WithArgs(id.String()).WillReturnRows(rows)

		doc, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, StatusModerated, doc.Status)
		assert.Equal(t, 25, doc.Price)
		assert.Equal(t, 3, doc.Version)
		assert.Nil(t, doc.OrgID)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM documents`).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Get(context.Background(), id)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateVersionCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	doc := Document{
		ID:         domain.NewDocumentID(),
		Title:      "Guide",
		Visibility: VisibilityPublic,
		Status:     StatusActive,
		Version:    2,
		UpdatedAt:  time.Now().UTC(),
	}

	t.Run("matching version lands", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, store.Update(context.Background(), doc))
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.ErrorIs(t, store.Update(context.Background(), doc), sentinel.ErrConflict)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorIs(t, store.Update(context.Background(), doc), sentinel.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
