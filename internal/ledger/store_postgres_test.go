package ledger

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

func newRedemption() Redemption {
	return Redemption{
		ID:          domain.NewRedemptionID(),
		ReaderID:    domain.NewUserID(),
		DocumentID:  domain.NewDocumentID(),
		PointsSpent: 50,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPostgresRedeem(t *testing.T) {
	t.Run("debit and insert commit together", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO reader_balances`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO document_redemptions`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE reader_balances`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewPostgresStore(db).Redeem(context.Background(), newRedemption())
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate pair rolls back before any debit", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO reader_balances`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO document_redemptions`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = NewPostgresStore(db).Redeem(context.Background(), newRedemption())
		assert.ErrorIs(t, err, sentinel.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance rolls back the inserted redemption", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO reader_balances`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO document_redemptions`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE reader_balances`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = NewPostgresStore(db).Redeem(context.Background(), newRedemption())
		assert.ErrorIs(t, err, sentinel.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresBalance(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	reader := domain.NewUserID()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectQuery(`SELECT points FROM reader_balances`).
			WithArgs(reader.String()).
			WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(120))

		points, err := store.Balance(context.Background(), reader)
		require.NoError(t, err)
		assert.Equal(t, 120, points)
	})

	t.Run("no row reads as zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT points FROM reader_balances`).
			WithArgs(reader.String()).
			WillReturnRows(sqlmock.NewRows([]string{"points"}))

		points, err := store.Balance(context.Background(), reader)
		require.NoError(t, err)
		assert.Equal(t, 0, points)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
