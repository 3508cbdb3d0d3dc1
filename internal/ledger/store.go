package ledger

import (
	"context"

	"docshelf/pkg/domain"
)

// Store persists balances and redemptions.
//
// Redeem is the critical operation: the existence check, the balance check,
// the debit and the redemption insert happen as one atomic unit. It returns
// sentinel.ErrDuplicate when the pair is already redeemed and
// sentinel.ErrInsufficientBalance when the reader cannot cover the price,
// leaving the balance untouched in both cases.
type Store interface {
	Balance(ctx context.Context, readerID domain.UserID) (int, error)
	Credit(ctx context.Context, readerID domain.UserID, points int) error
	Redeem(ctx context.Context, r Redemption) error
	HasRedemption(ctx context.Context, readerID domain.UserID, documentID domain.DocumentID) (bool, error)
	ListRedemptions(ctx context.Context, readerID domain.UserID) ([]Redemption, error)
}
