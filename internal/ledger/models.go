// Package ledger is the points economy: reader balances and premium document
// redemptions. Balances never go negative, and a (reader, document) pair is
// redeemed at most once, enforced at the store rather than by pre-checks.
package ledger

import (
	"time"

	"docshelf/pkg/domain"
)

// Redemption records a reader's one-time purchase of a premium document.
// Rows are append-only; the record itself is the permanent access grant.
type Redemption struct {
	ID          domain.RedemptionID
	ReaderID    domain.UserID
	DocumentID  domain.DocumentID
	PointsSpent int
	CreatedAt   time.Time
}
