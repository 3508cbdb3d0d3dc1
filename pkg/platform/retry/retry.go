// Package retry holds the bounded conflict-retry policy for optimistic
// concurrency collisions.
package retry

import (
	"context"
	"errors"

	"docshelf/pkg/platform/sentinel"
)

// DefaultAttempts bounds automatic retries of a whole unit of work when an
// optimistic version check collides. Conflicts signal a transient race, not
// a logical error, so a short retry is safe; anything else returns
// immediately.
const DefaultAttempts = 3

// OnConflict runs fn up to attempts times, retrying only on
// sentinel.ErrConflict. The last error is returned when attempts run out.
func OnConflict(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, sentinel.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
