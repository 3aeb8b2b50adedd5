// Package lock provides per-key advisory locks used to keep at most one
// recurring-payment reconciliation in flight per user.
package lock

import (
	"context"
	"errors"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out exclusive, non-blocking locks keyed by string. The returned
// release func is safe to call more than once.
type Locker interface {
	TryLock(ctx context.Context, key string) (release func(), err error)
}
