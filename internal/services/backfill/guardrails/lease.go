package guardrails

import (
	"context"

	"inkwell/internal/modkit/repokit"
	"inkwell/internal/platform/store"
	"inkwell/internal/services/backfill/domain"
)

// DefaultLockKey is the advisory lock id shared by every backfill runner
const DefaultLockKey int64 = 0x696e6b77656c6c

// LeaseFunc runs do while holding the backfill lease
type LeaseFunc func(ctx context.Context, do func(context.Context) error) error

// MakeAdvisoryLease returns a LeaseFunc backed by a transaction scoped postgres
// advisory lock, so the lock and its release stay on one pooled connection.
// A held lock returns domain.ErrLeaseHeld without running do
func MakeAdvisoryLease(db repokit.TxRunner, key int64) LeaseFunc {
	return func(ctx context.Context, do func(context.Context) error) error {
		return db.Tx(ctx, func(q store.RowQuerier) error {
			var claimed bool
			if err := q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, key).Scan(&claimed); err != nil {
				return err
			}
			if !claimed {
				return domain.ErrLeaseHeld
			}
			return do(ctx)
		})
	}
}
