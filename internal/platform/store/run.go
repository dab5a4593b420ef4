package store

import (
	"context"
	"time"

	perr "inkwell/internal/platform/errors"
)

// txAttempts bounds RunTx retries on serialization failures and deadlocks
const txAttempts = 3

// RunTx runs fn in a transaction, retrying the whole transaction when postgres
// reports transient contention
func RunTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	var err error
	for i := 0; i < txAttempts; i++ {
		err = tx.Tx(ctx, func(q RowQuerier) error { return fn(ctx, q) })
		if !perr.IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 25 * time.Millisecond):
		}
	}
	return err
}
