package datagateway

import "context"

// Tx scopes journal writes to one database transaction.
type Tx interface {
	// Commit persists the writes made since the transaction began. It is a no-op outside a transaction.
	Commit(ctx context.Context) error
	// Rollback discards uncommitted writes. It is safe to defer even after a successful Commit.
	Rollback(ctx context.Context) error
}
