// Package tx provides the transaction management abstraction.
// Domain services depend on this interface so the distribution engine can
// span a create or void — header, lines, inventory adjustments, and ledger
// appends — in one atomic unit of work without knowing about pgx.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT and ROLLBACK; the concrete
// implementation lives in infrastructure/storage/postgres.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
