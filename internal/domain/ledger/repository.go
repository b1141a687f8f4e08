package ledger

import (
	"context"

	"bayanihan/internal/core/id"
)

// Repository defines operations on the transaction ledger.
//
// The interface is deliberately append-only: there is no update or delete.
// Immutability of the audit trail is enforced here, not by convention.
type Repository interface {
	// Append inserts one entry. Fails only on referential-integrity
	// violation (unknown item) or storage failure.
	Append(ctx context.Context, entry *Entry) error

	// AppendAll batch inserts entries, used when a distribution touches
	// several items within one transaction.
	AppendAll(ctx context.Context, entries []*Entry) error

	// ByItem returns entries for one item, newest first.
	ByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]*Entry, error)

	// All returns entries across all items, newest first.
	All(ctx context.Context, filter ListFilter) ([]*Entry, error)

	// CountByItem returns the number of entries recorded for an item.
	CountByItem(ctx context.Context, itemID id.ID) (int64, error)
}

// ListFilter narrows ledger queries for audit display.
type ListFilter struct {
	Kind   *Kind
	Limit  int
	Offset int
}
