// Package ledger provides the inventory transaction ledger — the append-only
// audit trail of every quantity change.
package ledger

import (
	"context"
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

// Kind identifies what caused a quantity change.
// Values match the transaction_type CHECK constraint in the schema.
type Kind string

const (
	KindRestock          Kind = "Restock"
	KindSetQuantity      Kind = "Set Quantity"
	KindDistribution     Kind = "Distribution"
	KindVoidDistribution Kind = "Void Distribution"
)

// ReferenceKindDistribution tags entries originating from a distribution
// (both the expense on create and the compensation on void).
const ReferenceKindDistribution = "Distribution"

// Entry is one immutable audit record of an inventory quantity change.
// Entries are never updated or deleted after creation.
type Entry struct {
	ID     id.ID `db:"id" json:"id"`
	ItemID id.ID `db:"inventory_id" json:"itemId"`

	// ActorID is the user who caused the change; nil for system-initiated changes.
	ActorID *id.ID `db:"actor_id" json:"actorId,omitempty"`

	Kind Kind `db:"transaction_type" json:"kind"`

	// Delta is signed: negative for distributions, positive for restocks and voids.
	Delta  int64 `db:"quantity_change" json:"delta"`
	Before int64 `db:"quantity_before" json:"before"`
	After  int64 `db:"quantity_after" json:"after"`

	Note string `db:"notes" json:"note,omitempty"`

	// ReferenceID/ReferenceKind link the entry to its originating record,
	// e.g. the distribution that consumed the stock.
	ReferenceID   *id.ID `db:"reference_id" json:"referenceId,omitempty"`
	ReferenceKind string `db:"reference_type" json:"referenceKind,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewEntry builds an entry from a before-quantity and a signed delta.
// After is derived so the after == before + delta invariant holds by
// construction.
func NewEntry(itemID id.ID, actorID *id.ID, kind Kind, delta, before int64, note string) *Entry {
	return &Entry{
		ID:        id.New(),
		ItemID:    itemID,
		ActorID:   actorID,
		Kind:      kind,
		Delta:     delta,
		Before:    before,
		After:     before + delta,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}

// WithReference links the entry to its originating record.
func (e *Entry) WithReference(refID id.ID, refKind string) *Entry {
	e.ReferenceID = &refID
	e.ReferenceKind = refKind
	return e
}

// Validate checks entry invariants before the entry is committed.
func (e *Entry) Validate(ctx context.Context) error {
	if id.IsNil(e.ItemID) {
		return apperror.NewValidation("ledger entry requires an inventory item").
			WithDetail("field", "itemId")
	}

	switch e.Kind {
	case KindRestock, KindSetQuantity, KindDistribution, KindVoidDistribution:
	default:
		return apperror.NewValidation("unknown transaction kind").
			WithDetail("kind", string(e.Kind))
	}

	if e.After != e.Before+e.Delta {
		return apperror.NewValidation("ledger entry quantities are inconsistent").
			WithDetail("before", e.Before).
			WithDetail("delta", e.Delta).
			WithDetail("after", e.After)
	}

	if e.After < 0 {
		return apperror.NewValidation("ledger entry would record a negative quantity").
			WithDetail("after", e.After)
	}

	return nil
}
