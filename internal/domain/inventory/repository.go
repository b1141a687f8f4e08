package inventory

import (
	"context"

	"bayanihan/internal/core/id"
)

// Repository defines persistence operations for inventory items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error

	GetByID(ctx context.Context, itemID id.ID) (*Item, error)

	// GetByName does an exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*Item, error)

	// GetForUpdate reads an item with a row lock. Callers must hold an
	// open transaction; the distribution engine uses this to pin stock
	// levels while validating.
	GetForUpdate(ctx context.Context, itemID id.ID) (*Item, error)

	GetAll(ctx context.Context) ([]*Item, error)

	// GetLowStock returns items with quantity <= low_stock_threshold.
	GetLowStock(ctx context.Context) ([]*Item, error)

	// AdjustQuantity applies a signed delta atomically. The store trusts
	// the delta; callers are responsible for keeping the result
	// non-negative (the engine pre-validates under row locks).
	AdjustQuantity(ctx context.Context, itemID id.ID, delta int64) error

	// SetQuantity writes an absolute quantity.
	SetQuantity(ctx context.Context, itemID id.ID, quantity int64) error

	Delete(ctx context.Context, itemID id.ID) error
}
