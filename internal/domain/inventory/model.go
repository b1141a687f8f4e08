// Package inventory provides the relief-goods inventory store.
package inventory

import (
	"context"
	"strings"
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

// DefaultLowStockThreshold is applied when an item is created without an
// explicit threshold.
const DefaultLowStockThreshold = 10

// Item is one relief-goods inventory record.
// Quantity is a whole-unit count and never goes negative; every change to it
// outside of item creation produces exactly one ledger entry.
type Item struct {
	ID id.ID `db:"id" json:"id"`

	// Name is unique. Duplicate detection is exact-string, case-sensitive.
	Name     string `db:"item_name" json:"name"`
	Category string `db:"category" json:"category,omitempty"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// Unit is a display string ("sack", "box", "piece").
	Unit string `db:"unit" json:"unit"`

	// LowStockThreshold marks the reorder point; "low stock" is derived as
	// quantity <= threshold, never stored.
	LowStockThreshold int64 `db:"low_stock_threshold" json:"lowStockThreshold"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewItem creates an inventory item with generated id and timestamps.
func NewItem(name, category string, quantity int64, unit string) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:                id.New(),
		Name:              name,
		Category:          category,
		Quantity:          quantity,
		Unit:              unit,
		LowStockThreshold: DefaultLowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// Touch updates the UpdatedAt timestamp.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now().UTC()
}

// Validate checks item invariants.
func (i *Item) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.Name) == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}

	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity").
			WithDetail("quantity", i.Quantity)
	}

	if i.LowStockThreshold < 0 {
		return apperror.NewValidation("low stock threshold cannot be negative").
			WithDetail("field", "lowStockThreshold")
	}

	return nil
}
