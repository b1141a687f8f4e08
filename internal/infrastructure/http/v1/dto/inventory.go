package dto

import (
	"time"

	"bayanihan/internal/domain/inventory"
)

// CreateItemRequest for registering an inventory item.
type CreateItemRequest struct {
	Name              string `json:"name" binding:"required"`
	Category          string `json:"category"`
	Quantity          int64  `json:"quantity" binding:"min=0"`
	Unit              string `json:"unit"`
	LowStockThreshold *int64 `json:"lowStockThreshold"`
}

// ToEntity converts the request to a domain item.
func (r CreateItemRequest) ToEntity() *inventory.Item {
	item := inventory.NewItem(r.Name, r.Category, r.Quantity, r.Unit)
	if r.LowStockThreshold != nil {
		item.LowStockThreshold = *r.LowStockThreshold
	}
	return item
}

// UpdateItemRequest for modifying item fields. Quantity is deliberately
// absent: quantity moves through restock/set-quantity so it lands in the
// ledger.
type UpdateItemRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	Unit              *string `json:"unit"`
	LowStockThreshold *int64  `json:"lowStockThreshold"`
}

// ApplyTo applies non-nil fields to the item.
func (r UpdateItemRequest) ApplyTo(item *inventory.Item) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Category != nil {
		item.Category = *r.Category
	}
	if r.Unit != nil {
		item.Unit = *r.Unit
	}
	if r.LowStockThreshold != nil {
		item.LowStockThreshold = *r.LowStockThreshold
	}
}

// RestockRequest adds stock to an item.
type RestockRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// SetQuantityRequest writes an absolute quantity.
type SetQuantityRequest struct {
	Quantity int64  `json:"quantity"`
	Note     string `json:"note"`
}

// ItemResponse is the API shape of an inventory item.
type ItemResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category,omitempty"`
	Quantity          int64     `json:"quantity"`
	Unit              string    `json:"unit"`
	LowStockThreshold int64     `json:"lowStockThreshold"`
	LowStock          bool      `json:"lowStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromItem creates ItemResponse from a domain item.
func FromItem(item *inventory.Item) *ItemResponse {
	return &ItemResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		Category:          item.Category,
		Quantity:          item.Quantity,
		Unit:              item.Unit,
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// FromItems maps a slice of domain items.
func FromItems(items []*inventory.Item) []*ItemResponse {
	out := make([]*ItemResponse, len(items))
	for i, item := range items {
		out[i] = FromItem(item)
	}
	return out
}
