// Package calamity provides named relief events and their item templates.
package calamity

import (
	"context"
	"strings"
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
)

// Status of a calamity. Only Inactive calamities may be deleted.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Calamity is a named event/campaign that groups distributions and carries a
// reusable item/quantity template.
type Calamity struct {
	ID id.ID `db:"id" json:"id"`

	// Name is unique; duplicate detection is exact-string, case-sensitive.
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Status      Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Items []TemplateItem `db:"-" json:"items"`
}

// TemplateItem is one standard (item, quantity) assignment in the template.
// Standard quantities are advisory ceilings at template-load time, not
// enforced invariants on the calamity itself.
type TemplateItem struct {
	ID               id.ID `db:"id" json:"id"`
	ItemID           id.ID `db:"inventory_id" json:"itemId"`
	StandardQuantity int64 `db:"standard_quantity" json:"standardQuantity"`
}

// TemplateLine is one expanded template line, clamped to available stock.
type TemplateLine struct {
	ItemID           id.ID  `json:"itemId"`
	ItemName         string `json:"itemName"`
	Quantity         int64  `json:"quantity"`
	StandardQuantity int64  `json:"standardQuantity"`
}

// New creates a calamity with generated id; status defaults to Active.
func New(name, description string) *Calamity {
	return &Calamity{
		ID:          id.New(),
		Name:        name,
		Description: description,
		Status:      StatusActive,
		CreatedAt:   time.Now().UTC(),
		Items:       make([]TemplateItem, 0),
	}
}

// AddItem appends a template assignment.
func (c *Calamity) AddItem(itemID id.ID, standardQuantity int64) {
	c.Items = append(c.Items, TemplateItem{
		ID:               id.New(),
		ItemID:           itemID,
		StandardQuantity: standardQuantity,
	})
}

// IsActive reports whether the calamity is active.
func (c *Calamity) IsActive() bool {
	return c.Status == StatusActive
}

// Validate checks calamity invariants.
func (c *Calamity) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("calamity name is required").
			WithDetail("field", "name")
	}

	if c.Status != "" && c.Status != StatusActive && c.Status != StatusInactive {
		return apperror.NewValidation("status must be Active or Inactive").
			WithDetail("status", string(c.Status))
	}

	seen := make(map[id.ID]bool, len(c.Items))
	for i, item := range c.Items {
		if id.IsNil(item.ItemID) {
			return apperror.NewValidation("template item is required").
				WithDetail("field", "items").
				WithDetail("itemNo", i+1)
		}
		if item.StandardQuantity <= 0 {
			return apperror.NewValidation("standard quantity must be positive").
				WithDetail("field", "items").
				WithDetail("itemNo", i+1)
		}
		if seen[item.ItemID] {
			return apperror.NewValidation("template lists the same item twice").
				WithDetail("item_id", item.ItemID.String())
		}
		seen[item.ItemID] = true
	}

	return nil
}
