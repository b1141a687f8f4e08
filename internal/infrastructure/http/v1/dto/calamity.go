package dto

import (
	"time"

	"bayanihan/internal/core/apperror"
	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/calamity"
)

// TemplateItemRequest is one standard (item, quantity) assignment.
type TemplateItemRequest struct {
	ItemID           string `json:"itemId" binding:"required"`
	StandardQuantity int64  `json:"standardQuantity" binding:"required,min=1"`
}

// CreateCalamityRequest registers a calamity with its template.
type CreateCalamityRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	Items       []TemplateItemRequest `json:"items"`
}

// ToEntity converts the request to a domain calamity.
func (r CreateCalamityRequest) ToEntity() (*calamity.Calamity, error) {
	c := calamity.New(r.Name, r.Description)
	if r.Status != "" {
		c.Status = calamity.Status(r.Status)
	}

	for _, item := range r.Items {
		itemID, err := id.Parse(item.ItemID)
		if err != nil {
			return nil, apperror.NewValidation("invalid item id").
				WithDetail("itemId", item.ItemID)
		}
		c.AddItem(itemID, item.StandardQuantity)
	}

	return c, nil
}

// UpdateCalamityRequest modifies a calamity and replaces its template.
type UpdateCalamityRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *string               `json:"status"`
	Items       []TemplateItemRequest `json:"items"`
}

// ApplyTo applies non-nil fields to the calamity; a non-nil Items slice
// replaces the template.
func (r UpdateCalamityRequest) ApplyTo(c *calamity.Calamity) error {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Status != nil {
		c.Status = calamity.Status(*r.Status)
	}

	if r.Items != nil {
		c.Items = make([]calamity.TemplateItem, 0, len(r.Items))
		for _, item := range r.Items {
			itemID, err := id.Parse(item.ItemID)
			if err != nil {
				return apperror.NewValidation("invalid item id").
					WithDetail("itemId", item.ItemID)
			}
			c.AddItem(itemID, item.StandardQuantity)
		}
	}

	return nil
}

// TemplateItemResponse is one template assignment.
type TemplateItemResponse struct {
	ID               string `json:"id"`
	ItemID           string `json:"itemId"`
	StandardQuantity int64  `json:"standardQuantity"`
}

// CalamityResponse is the API shape of a calamity.
type CalamityResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Items       []TemplateItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// FromCalamity creates CalamityResponse from a domain calamity.
func FromCalamity(c *calamity.Calamity) *CalamityResponse {
	resp := &CalamityResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
	for _, item := range c.Items {
		resp.Items = append(resp.Items, TemplateItemResponse{
			ID:               item.ID.String(),
			ItemID:           item.ItemID.String(),
			StandardQuantity: item.StandardQuantity,
		})
	}
	return resp
}

// FromCalamities maps a slice of domain calamities.
func FromCalamities(calamities []*calamity.Calamity) []*CalamityResponse {
	out := make([]*CalamityResponse, len(calamities))
	for i, c := range calamities {
		out[i] = FromCalamity(c)
	}
	return out
}

// TemplateLineResponse is one expanded template line, clamped to stock.
type TemplateLineResponse struct {
	ItemID           string `json:"itemId"`
	ItemName         string `json:"itemName"`
	Quantity         int64  `json:"quantity"`
	StandardQuantity int64  `json:"standardQuantity"`
}

// FromTemplateLines maps expanded template lines.
func FromTemplateLines(lines []calamity.TemplateLine) []TemplateLineResponse {
	out := make([]TemplateLineResponse, len(lines))
	for i, line := range lines {
		out[i] = TemplateLineResponse{
			ItemID:           line.ItemID.String(),
			ItemName:         line.ItemName,
			Quantity:         line.Quantity,
			StandardQuantity: line.StandardQuantity,
		}
	}
	return out
}

// DeleteCalamityResponse reports whether the delete was carried out.
type DeleteCalamityResponse struct {
	Deleted bool   `json:"deleted"`
	Reason  string `json:"reason,omitempty"`
}
