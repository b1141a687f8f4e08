package handlers

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/inventory"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles HTTP requests for inventory items.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// Create registers a new item.
func (h *InventoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.CreateItem(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromItem(item))
}

// Update modifies item fields other than quantity.
func (h *InventoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(item)

	if err := h.service.UpdateItem(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(item))
}

// Get retrieves one item.
func (h *InventoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(item))
}

// GetAll retrieves all items.
func (h *InventoryHandler) GetAll(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromItems(items), len(items))
}

// LowStock retrieves items at or below their threshold.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.service.GetLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromItems(items), len(items))
}

// Restock adds stock to an item.
func (h *InventoryHandler) Restock(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Restock(ctx, itemID, req.Amount, h.ActorID(c), req.Note); err != nil {
		h.Error(c, err)
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(item))
}

// SetQuantity writes an absolute quantity.
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetQuantity(ctx, itemID, req.Quantity, h.ActorID(c), req.Note); err != nil {
		h.Error(c, err)
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(item))
}

// Delete removes an item.
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/restock", h.Restock)
	rg.POST("/:id/set-quantity", h.SetQuantity)
	rg.DELETE("/:id", h.Delete)
}
