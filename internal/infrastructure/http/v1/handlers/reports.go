package handlers

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/reports"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles report generation endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// BeneficiaryStats summarizes one beneficiary's distribution history.
func (h *ReportsHandler) BeneficiaryStats(c *gin.Context) {
	beneficiaryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	stats, err := h.service.GetBeneficiaryStats(c.Request.Context(), beneficiaryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBeneficiaryStats(stats))
}

// LowStock lists items at or below their threshold.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	items, err := h.service.GetLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromLowStockItems(items), len(items))
}

// TopItems ranks items by total distributed quantity.
func (h *ReportsHandler) TopItems(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 0)

	items, err := h.service.GetTopItems(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromTopItems(items), len(items))
}

// TopCalamities ranks calamities by total distributed quantity.
func (h *ReportsHandler) TopCalamities(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 0)

	calamities, err := h.service.GetTopCalamities(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromTopCalamities(calamities), len(calamities))
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/beneficiary/:id", h.BeneficiaryStats)
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/top-items", h.TopItems)
	rg.GET("/top-calamities", h.TopCalamities)
}
