package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/distribution"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// DistributionHandler handles HTTP requests for distributions.
type DistributionHandler struct {
	*BaseHandler
	service *distribution.Service
}

// NewDistributionHandler creates a new distribution handler.
func NewDistributionHandler(base *BaseHandler, service *distribution.Service) *DistributionHandler {
	return &DistributionHandler{BaseHandler: base, service: service}
}

// Create records a distribution.
func (h *DistributionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDistributionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := req.ToEntity(h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, d); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromDistribution(d))
}

// CreateBatch distributes the same line set to many beneficiaries,
// best-effort per beneficiary.
func (h *DistributionHandler) CreateBatch(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BatchDistributionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batchReq, err := req.ToBatchRequest(h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.DistributeBatch(ctx, batchReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// Get retrieves a distribution with its lines.
func (h *DistributionHandler) Get(c *gin.Context) {
	distributionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), distributionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDistribution(d))
}

// List retrieves distributions matching the filter.
func (h *DistributionHandler) List(c *gin.Context) {
	filter := distribution.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if raw := c.Query("beneficiaryId"); raw != "" {
		if parsed, err := id.Parse(raw); err == nil {
			filter.BeneficiaryID = &parsed
		}
	}
	if raw := c.Query("calamityId"); raw != "" {
		if parsed, err := id.Parse(raw); err == nil {
			filter.CalamityID = &parsed
		}
	}
	if raw := c.Query("dateFrom"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if raw := c.Query("dateTo"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.DateTo = &parsed
		}
	}

	distributions, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.BaseHandler.List(c, dto.FromDistributions(distributions), len(distributions))
}

// Void cancels a distribution and restores inventory.
func (h *DistributionHandler) Void(c *gin.Context) {
	distributionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	restored, err := h.service.Void(c.Request.Context(), distributionID, h.ActorID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.VoidResponse{Voided: true, Restored: restored})
}

// RegisterRoutes registers distribution routes.
func (h *DistributionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.POST("/batch", h.CreateBatch)
	rg.POST("/:id/void", h.Void)
}
