package handlers

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/beneficiary"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// BeneficiaryHandler handles HTTP requests for the beneficiary catalog.
type BeneficiaryHandler struct {
	*BaseHandler
	service *beneficiary.Service
}

// NewBeneficiaryHandler creates a new beneficiary handler.
func NewBeneficiaryHandler(base *BaseHandler, service *beneficiary.Service) *BeneficiaryHandler {
	return &BeneficiaryHandler{BaseHandler: base, service: service}
}

// Create registers a beneficiary.
func (h *BeneficiaryHandler) Create(c *gin.Context) {
	var req dto.CreateBeneficiaryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), b); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromBeneficiary(b))
}

// Update modifies a beneficiary.
func (h *BeneficiaryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	beneficiaryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBeneficiaryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.service.GetByID(ctx, beneficiaryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(b)

	if err := h.service.Update(ctx, b); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBeneficiary(b))
}

// Get retrieves one beneficiary.
func (h *BeneficiaryHandler) Get(c *gin.Context) {
	beneficiaryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), beneficiaryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBeneficiary(b))
}

// GetAll retrieves all beneficiaries.
func (h *BeneficiaryHandler) GetAll(c *gin.Context) {
	beneficiaries, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromBeneficiaries(beneficiaries), len(beneficiaries))
}

// Delete removes a beneficiary.
func (h *BeneficiaryHandler) Delete(c *gin.Context) {
	beneficiaryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), beneficiaryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers beneficiary routes.
func (h *BeneficiaryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
