package handlers

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/calamity"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// CalamityHandler handles HTTP requests for calamities and their templates.
type CalamityHandler struct {
	*BaseHandler
	service *calamity.Service
}

// NewCalamityHandler creates a new calamity handler.
func NewCalamityHandler(base *BaseHandler, service *calamity.Service) *CalamityHandler {
	return &CalamityHandler{BaseHandler: base, service: service}
}

// Create registers a calamity with its template.
func (h *CalamityHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCalamityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cal, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, cal); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromCalamity(cal))
}

// Update modifies a calamity and replaces its template.
func (h *CalamityHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	calamityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCalamityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cal, err := h.service.GetByID(ctx, calamityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(cal); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, cal); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCalamity(cal))
}

// Get retrieves a calamity with its template.
func (h *CalamityHandler) Get(c *gin.Context) {
	calamityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cal, err := h.service.GetByID(c.Request.Context(), calamityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCalamity(cal))
}

// GetAll retrieves all calamities.
func (h *CalamityHandler) GetAll(c *gin.Context) {
	calamities, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromCalamities(calamities), len(calamities))
}

// Delete removes a calamity when policy allows. The response reports a
// refused delete instead of erroring.
func (h *CalamityHandler) Delete(c *gin.Context) {
	calamityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), calamityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.DeleteCalamityResponse{Deleted: deleted}
	if !deleted {
		resp.Reason = "calamity is active or still groups distributions"
	}
	h.OK(c, resp)
}

// Template expands the calamity's template for a new distribution, clamped
// to current stock.
func (h *CalamityHandler) Template(c *gin.Context) {
	calamityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.LoadTemplate(c.Request.Context(), calamityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromTemplateLines(lines), len(lines))
}

// RegisterRoutes registers calamity routes.
func (h *CalamityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAll)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/template", h.Template)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
