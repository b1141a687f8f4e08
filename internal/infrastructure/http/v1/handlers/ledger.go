package handlers

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/ledger"
	"bayanihan/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles HTTP requests for the transaction ledger.
// Read-only: the ledger has no mutating endpoints.
type LedgerHandler struct {
	*BaseHandler
	repo ledger.Repository
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, repo ledger.Repository) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, repo: repo}
}

// All lists entries across all items, newest first.
func (h *LedgerHandler) All(c *gin.Context) {
	entries, err := h.repo.All(c.Request.Context(), h.filter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromLedgerEntries(entries), len(entries))
}

// ByItem lists entries for one item, newest first.
func (h *LedgerHandler) ByItem(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.repo.ByItem(c.Request.Context(), itemID, h.filter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.List(c, dto.FromLedgerEntries(entries), len(entries))
}

func (h *LedgerHandler) filter(c *gin.Context) ledger.ListFilter {
	filter := ledger.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if kind := c.Query("kind"); kind != "" {
		k := ledger.Kind(kind)
		filter.Kind = &k
	}

	return filter
}

// RegisterRoutes registers ledger routes.
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.All)
	rg.GET("/item/:id", h.ByItem)
}
