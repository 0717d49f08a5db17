package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appinventory "github.com/momento/fulfillment/internal/application/inventory"
)

// InventoryHandler serves the supplier offer and safe quantity endpoints.
type InventoryHandler struct {
	BaseHandler
	reconciler *appinventory.ReconcilerService
}

func NewInventoryHandler(reconciler *appinventory.ReconcilerService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		reconciler:  reconciler,
	}
}

// IngestOffers accepts a batch of offers fetched from a supplier feed
// and reconciles them into the offer table.
func (h *InventoryHandler) IngestOffers(c *gin.Context) {
	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	var req appinventory.IngestOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.reconciler.IngestOffers(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ListOffers returns the current offers held for a supplier.
func (h *InventoryHandler) ListOffers(c *gin.Context) {
	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	offers, err := h.reconciler.ListOffers(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, offers)
}

// SafeQuantities returns sellable quantities per mapped variant. When the
// caller is shop scoped the shop's buffer policy applies, otherwise the
// default safety buffer is used.
func (h *InventoryHandler) SafeQuantities(c *gin.Context) {
	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	ctx := c.Request.Context()
	if shopID, err := getShopID(c); err == nil {
		quantities, err := h.reconciler.ComputeSafeQuantitiesForShop(ctx, shopID, supplierID)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, quantities)
		return
	}

	quantities, err := h.reconciler.ComputeSafeQuantities(ctx, supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, quantities)
}

// RegisterRoutes registers all offer and safe quantity routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/suppliers/:id/offers")
	{
		offers.POST("", h.IngestOffers)
		offers.GET("", h.ListOffers)
		offers.GET("/safe-quantities", h.SafeQuantities)
	}
}
