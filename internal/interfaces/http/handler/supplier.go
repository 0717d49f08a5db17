package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appsupplier "github.com/momento/fulfillment/internal/application/supplier"
	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

// SupplierHandler serves the supplier registry endpoints.
type SupplierHandler struct {
	BaseHandler
	registry *appsupplier.RegistryService
}

func NewSupplierHandler(registry *appsupplier.RegistryService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		BaseHandler: NewBaseHandler(logger),
		registry:    registry,
	}
}

// Create registers a new supplier.
func (h *SupplierHandler) Create(c *gin.Context) {
	var req appsupplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.registry.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns suppliers matching the query filter, paginated.
func (h *SupplierHandler) List(c *gin.Context) {
	var filter appsupplier.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	suppliers, total, err := h.registry.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, suppliers, dto.Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	})
}

// ListActive returns every supplier eligible for routing.
func (h *SupplierHandler) ListActive(c *gin.Context) {
	suppliers, err := h.registry.ListActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Get returns a supplier by ID.
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	resp, err := h.registry.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByCode returns a supplier by its unique code.
func (h *SupplierHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "supplier code is required")
		return
	}

	resp, err := h.registry.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update to a supplier.
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	var req appsupplier.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.registry.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate moves a supplier into the active state.
func (h *SupplierHandler) Activate(c *gin.Context) {
	h.transition(c, h.registry.Activate)
}

// Pause temporarily removes a supplier from routing.
func (h *SupplierHandler) Pause(c *gin.Context) {
	h.transition(c, h.registry.Pause)
}

// Deactivate retires a supplier.
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.registry.Deactivate)
}

func (h *SupplierHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*appsupplier.SupplierResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	resp, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpsertPolicy creates or replaces the shop policy for a supplier.
func (h *SupplierHandler) UpsertPolicy(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	var req appsupplier.UpsertPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.registry.UpsertPolicy(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetPolicy returns the policy for the calling shop and a supplier.
func (h *SupplierHandler) GetPolicy(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	shopID, err := getShopID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.registry.GetPolicy(c.Request.Context(), shopID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpsertSkuMappings replaces SKU mappings for a supplier in bulk.
func (h *SupplierHandler) UpsertSkuMappings(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	var req appsupplier.UpsertSkuMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	count, err := h.registry.UpsertSkuMappings(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"upserted": count})
}

// ListSkuMappings returns all SKU mappings for a supplier.
func (h *SupplierHandler) ListSkuMappings(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}

	mappings, err := h.registry.ListSkuMappings(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, mappings)
}

// RegisterRoutes registers all supplier registry routes.
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/active", h.ListActive)
		suppliers.GET("/code/:code", h.GetByCode)
		suppliers.GET("/:id", h.Get)
		suppliers.PUT("/:id", h.Update)
		suppliers.POST("/:id/activate", h.Activate)
		suppliers.POST("/:id/pause", h.Pause)
		suppliers.POST("/:id/deactivate", h.Deactivate)
		suppliers.PUT("/:id/policy", h.UpsertPolicy)
		suppliers.GET("/:id/policy", h.GetPolicy)
		suppliers.PUT("/:id/sku-mappings", h.UpsertSkuMappings)
		suppliers.GET("/:id/sku-mappings", h.ListSkuMappings)
	}
}
