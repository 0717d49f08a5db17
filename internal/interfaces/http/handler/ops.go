package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appops "github.com/momento/fulfillment/internal/application/ops"
	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

// OpsHandler serves the exception queue and audit trail endpoints.
type OpsHandler struct {
	BaseHandler
	ops *appops.OpsService
}

func NewOpsHandler(opsService *appops.OpsService, logger *zap.Logger) *OpsHandler {
	return &OpsHandler{
		BaseHandler: NewBaseHandler(logger),
		ops:         opsService,
	}
}

// ListOpenExceptions returns the open exception queue for the calling shop.
func (h *OpsHandler) ListOpenExceptions(c *gin.Context) {
	shopID, err := getShopID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter appops.ExceptionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.ops.ListOpen(c.Request.Context(), shopID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, dto.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// GetException returns a single exception.
func (h *OpsHandler) GetException(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid exception id")
		return
	}

	resp, err := h.ops.GetException(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// StartProgress marks an exception as being worked on.
func (h *OpsHandler) StartProgress(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid exception id")
		return
	}

	resp, err := h.ops.StartProgress(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resolve closes an exception as handled.
func (h *OpsHandler) Resolve(c *gin.Context) {
	h.close(c, h.ops.Resolve)
}

// Ignore closes an exception without action.
func (h *OpsHandler) Ignore(c *gin.Context) {
	h.close(c, h.ops.Ignore)
}

func (h *OpsHandler) close(c *gin.Context, apply func(context.Context, uuid.UUID, appops.ResolveExceptionRequest) (*appops.ExceptionResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid exception id")
		return
	}

	var req appops.ResolveExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListEventsByEntity returns the audit trail for one entity.
func (h *OpsHandler) ListEventsByEntity(c *gin.Context) {
	shopID, err := getShopID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entityID := c.Param("entityId")
	if entityID == "" {
		h.BadRequest(c, "entity id is required")
		return
	}

	events, err := h.ops.ListEventsByEntity(c.Request.Context(), shopID, entityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, events)
}

// ListEventsByType returns paginated audit events of one type.
func (h *OpsHandler) ListEventsByType(c *gin.Context) {
	shopID, err := getShopID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	eventType := ops.EventType(c.Query("type"))
	switch eventType {
	case ops.EventTypeRoutingDecision, ops.EventTypeSupplierScoreUpdate, ops.EventTypeProductKillSwitch:
	default:
		h.BadRequest(c, "unknown event type")
		return
	}

	var filter appops.ExceptionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.ops.ListEventsByType(c.Request.Context(), shopID, eventType, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, dto.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// RegisterRoutes registers all exception queue and audit trail routes.
func (h *OpsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	opsGroup := rg.Group("/ops")
	{
		opsGroup.GET("/exceptions", h.ListOpenExceptions)
		opsGroup.GET("/exceptions/:id", h.GetException)
		opsGroup.POST("/exceptions/:id/start", h.StartProgress)
		opsGroup.POST("/exceptions/:id/resolve", h.Resolve)
		opsGroup.POST("/exceptions/:id/ignore", h.Ignore)
		opsGroup.GET("/events", h.ListEventsByType)
		opsGroup.GET("/events/entity/:entityId", h.ListEventsByEntity)
	}
}
