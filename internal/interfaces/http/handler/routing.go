package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	approuting "github.com/momento/fulfillment/internal/application/routing"
)

// RoutingHandler serves order routing and purchase order endpoints.
type RoutingHandler struct {
	BaseHandler
	routing *approuting.RoutingService
}

func NewRoutingHandler(routing *approuting.RoutingService, logger *zap.Logger) *RoutingHandler {
	return &RoutingHandler{
		BaseHandler: NewBaseHandler(logger),
		routing:     routing,
	}
}

// RouteOrder splits a placed order into per-supplier purchase orders.
// Replays of an already routed order return the existing result, so
// webhook redelivery is safe.
func (h *RoutingHandler) RouteOrder(c *gin.Context) {
	var req approuting.RouteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.routing.RouteOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.AlreadyRouted {
		h.Success(c, result)
		return
	}
	h.Accepted(c, result)
}

// GetPurchaseOrder returns a purchase order with its lines.
func (h *RoutingHandler) GetPurchaseOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid purchase order id")
		return
	}

	resp, err := h.routing.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByOrder returns every purchase order created for a shop order.
func (h *RoutingHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		h.BadRequest(c, "order id is required")
		return
	}

	orders, err := h.routing.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// Transition moves a purchase order to a new status.
func (h *RoutingHandler) Transition(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid purchase order id")
		return
	}

	var req approuting.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.routing.Transition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers all routing and purchase order routes.
func (h *RoutingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/route", h.RouteOrder)
	rg.GET("/orders/:orderId/purchase-orders", h.ListByOrder)

	pos := rg.Group("/purchase-orders")
	{
		pos.GET("/:id", h.GetPurchaseOrder)
		pos.POST("/:id/transition", h.Transition)
	}
}
