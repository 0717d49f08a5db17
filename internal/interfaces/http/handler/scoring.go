package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momento/fulfillment/internal/application/scoring"
	"github.com/momento/fulfillment/internal/infrastructure/scheduler"
	"github.com/momento/fulfillment/internal/interfaces/http/dto"
)

// ScoringHandler serves product metric feeds and scoring job controls.
type ScoringHandler struct {
	BaseHandler
	products  *scoring.ProductScoringService
	suppliers *scoring.SupplierScoringService
	scheduler *scheduler.ScoringScheduler
}

func NewScoringHandler(
	products *scoring.ProductScoringService,
	suppliers *scoring.SupplierScoringService,
	sched *scheduler.ScoringScheduler,
	logger *zap.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		BaseHandler: NewBaseHandler(logger),
		products:    products,
		suppliers:   suppliers,
		scheduler:   sched,
	}
}

type recordMetricRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
}

// RecordOrder bumps the order count for a variant. Order webhooks feed
// this endpoint once per ordered variant.
func (h *ScoringHandler) RecordOrder(c *gin.Context) {
	h.record(c, h.products.RecordOrder)
}

// RecordReturn bumps the return count for a variant.
func (h *ScoringHandler) RecordReturn(c *gin.Context) {
	h.record(c, h.products.RecordReturn)
}

func (h *ScoringHandler) record(c *gin.Context, apply func(context.Context, uuid.UUID, string) error) {
	shopID, err := getShopID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req recordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := apply(c.Request.Context(), shopID, req.VariantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RunSupplierScoring runs the supplier reliability job synchronously.
func (h *ScoringHandler) RunSupplierScoring(c *gin.Context) {
	result, err := h.suppliers.Run(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// RunProductScoring runs the return rate kill switch job. Scoped to the
// calling shop when X-Shop-ID is set, otherwise runs across all shops.
func (h *ScoringHandler) RunProductScoring(c *gin.Context) {
	ctx := c.Request.Context()
	if shopID, err := getShopID(c); err == nil {
		result, err := h.products.RunForShop(ctx, shopID)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	result, err := h.products.Run(ctx)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// TriggerScheduledRun asks the background scheduler for an immediate
// full scoring pass.
func (h *ScoringHandler) TriggerScheduledRun(c *gin.Context) {
	if h.scheduler == nil {
		h.Error(c, dto.ErrCodeUnavailable, "scoring scheduler is not enabled")
		return
	}
	if err := h.scheduler.TriggerImmediateRun(context.Background()); err != nil {
		h.Error(c, dto.ErrCodeUnavailable, err.Error())
		return
	}
	h.Accepted(c, gin.H{"status": "scheduled"})
}

// RegisterRoutes registers all scoring routes.
func (h *ScoringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sc := rg.Group("/scoring")
	{
		sc.POST("/metrics/orders", h.RecordOrder)
		sc.POST("/metrics/returns", h.RecordReturn)
		sc.POST("/jobs/suppliers/run", h.RunSupplierScoring)
		sc.POST("/jobs/products/run", h.RunProductScoring)
		sc.POST("/jobs/trigger", h.TriggerScheduledRun)
	}
}
