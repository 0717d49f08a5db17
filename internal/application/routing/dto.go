package routing

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/shopspring/decimal"
)

// OrderLineItem is one line of an incoming order-placed event
type OrderLineItem struct {
	ExternalOrderItemID string `json:"external_order_item_id" binding:"required,max=100"`
	VariantID           string `json:"variant_id" binding:"required,max=100"`
	Qty                 int    `json:"qty" binding:"required,min=1"`
}

// RouteOrderRequest represents an order-placed event to route
type RouteOrderRequest struct {
	ShopID  uuid.UUID       `json:"shop_id" binding:"required"`
	OrderID string          `json:"order_id" binding:"required,max=100"`
	Lines   []OrderLineItem `json:"lines" binding:"required,min=1,dive"`
}

// FailedLine reports one order line that could not be routed
type FailedLine struct {
	ExternalOrderItemID string `json:"external_order_item_id"`
	VariantID           string `json:"variant_id"`
	Reason              string `json:"reason"`
}

// PurchaseOrderLineResponse represents a purchase order line in API responses
type PurchaseOrderLineResponse struct {
	ExternalOrderItemID string          `json:"external_order_item_id"`
	SupplierSKU         string          `json:"supplier_sku"`
	Qty                 int             `json:"qty"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID         uuid.UUID                   `json:"id"`
	OrderID    string                      `json:"order_id"`
	ShopID     uuid.UUID                   `json:"shop_id"`
	SupplierID uuid.UUID                   `json:"supplier_id"`
	Status     string                      `json:"status"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// RouteOrderResult summarizes one routing invocation
type RouteOrderResult struct {
	OrderID        string                  `json:"order_id"`
	PurchaseOrders []PurchaseOrderResponse `json:"purchase_orders"`
	FailedLines    []FailedLine            `json:"failed_lines,omitempty"`
	AlreadyRouted  bool                    `json:"already_routed"`
}

// TransitionRequest represents a purchase order status change
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipped completed canceled"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(po *routing.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(po.Lines))
	for i, line := range po.Lines {
		lines[i] = PurchaseOrderLineResponse{
			ExternalOrderItemID: line.ExternalOrderItemID,
			SupplierSKU:         line.SupplierSKU,
			Qty:                 line.Qty,
			UnitCost:            line.UnitCost,
		}
	}
	return PurchaseOrderResponse{
		ID:         po.ID,
		OrderID:    po.OrderID,
		ShopID:     po.ShopID,
		SupplierID: po.SupplierID,
		Status:     string(po.Status),
		Lines:      lines,
		CreatedAt:  po.CreatedAt,
	}
}

// ToPurchaseOrderResponses converts domain purchase orders to response DTOs
func ToPurchaseOrderResponses(pos []routing.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(pos))
	for i := range pos {
		responses[i] = ToPurchaseOrderResponse(&pos[i])
	}
	return responses
}
