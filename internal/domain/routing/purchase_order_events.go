package routing

import (
	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// Aggregate type constant for PurchaseOrder
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants for PurchaseOrder
const (
	EventTypePurchaseOrderCreated       = "PurchaseOrderCreated"
	EventTypePurchaseOrderStatusChanged = "PurchaseOrderStatusChanged"
)

// PurchaseOrderCreatedEvent is published when routing creates a purchase order
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	OrderID         string    `json:"order_id"`
	ShopID          uuid.UUID `json:"shop_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, po.ID),
		PurchaseOrderID: po.ID,
		OrderID:         po.OrderID,
		ShopID:          po.ShopID,
		SupplierID:      po.SupplierID,
	}
}

// PurchaseOrderStatusChangedEvent is published on status transitions
type PurchaseOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID           `json:"purchase_order_id"`
	OldStatus       PurchaseOrderStatus `json:"old_status"`
	NewStatus       PurchaseOrderStatus `json:"new_status"`
}

// NewPurchaseOrderStatusChangedEvent creates a new PurchaseOrderStatusChangedEvent
func NewPurchaseOrderStatusChangedEvent(po *PurchaseOrder, oldStatus, newStatus PurchaseOrderStatus) *PurchaseOrderStatusChangedEvent {
	return &PurchaseOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderStatusChanged, AggregateTypePurchaseOrder, po.ID),
		PurchaseOrderID: po.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
