package routing

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a dropship purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusCreated   PurchaseOrderStatus = "created"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusShipped   PurchaseOrderStatus = "shipped"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "completed"
	PurchaseOrderStatusCanceled  PurchaseOrderStatus = "canceled"
)

// IsValid checks if the status is a known purchase order status
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusCreated, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusShipped, PurchaseOrderStatusCompleted,
		PurchaseOrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses that end the purchase order lifecycle
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusCompleted || s == PurchaseOrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusCreated:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCanceled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusShipped || target == PurchaseOrderStatusCanceled
	case PurchaseOrderStatusShipped:
		return target == PurchaseOrderStatusCompleted
	}
	return false
}

// PurchaseOrderLine is one routed order line inside a purchase order.
// Immutable once written.
type PurchaseOrderLine struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalOrderItemID string          `gorm:"type:varchar(100);not null"`
	SupplierSKU         string          `gorm:"type:varchar(100);not null"`
	Qty                 int             `gorm:"not null"`
	UnitCost            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// PurchaseOrder is one order's worth of lines routed to a single supplier.
// The (OrderID, SupplierID) pair is unique: routing creates at most one
// purchase order per winning supplier per order.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderID    string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_po_order_supplier,priority:1"`
	ShopID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_po_order_supplier,priority:2;index"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'created'"`
	Lines      []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a purchase order for one supplier group
func NewPurchaseOrder(orderID string, shopID, supplierID uuid.UUID) (*PurchaseOrder, error) {
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ShopID:            shopID,
		SupplierID:        supplierID,
		Status:            PurchaseOrderStatusCreated,
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddLine appends a routed line; only allowed before the order leaves the
// created status, lines are immutable afterwards.
func (po *PurchaseOrder) AddLine(externalOrderItemID, supplierSKU string, qty int, unitCost decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusCreated {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to a newly created purchase order")
	}
	if externalOrderItemID == "" {
		return shared.NewDomainError("INVALID_LINE", "External order item ID cannot be empty")
	}
	if supplierSKU == "" {
		return shared.NewDomainError("INVALID_LINE", "Supplier SKU cannot be empty")
	}
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	po.Lines = append(po.Lines, PurchaseOrderLine{
		ID:                  uuid.New(),
		PurchaseOrderID:     po.ID,
		ExternalOrderItemID: externalOrderItemID,
		SupplierSKU:         supplierSKU,
		Qty:                 qty,
		UnitCost:            unitCost,
		CreatedAt:           time.Now(),
	})

	return nil
}

// Transition moves the purchase order to a new status
func (po *PurchaseOrder) Transition(target PurchaseOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
	}
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Purchase order cannot transition from "+string(po.Status)+" to "+string(target))
	}

	oldStatus := po.Status
	po.Status = target
	po.UpdatedAt = time.Now()
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(po, oldStatus, target))

	return nil
}

// LineCount returns the number of lines on the purchase order
func (po *PurchaseOrder) LineCount() int {
	return len(po.Lines)
}
