package supplier

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShopSupplierPolicy configures how one shop sells through one supplier.
// It is reference data read by routing and reconciliation; the engine never
// mutates it on its own.
type ShopSupplierPolicy struct {
	shared.BaseEntity
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_policy_shop_supplier,priority:1"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_policy_shop_supplier,priority:2"`
	BufferStock int             `gorm:"not null;default:0"`
	MinMargin   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Enabled     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ShopSupplierPolicy) TableName() string {
	return "shop_supplier_policies"
}

// NewShopSupplierPolicy creates a policy for a (shop, supplier) pair
func NewShopSupplierPolicy(shopID, supplierID uuid.UUID, bufferStock int, minMargin decimal.Decimal, enabled bool) (*ShopSupplierPolicy, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if bufferStock < 0 {
		return nil, shared.NewDomainError("INVALID_BUFFER", "Buffer stock cannot be negative")
	}
	if minMargin.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MARGIN", "Minimum margin cannot be negative")
	}

	return &ShopSupplierPolicy{
		BaseEntity:  shared.NewBaseEntity(),
		ShopID:      shopID,
		SupplierID:  supplierID,
		BufferStock: bufferStock,
		MinMargin:   minMargin,
		Enabled:     enabled,
	}, nil
}

// SetBufferStock updates the per-shop safety buffer
func (p *ShopSupplierPolicy) SetBufferStock(buffer int) error {
	if buffer < 0 {
		return shared.NewDomainError("INVALID_BUFFER", "Buffer stock cannot be negative")
	}
	p.BufferStock = buffer
	p.UpdatedAt = time.Now()
	return nil
}

// Disable turns the policy off without removing it
func (p *ShopSupplierPolicy) Disable() {
	p.Enabled = false
	p.UpdatedAt = time.Now()
}

// Enable turns the policy back on
func (p *ShopSupplierPolicy) Enable() {
	p.Enabled = true
	p.UpdatedAt = time.Now()
}
