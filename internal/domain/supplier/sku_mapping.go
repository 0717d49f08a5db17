package supplier

import (
	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// SkuMapping joins a supplier-local SKU to an external product variant.
// Invariant: a given (supplier, supplier SKU) maps to at most one variant.
// Static reference data loaded by the supplier sync collaborator.
type SkuMapping struct {
	shared.BaseEntity
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sku_map_supplier_sku,priority:1"`
	SupplierSKU string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_sku_map_supplier_sku,priority:2"`
	VariantID   string    `gorm:"type:varchar(100);not null;index"`
}

// TableName returns the table name for GORM
func (SkuMapping) TableName() string {
	return "sku_mappings"
}

// NewSkuMapping creates a mapping from a supplier SKU to a variant
func NewSkuMapping(supplierID uuid.UUID, supplierSKU, variantID string) (*SkuMapping, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierSKU == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Supplier SKU cannot be empty")
	}
	if variantID == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}

	return &SkuMapping{
		BaseEntity:  shared.NewBaseEntity(),
		SupplierID:  supplierID,
		SupplierSKU: supplierSKU,
		VariantID:   variantID,
	}, nil
}
