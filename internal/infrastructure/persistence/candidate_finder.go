package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/momento/fulfillment/internal/domain/supplier"
)

// GormCandidateFinder implements routing.CandidateFinder with a three-way
// join over suppliers, SKU mappings and current offers.
type GormCandidateFinder struct {
	db *gorm.DB
}

// NewGormCandidateFinder creates a new GormCandidateFinder
func NewGormCandidateFinder(db *gorm.DB) *GormCandidateFinder {
	return &GormCandidateFinder{db: db}
}

// FindCandidates resolves routing candidates for one order line: active
// suppliers mapped to the variant whose current offer covers the requested
// quantity and whose score clears the suppression threshold. Selection
// itself happens in the domain layer over the returned rows.
func (f *GormCandidateFinder) FindCandidates(ctx context.Context, variantID string, qtyNeeded int) ([]routing.Candidate, error) {
	var candidates []routing.Candidate
	if err := f.db.WithContext(ctx).
		Table("sku_mappings").
		Select("suppliers.id AS supplier_id, " +
			"sku_mappings.supplier_sku AS supplier_sku, " +
			"supplier_offers.cost AS unit_cost, " +
			"supplier_offers.qty AS qty_available, " +
			"suppliers.reliability_score AS reliability_score").
		Joins("JOIN suppliers ON suppliers.id = sku_mappings.supplier_id").
		Joins("JOIN supplier_offers ON supplier_offers.supplier_id = sku_mappings.supplier_id AND supplier_offers.supplier_sku = sku_mappings.supplier_sku").
		Where("sku_mappings.variant_id = ?", variantID).
		Where("suppliers.status = ?", supplier.StatusActive).
		Where("suppliers.reliability_score > ?", routing.SuppressionThreshold).
		Where("supplier_offers.qty >= ?", qtyNeeded).
		Order("suppliers.id ASC").
		Scan(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// Ensure GormCandidateFinder implements routing.CandidateFinder
var _ routing.CandidateFinder = (*GormCandidateFinder)(nil)
