package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momento/fulfillment/internal/domain/supplier"
)

// GormSkuMappingRepository implements supplier.SkuMappingRepository using GORM
type GormSkuMappingRepository struct {
	db *gorm.DB
}

// NewGormSkuMappingRepository creates a new GormSkuMappingRepository
func NewGormSkuMappingRepository(db *gorm.DB) *GormSkuMappingRepository {
	return &GormSkuMappingRepository{db: db}
}

// FindByVariant returns all mappings that resolve the given variant
func (r *GormSkuMappingRepository) FindByVariant(ctx context.Context, variantID string) ([]supplier.SkuMapping, error) {
	var mappings []supplier.SkuMapping
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("supplier_id ASC, supplier_sku ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindBySupplier returns all mappings for a supplier
func (r *GormSkuMappingRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]supplier.SkuMapping, error) {
	var mappings []supplier.SkuMapping
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("supplier_sku ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// UpsertBatch inserts or replaces mappings keyed by (supplier, supplier SKU)
func (r *GormSkuMappingRepository) UpsertBatch(ctx context.Context, mappings []supplier.SkuMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "supplier_id"}, {Name: "supplier_sku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"variant_id",
				"updated_at",
			}),
		}).
		Create(&mappings).Error
}

// Ensure GormSkuMappingRepository implements supplier.SkuMappingRepository
var _ supplier.SkuMappingRepository = (*GormSkuMappingRepository)(nil)
