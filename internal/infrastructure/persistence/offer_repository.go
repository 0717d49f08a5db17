package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momento/fulfillment/internal/domain/inventory"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// GormOfferRepository implements inventory.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// UpsertBatch inserts or replaces offers keyed by (supplier, supplier SKU).
// The whole batch goes through one conflict-resolving INSERT so a batch
// either lands or fails as a unit.
func (r *GormOfferRepository) UpsertBatch(ctx context.Context, offers []inventory.SupplierOffer) error {
	if len(offers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "supplier_id"}, {Name: "supplier_sku"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"qty",
				"cost",
				"currency",
				"lead_time_days",
				"ships_from_region",
				"fetched_at",
				"updated_at",
			}),
		}).
		Create(&offers).Error
}

// FindBySupplier returns all offers for a supplier
func (r *GormOfferRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]inventory.SupplierOffer, error) {
	var offers []inventory.SupplierOffer
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("supplier_sku ASC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindBySupplierAndSKU returns one offer row, or ErrNotFound
func (r *GormOfferRepository) FindBySupplierAndSKU(ctx context.Context, supplierID uuid.UUID, supplierSKU string) (*inventory.SupplierOffer, error) {
	var offer inventory.SupplierOffer
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND supplier_sku = ?", supplierID, supplierSKU).
		First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// FindMappedBySupplier joins offers to SKU mappings for the supplier.
// Offers with no mapping are excluded; they cannot enter routing anyway.
func (r *GormOfferRepository) FindMappedBySupplier(ctx context.Context, supplierID uuid.UUID) ([]inventory.MappedOffer, error) {
	var mapped []inventory.MappedOffer
	if err := r.db.WithContext(ctx).
		Table("supplier_offers").
		Select("sku_mappings.variant_id AS variant_id, supplier_offers.supplier_sku AS supplier_sku, supplier_offers.qty AS qty").
		Joins("JOIN sku_mappings ON sku_mappings.supplier_id = supplier_offers.supplier_id AND sku_mappings.supplier_sku = supplier_offers.supplier_sku").
		Where("supplier_offers.supplier_id = ?", supplierID).
		Order("supplier_offers.supplier_sku ASC").
		Scan(&mapped).Error; err != nil {
		return nil, err
	}
	return mapped, nil
}

// CountBySupplier counts offer rows held for a supplier
func (r *GormOfferRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.SupplierOffer{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOfferRepository implements inventory.OfferRepository
var _ inventory.OfferRepository = (*GormOfferRepository)(nil)
